package enemy

import "math"

// Maneuvers lists every aerobatic figure.
var Maneuvers = []Maneuver{BarrelRoll, Immelmann, SplitS, HighYoYo, LowYoYo, Scissors, ChandelleTurn}

// fly advances one tick of maneuver m. Rotation rates scale with skill;
// progress runs from 0 at entry to 1 when the maneuver times out.
func (en *Enemy) fly(m Maneuver, dt, elapsed float64) {
	s := en.ManeuverSkill
	progress := 1 - en.StateTimer/ManeuverDuration
	tr := &en.Transform
	fwd := 0.0

	switch m {
	case BarrelRoll:
		tr.RotateLocalZ(3 * s * dt)
		fwd = 0.7
	case Immelmann:
		if progress < 0.5 {
			tr.RotateLocalX(-2 * s * dt)
			fwd = 0.5
		} else {
			tr.RotateLocalZ(3 * s * dt)
			fwd = 1.0
		}
	case SplitS:
		if progress < 0.3 {
			// roll inverted in place before pulling through
			tr.RotateLocalZ(3 * s * dt)
		} else {
			tr.RotateLocalX(2 * s * dt)
			fwd = 1.5
		}
	case HighYoYo:
		if progress < 0.4 {
			tr.RotateLocalX(-1.5 * s * dt)
			tr.RotateLocalZ(0.5 * s * dt)
		} else {
			tr.RotateLocalX(1 * s * dt)
			tr.RotateLocalZ(2 * s * dt)
		}
		fwd = 0.8
	case LowYoYo:
		if progress < 0.4 {
			tr.RotateLocalX(1.5 * s * dt)
			tr.RotateLocalZ(0.5 * s * dt)
			fwd = 1.3
		} else {
			tr.RotateLocalX(-1 * s * dt)
			fwd = 0.9
		}
	case Scissors:
		osc := math.Sin(elapsed * 4)
		tr.RotateLocalZ(osc * 2 * s * dt)
		tr.RotateLocalX(osc * 0.5 * s * dt)
		fwd = 0.6
	case ChandelleTurn:
		tr.RotateLocalX(-0.5 * s * dt)
		tr.RotateY(1.5 * s * dt)
		fwd = 0.7
	}
	if fwd != 0 {
		tr.Translate(tr.Forward().Mul(en.Speed * fwd * dt))
	}
}
