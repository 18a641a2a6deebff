package player

import (
	"math"

	"skyhunter/internal/enemy"
	"skyhunter/internal/vecmath"
)

// Autopilot flies the player toward the nearest threat or target and pulls
// the trigger when an enemy sits inside its gun cone.
type Autopilot struct {
	TurnRate   float64
	EngageDist float64
	FireDist   float64
	// FireCone is the cosine of the half-angle of the gun cone.
	FireCone float64
}

// DefaultAutopilot returns a moderately aggressive pilot.
func DefaultAutopilot() Autopilot {
	return Autopilot{TurnRate: 1.5, EngageDist: 400, FireDist: 250, FireCone: 0.97}
}

// Fly steers and moves p for one tick and reports whether to fire.
// speedMult comes from the speed boost power-up.
func (a Autopilot) Fly(p *Player, enemies []*enemy.Enemy, targets []vecmath.Vec3, speedMult, dt float64) bool {
	if !p.Alive() {
		return false
	}
	if speedMult <= 0 {
		speedMult = 1
	}
	pos := p.Position()

	var aim *vecmath.Vec3
	var nearest *enemy.Enemy
	best := a.EngageDist
	for _, en := range enemies {
		if en.Gone() {
			continue
		}
		if d := vecmath.Distance(pos, en.Position()); d < best {
			best, nearest = d, en
		}
	}
	if nearest != nil {
		v := nearest.Position()
		aim = &v
	} else {
		bestT := math.Inf(1)
		for i := range targets {
			if d := vecmath.Distance(pos, targets[i]); d < bestT {
				bestT = d
				aim = &targets[i]
			}
		}
	}

	if aim != nil {
		p.Transform.SlerpTowards(vecmath.LookRotation(aim.Sub(pos), vecmath.Up), a.TurnRate*p.RollSpeed/DefaultRollSpeed*dt)
	} else {
		p.Transform.RotateY(p.RollSpeed * 0.3 * dt)
	}

	p.Speed = p.BaseSpeed * speedMult
	p.Transform.Translate(p.Transform.Forward().Mul(p.Speed * dt))
	p.Transform.Position[1] = vecmath.Clamp(p.Transform.Position.Y(), GroundHeight, Ceiling)

	if nearest == nil || best > a.FireDist {
		return false
	}
	dir := vecmath.Normalize(nearest.Position().Sub(p.Position()))
	return p.Transform.Forward().Dot(dir) >= a.FireCone
}
