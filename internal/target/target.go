// Package target spawns balloon score targets and resolves their pickup.
package target

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"skyhunter/internal/enemy"
	"skyhunter/internal/game"
	"skyhunter/internal/player"
	"skyhunter/internal/vecmath"
)

// Type identifies a balloon.
type Type string

const (
	Normal Type = "normal"
	Golden Type = "golden"
	Speed  Type = "speed"
	Time   Type = "time"
	Combo  Type = "combo"
)

const (
	// TimeBonus is added to the challenge timer by a Time balloon.
	TimeBonus = 5.0
	// ComboBonus is the extra combo a Combo balloon grants.
	ComboBonus = 4
	// CollectRadius is the pickup reach without a magnet upgrade.
	CollectRadius = 5.0
)

// Points returns the base score of a balloon type.
func Points(t Type) int {
	switch t {
	case Golden:
		return 500
	case Speed:
		return 200
	case Combo:
		return 150
	case Time:
		return 50
	default:
		return 100
	}
}

// Heal returns how much health a balloon restores.
func Heal(t Type) float64 {
	switch t {
	case Golden:
		return 20
	case Time:
		return 15
	default:
		return 10
	}
}

func floatAmount(t Type) float64 {
	switch t {
	case Golden:
		return 3
	case Speed:
		return 2.5
	default:
		return 2
	}
}

// Target is a floating balloon.
type Target struct {
	ID       string       `json:"id"`
	Type     Type         `json:"type"`
	Position vecmath.Vec3 `json:"position"`
	Points   int          `json:"points"`

	baseHeight float64
	floatPhase float64
	swayPhase  float64
}

// HitEvent is emitted when the player collects a target.
type HitEvent struct {
	TargetID string       `json:"target_id"`
	Type     Type         `json:"type"`
	Position vecmath.Vec3 `json:"position"`
	Points   int          `json:"points"`
	Elapsed  float64      `json:"elapsed"`
}

// Manager owns the live balloons for one session.
type Manager struct {
	Targets []*Target

	// Table selects the spawn mix; see Roll.
	Table           game.Mode
	MaxTargets      int
	MagnetLevel     int
	MultiplierLevel int

	rand enemy.Rand
	log  *slog.Logger
}

// NewManager returns a manager spawning balloons for the ruleset r.
func NewManager(r game.Ruleset, rnd enemy.Rand, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	table := r.Mode
	if r.TargetTable != "" {
		table = game.Mode(r.TargetTable)
	}
	return &Manager{Table: table, MaxTargets: r.MaxTargets, rand: rnd, log: log}
}

// Roll draws a balloon type from the table of mode m.
func Roll(m game.Mode, r enemy.Rand) Type {
	switch m {
	case game.TargetHunt:
		if r.Float64() < 0.1 {
			return Golden
		}
	case game.Survival:
		if r.Float64() < 0.2 {
			return Time
		}
	default:
		switch v := r.Float64(); {
		case v < 0.05:
			return Golden
		case v < 0.15:
			return Speed
		case v < 0.25:
			return Combo
		}
	}
	return Normal
}

// Update spawns at most one balloon below the cap, then animates every
// balloon and applies the magnet pull. It returns the new balloon, if any.
func (m *Manager) Update(dt, elapsed float64, playerPos vecmath.Vec3) *Target {
	var spawned *Target
	if len(m.Targets) < m.MaxTargets {
		spawned = m.spawn(playerPos)
	}

	for _, t := range m.Targets {
		sway := vecmath.Vec3{
			math.Sin(elapsed*0.6+t.swayPhase) * 1.5,
			0,
			math.Sin(elapsed*0.7+t.swayPhase+1) * 1.05,
		}
		t.Position = t.Position.Add(sway.Mul(dt))
		t.Position[1] = t.baseHeight + math.Sin(elapsed*0.8+t.floatPhase)*floatAmount(t.Type)
	}
	m.magnet(dt, playerPos)
	return spawned
}

func (m *Manager) spawn(playerPos vecmath.Vec3) *Target {
	dist := 100 + m.rand.Float64()*200
	angle := m.rand.Float64() * 2 * math.Pi
	height := 20 + m.rand.Float64()*100
	typ := Roll(m.Table, m.rand)
	t := &Target{
		ID:   uuid.New().String(),
		Type: typ,
		Position: vecmath.Vec3{
			playerPos.X() + math.Cos(angle)*dist,
			height,
			playerPos.Z() + math.Sin(angle)*dist,
		},
		Points:     Points(typ),
		baseHeight: height,
		floatPhase: m.rand.Float64() * 2 * math.Pi,
		swayPhase:  m.rand.Float64() * 2 * math.Pi,
	}
	m.Targets = append(m.Targets, t)
	return t
}

func (m *Manager) magnet(dt float64, playerPos vecmath.Vec3) {
	if m.MagnetLevel <= 0 {
		return
	}
	reach := game.MagnetRange(m.MagnetLevel) + 20
	strength := 15 * float64(m.MagnetLevel)
	for _, t := range m.Targets {
		d := vecmath.Distance(playerPos, t.Position)
		if d >= reach || d == 0 {
			continue
		}
		step := vecmath.Normalize(playerPos.Sub(t.Position)).Mul(strength * (1 - d/reach) * dt)
		t.Position = t.Position.Add(step)
		t.baseHeight += step.Y()
	}
}

// Collect picks up every balloon within reach of p. Each pickup scores
// Points * multiplier * (1 + combo/5) with the combo read before the hit,
// heals the player and applies the type's bonus.
func (m *Manager) Collect(p *player.Player, stats *game.Stats, timer *game.ChallengeTimer, elapsed float64) []HitEvent {
	if !p.Alive() {
		return nil
	}
	reach := CollectRadius + game.MagnetRange(m.MagnetLevel)
	mult := game.ScoreMultiplier(m.MultiplierLevel)

	var hits []HitEvent
	kept := m.Targets[:0]
	for _, t := range m.Targets {
		if vecmath.Distance(p.Position(), t.Position) >= reach {
			kept = append(kept, t)
			continue
		}
		points := t.Points * mult * (1 + stats.Combo/5)
		stats.AddScore(points)
		bonus := 0
		switch t.Type {
		case Time:
			timer.AddTime(TimeBonus)
		case Combo:
			bonus = ComboBonus
		}
		stats.RecordTargetHit(bonus)
		p.Health.Heal(Heal(t.Type))
		hits = append(hits, HitEvent{TargetID: t.ID, Type: t.Type, Position: t.Position, Points: points, Elapsed: elapsed})
		m.log.Debug("target hit", "target_type", t.Type, "points", points, "combo", stats.Combo)
	}
	m.Targets = kept
	return hits
}

// Reset clears live balloons for a new session.
func (m *Manager) Reset() { m.Targets = nil }
