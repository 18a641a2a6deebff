// Package powerup spawns collectible power-ups and tracks the timed effects
// they grant the player.
package powerup

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"skyhunter/internal/enemy"
	"skyhunter/internal/player"
	"skyhunter/internal/vecmath"
)

// Type identifies a power-up.
type Type string

const (
	RapidFire      Type = "rapid_fire"
	Shield         Type = "shield"
	SpeedBoost     Type = "speed_boost"
	HealthPack     Type = "health_pack"
	EnergyRecharge Type = "energy_recharge"
	TripleShot     Type = "triple_shot"
	HomingMissiles Type = "homing_missiles"
)

// Types lists every power-up in spawn-roll order.
var Types = []Type{RapidFire, Shield, SpeedBoost, HealthPack, EnergyRecharge, TripleShot, HomingMissiles}

const (
	MaxLive         = 3
	SpawnInterval   = 10.0
	Lifetime        = 30.0
	CollectRadius   = 8.0
	HealAmount      = 50.0
	BoostMultiplier = 2.0
)

// Duration returns how long a timed effect lasts, or 0 for instant ones.
func Duration(t Type) float64 {
	switch t {
	case RapidFire:
		return 10
	case Shield:
		return 15
	case SpeedBoost:
		return 8
	case TripleShot:
		return 12
	case HomingMissiles:
		return 20
	default:
		return 0
	}
}

// Parse maps a user-supplied name to a Type.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types {
		if string(t) == s || strings.ReplaceAll(string(t), "_", "") == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown power-up %q", s)
}

// PowerUp is a collectible floating in the world.
type PowerUp struct {
	ID       string       `json:"id"`
	Type     Type         `json:"type"`
	Position vecmath.Vec3 `json:"position"`
	Lifetime float64      `json:"lifetime"`
	BobPhase float64      `json:"-"`
}

// Active is the read-only flag view consumed by combat and the autopilot.
type Active struct {
	RapidFire       bool    `json:"rapid_fire"`
	Shield          bool    `json:"shield"`
	TripleShot      bool    `json:"triple_shot"`
	HomingMissiles  bool    `json:"homing_missiles"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
}

// Scorer receives points for collected power-ups.
type Scorer interface {
	AddScore(points int)
}

// Manager owns live power-ups and the player's running effects.
type Manager struct {
	PowerUps []*PowerUp

	effects map[Type]float64
	timer   float64
	rand    enemy.Rand
	log     *slog.Logger
}

// NewManager returns an empty manager.
func NewManager(r enemy.Rand, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{effects: make(map[Type]float64), rand: r, log: log}
}

// Update advances spawning, bobbing, expiry of uncollected power-ups and the
// countdown of running effects. It returns the power-up spawned this tick,
// if any.
func (m *Manager) Update(dt, elapsed float64, playerPos vecmath.Vec3) *PowerUp {
	kept := m.PowerUps[:0]
	for _, pu := range m.PowerUps {
		pu.Lifetime -= dt
		if pu.Lifetime <= 0 {
			continue
		}
		pu.Position[1] += math.Sin(elapsed*1.5+pu.BobPhase) * 2 * dt
		kept = append(kept, pu)
	}
	m.PowerUps = kept

	for t, remaining := range m.effects {
		remaining -= dt
		if remaining <= 0 {
			delete(m.effects, t)
			m.log.Debug("power-up expired", "powerup", t)
			continue
		}
		m.effects[t] = remaining
	}

	m.timer += dt
	if len(m.PowerUps) >= MaxLive || m.timer <= SpawnInterval {
		return nil
	}
	m.timer = 0
	dist := 100 + m.rand.Float64()*150
	angle := m.rand.Float64() * 2 * math.Pi
	height := 30 + m.rand.Float64()*80
	pu := &PowerUp{
		ID:   uuid.New().String(),
		Type: Types[m.rand.Intn(len(Types))],
		Position: vecmath.Vec3{
			playerPos.X() + math.Cos(angle)*dist,
			height,
			playerPos.Z() + math.Sin(angle)*dist,
		},
		Lifetime: Lifetime,
		BobPhase: m.rand.Float64() * 2 * math.Pi,
	}
	m.PowerUps = append(m.PowerUps, pu)
	return pu
}

// Collect picks up every power-up within reach of p and returns their types.
func (m *Manager) Collect(p *player.Player, sc Scorer) []Type {
	if !p.Alive() {
		return nil
	}
	var got []Type
	kept := m.PowerUps[:0]
	for _, pu := range m.PowerUps {
		if vecmath.Distance(p.Position(), pu.Position) < CollectRadius {
			m.Apply(pu.Type, p, sc)
			got = append(got, pu.Type)
			continue
		}
		kept = append(kept, pu)
	}
	m.PowerUps = kept
	return got
}

// Apply grants the effect of t immediately. Collecting a running timed
// effect again restarts its countdown.
func (m *Manager) Apply(t Type, p *player.Player, sc Scorer) {
	switch t {
	case HealthPack:
		if p != nil {
			p.Health.Heal(HealAmount)
		}
		sc.AddScore(50)
	case EnergyRecharge:
		sc.AddScore(50)
	default:
		if d := Duration(t); d > m.effects[t] {
			m.effects[t] = d
		}
		sc.AddScore(100)
	}
	m.log.Info("power-up collected", "powerup", t)
}

// Remaining returns the seconds left on a timed effect.
func (m *Manager) Remaining(t Type) float64 { return m.effects[t] }

// Active returns the current flag view.
func (m *Manager) Active() Active {
	a := Active{
		RapidFire:       m.effects[RapidFire] > 0,
		Shield:          m.effects[Shield] > 0,
		TripleShot:      m.effects[TripleShot] > 0,
		HomingMissiles:  m.effects[HomingMissiles] > 0,
		SpeedMultiplier: 1,
	}
	if m.effects[SpeedBoost] > 0 {
		a.SpeedMultiplier = BoostMultiplier
	}
	return a
}

// Reset clears live power-ups and effects for a new session.
func (m *Manager) Reset() {
	m.PowerUps = nil
	m.effects = make(map[Type]float64)
	m.timer = 0
}
