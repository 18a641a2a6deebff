// Package player holds the player aircraft record and the scripted autopilot
// the headless simulator flies it with.
package player

import (
	"skyhunter/internal/enemy"
	"skyhunter/internal/vecmath"
)

const (
	DefaultSpeed     = 50.0
	DefaultRollSpeed = 1.5
	DefaultHealth    = 100.0
	DefaultAltitude  = 50.0

	GroundHeight = 5.0
	Ceiling      = 400.0
)

// Player is the single player-controlled aircraft.
type Player struct {
	Transform vecmath.Transform
	BaseSpeed float64
	Speed     float64
	RollSpeed float64
	Health    enemy.Health

	// ShootCooldown is owned by the player gun in the combat package.
	ShootCooldown float64
}

// New returns a player at the given altitude above the origin. Upgrade
// levels scale speed and roll rate.
func New(altitude, health float64, speedLevel, maneuverLevel int) *Player {
	if altitude <= 0 {
		altitude = DefaultAltitude
	}
	if health <= 0 {
		health = DefaultHealth
	}
	speed := DefaultSpeed * SpeedBonus(speedLevel)
	return &Player{
		Transform: vecmath.NewTransform(vecmath.Vec3{0, altitude, 0}),
		BaseSpeed: speed,
		Speed:     speed,
		RollSpeed: DefaultRollSpeed * ManeuverabilityBonus(maneuverLevel),
		Health:    enemy.NewHealth(health),
	}
}

// Alive reports whether the player can still fly.
func (p *Player) Alive() bool { return p != nil && !p.Health.Dead() }

// View returns the read-only snapshot the AI and combat consume, or nil
// when there is no living player.
func (p *Player) View() *enemy.PlayerView {
	if !p.Alive() {
		return nil
	}
	return &enemy.PlayerView{Transform: p.Transform, Speed: p.Speed}
}

// Position is shorthand for the player's world position.
func (p *Player) Position() vecmath.Vec3 { return p.Transform.Position }

// SpeedBonus is the speed multiplier granted by an engine upgrade level.
func SpeedBonus(level int) float64 {
	if level < 1 {
		level = 1
	}
	return 1 + float64(level-1)*0.2
}

// ManeuverabilityBonus is the roll-rate multiplier of a handling upgrade.
func ManeuverabilityBonus(level int) float64 {
	if level < 1 {
		level = 1
	}
	return 1 + float64(level-1)*0.15
}

// UpgradeCost is the coin price of reaching the next level.
func UpgradeCost(level int) int {
	return 100 * level * level
}
