// Package combat resolves shooting, projectile flight and collisions between
// the player, enemies and their bullets.
package combat

import (
	"skyhunter/internal/vecmath"
)

// Owner says which side fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

const (
	BulletLifetime    = 3.0
	HitRadius         = 5.0
	EnemyBulletSpeed  = 120.0
	PlayerBulletSpeed = 250.0
)

// Bullet is an ephemeral projectile. Bullets never interact with each other.
type Bullet struct {
	Owner    Owner
	SourceID string
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Damage   float64
	Lifetime float64

	spent bool
}

// Spent reports whether the bullet has hit something or run out of time.
func (b *Bullet) Spent() bool { return b.spent || b.Lifetime <= 0 }

func (b *Bullet) consume() { b.spent = true }

// Advance moves every bullet by velocity*dt, burns lifetime and returns the
// survivors. The input slice is reused.
func Advance(bullets []*Bullet, dt float64) []*Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if b.Spent() {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.Lifetime -= dt
		if b.Lifetime <= 0 {
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(bullets); i++ {
		bullets[i] = nil
	}
	return kept
}

// Sweep drops bullets consumed by collisions this tick.
func Sweep(bullets []*Bullet) []*Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if !b.Spent() {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(bullets); i++ {
		bullets[i] = nil
	}
	return kept
}
