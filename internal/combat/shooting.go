package combat

import (
	"math"

	"skyhunter/internal/enemy"
	"skyhunter/internal/player"
	"skyhunter/internal/powerup"
	"skyhunter/internal/vecmath"
)

const (
	PlayerFireRate     = 0.25
	RapidFireRate      = 0.1
	PlayerDamage       = 25.0
	HomingDamage       = 50.0
	muzzleOffsetEnemy  = 4.0
	muzzleOffsetPlayer = 5.0
)

var (
	twinGuns   = []float64{-2, 2}
	tripleGuns = []float64{-3, 0, 3}
)

// canFire reports whether en may shoot this tick. The reaction-time gate
// keeps a pilot from firing the instant it enters an attacking state.
func canFire(en *enemy.Enemy, dist float64) bool {
	switch en.State.Kind {
	case enemy.StateAttacking, enemy.StateStrafing, enemy.StateSupporting, enemy.StateFormation:
	default:
		return false
	}
	return dist < en.AttackRange && en.ShootCooldown <= 0 && en.StateTimer < 2.0-en.ReactionTime
}

// EnemyFire ticks every shoot cooldown and returns the bullets fired.
func EnemyFire(enemies []*enemy.Enemy, pv *enemy.PlayerView, dt float64, r enemy.Rand) []*Bullet {
	if pv == nil {
		return nil
	}
	var out []*Bullet
	for _, en := range enemies {
		if en.Gone() {
			continue
		}
		if en.ShootCooldown > 0 {
			en.ShootCooldown = math.Max(0, en.ShootCooldown-dt)
		}
		dist := vecmath.Distance(pv.Position(), en.Position())
		if !canFire(en, dist) {
			continue
		}
		en.ShootCooldown = enemy.FireRate(en.Type, en.Personality)

		travel := dist / EnemyBulletSpeed
		predicted := pv.Position().Add(pv.Velocity().Mul(travel * 0.5))
		dir := vecmath.Normalize(predicted.Sub(en.Position()))

		spread := enemy.BaseAccuracy(en.Type) * enemy.AccuracyModifier(en.Personality) * (2 - en.ManeuverSkill)
		jitter := vecmath.Vec3{
			(r.Float64() - 0.5) * spread,
			(r.Float64() - 0.5) * spread,
			(r.Float64() - 0.5) * spread,
		}
		vel := vecmath.Normalize(dir.Add(jitter)).Mul(EnemyBulletSpeed)

		out = append(out, &Bullet{
			Owner:    OwnerEnemy,
			SourceID: en.ID,
			Position: en.Position().Add(en.Transform.Forward().Mul(muzzleOffsetEnemy)),
			Velocity: vel,
			Damage:   en.Damage,
			Lifetime: BulletLifetime,
		})
	}
	return out
}

// PlayerFire ticks the player's gun cooldown and fires when trigger is held
// and the gun is ready.
func PlayerFire(p *player.Player, fx powerup.Active, trigger bool, dt float64) []*Bullet {
	if !p.Alive() {
		return nil
	}
	p.ShootCooldown = math.Max(0, p.ShootCooldown-dt)
	if !trigger || p.ShootCooldown > 0 {
		return nil
	}
	p.ShootCooldown = PlayerFireRate
	if fx.RapidFire {
		p.ShootCooldown = RapidFireRate
	}
	guns := twinGuns
	if fx.TripleShot {
		guns = tripleGuns
	}
	damage := PlayerDamage
	if fx.HomingMissiles {
		damage = HomingDamage
	}

	fwd := p.Transform.Forward()
	right := p.Transform.Right()
	out := make([]*Bullet, 0, len(guns))
	for _, off := range guns {
		out = append(out, &Bullet{
			Owner:    OwnerPlayer,
			Position: p.Position().Add(fwd.Mul(muzzleOffsetPlayer)).Add(right.Mul(off)),
			Velocity: fwd.Mul(PlayerBulletSpeed),
			Damage:   damage,
			Lifetime: BulletLifetime,
		})
	}
	return out
}
