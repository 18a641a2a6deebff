package combat

import (
	"log/slog"

	"skyhunter/internal/enemy"
	"skyhunter/internal/player"
	"skyhunter/internal/powerup"
	"skyhunter/internal/vecmath"
)

// ShieldFactor is the fraction of bullet damage that gets through a shield.
const ShieldFactor = 0.2

// Scoreboard receives points and kill counts. Bullet kills and rams may both
// report within one tick.
type Scoreboard interface {
	AddScore(points int)
	RecordKill()
}

// Referee ends the session. Repeated calls must be harmless.
type Referee interface {
	GameOver(reason string)
}

// Outcome summarises one collision pass.
type Outcome struct {
	Destroyed    []enemy.DestroyedEvent
	Retreats     []string
	PlayerHits   int
	DamageTaken  float64
	CameraShake  bool
	PlayerKilled bool
}

// Resolver applies collision results to the world.
type Resolver struct {
	Score   Scoreboard
	Referee Referee
	Log     *slog.Logger
}

func (r *Resolver) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// PlayerBullets lets each player bullet hit at most one enemy: the first in
// iteration order inside HitRadius. Enemies killed earlier in the same pass
// are skipped so a kill is reported exactly once.
func (r *Resolver) PlayerBullets(bullets []*Bullet, enemies []*enemy.Enemy, elapsed float64, out *Outcome) {
	for _, b := range bullets {
		if b.Spent() || b.Owner != OwnerPlayer {
			continue
		}
		for _, en := range enemies {
			if en.Gone() || vecmath.Distance(b.Position, en.Position()) >= HitRadius {
				continue
			}
			b.consume()
			en.Health.Damage(b.Damage)
			if en.Health.Dead() {
				en.Health.Current = 0
				r.destroy(en, enemy.CauseShot, enemy.KillPoints(en.Type), elapsed, out)
			} else if en.Health.Current < en.Health.Max*enemy.RetreatHealthRatio && en.ForceRetreat() {
				out.Retreats = append(out.Retreats, en.ID)
				r.logger().Debug("enemy forced to retreat", "enemy_id", en.ID, "health", en.Health.Current)
			}
			break
		}
	}
}

// EnemyBullets applies enemy fire to the player. A shield lets only
// ShieldFactor of the damage through.
func (r *Resolver) EnemyBullets(bullets []*Bullet, p *player.Player, fx powerup.Active, out *Outcome) {
	if !p.Alive() {
		return
	}
	for _, b := range bullets {
		if b.Spent() || b.Owner != OwnerEnemy {
			continue
		}
		if vecmath.Distance(b.Position, p.Position()) >= HitRadius {
			continue
		}
		b.consume()
		dmg := b.Damage
		if fx.Shield {
			dmg *= ShieldFactor
		}
		p.Health.Damage(dmg)
		out.PlayerHits++
		out.DamageTaken += dmg
		if p.Health.Dead() {
			r.playerDown(p, "shot down", out)
			return
		}
	}
}

// Rams destroys every enemy touching the player and charges the player the
// airframe's collision damage.
func (r *Resolver) Rams(enemies []*enemy.Enemy, p *player.Player, elapsed float64, out *Outcome) {
	if !p.Alive() {
		return
	}
	for _, en := range enemies {
		if en.Gone() || vecmath.Distance(en.Position(), p.Position()) >= enemy.RamRadius(en.Type) {
			continue
		}
		dmg := enemy.RamDamage(en.Type)
		p.Health.Damage(dmg)
		if p.Health.Current < 0 {
			p.Health.Current = 0
		}
		out.DamageTaken += dmg
		out.CameraShake = true
		r.destroy(en, enemy.CauseRam, enemy.RamPoints(en.Type), elapsed, out)
		if p.Health.Dead() {
			r.playerDown(p, "collision", out)
			return
		}
	}
}

func (r *Resolver) destroy(en *enemy.Enemy, cause enemy.DestroyCause, points int, elapsed float64, out *Outcome) {
	en.Despawn()
	if r.Score != nil {
		r.Score.AddScore(points)
		r.Score.RecordKill()
	}
	out.Destroyed = append(out.Destroyed, enemy.DestroyedEvent{
		EnemyID:  en.ID,
		Type:     en.Type,
		Position: en.Position(),
		Cause:    cause,
		Points:   points,
		Elapsed:  elapsed,
	})
	r.logger().Info("enemy destroyed", "enemy_id", en.ID, "enemy_type", en.Type, "cause", cause, "points", points)
}

func (r *Resolver) playerDown(p *player.Player, reason string, out *Outcome) {
	p.Health.Current = 0
	out.PlayerKilled = true
	r.logger().Info("player destroyed", "reason", reason)
	if r.Referee != nil {
		r.Referee.GameOver(reason)
	}
}
