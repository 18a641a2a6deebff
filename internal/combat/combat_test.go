package combat

import (
	"math"
	"math/rand"
	"testing"

	"skyhunter/internal/enemy"
	"skyhunter/internal/player"
	"skyhunter/internal/powerup"
	"skyhunter/internal/vecmath"
)

type board struct {
	score, kills int
}

func (b *board) AddScore(p int) { b.score += p }
func (b *board) RecordKill()    { b.kills++ }

type referee struct{ calls int }

func (r *referee) GameOver(string) { r.calls++ }

func newEnemy(id string, typ enemy.Type, pos vecmath.Vec3) *enemy.Enemy {
	a := enemy.DefaultArchetypes()[typ]
	return &enemy.Enemy{
		ID:           id,
		Type:         typ,
		Personality:  enemy.Tactical,
		State:        enemy.State(enemy.StatePursuing),
		Speed:        a.Speed,
		Damage:       a.Damage,
		AttackRange:  enemy.DefaultAttackRange,
		PursuitRange: enemy.DefaultPursuitRange,
		ReactionTime: 0.3,
		Transform:    vecmath.NewTransform(pos),
		Health:       enemy.NewHealth(a.Health),
	}
}

func shot(at vecmath.Vec3, dmg float64) *Bullet {
	return &Bullet{Owner: OwnerPlayer, Position: at, Damage: dmg, Lifetime: BulletLifetime}
}

func TestPlayerBullets_FighterTwoHits(t *testing.T) {
	en := newEnemy("f", enemy.Fighter, vecmath.Vec3{0, 50, -40})
	sc := &board{}
	r := &Resolver{Score: sc}

	var out Outcome
	b1 := shot(vecmath.Vec3{0, 50, -41}, 25)
	r.PlayerBullets([]*Bullet{b1}, []*enemy.Enemy{en}, 1, &out)
	if en.Health.Current != 25 || !en.State.Is(enemy.StatePursuing) {
		t.Fatalf("after first hit: health %v state %s", en.Health.Current, en.State)
	}
	if !b1.Spent() || len(out.Destroyed) != 0 {
		t.Fatalf("first hit: bullet spent=%v events=%d", b1.Spent(), len(out.Destroyed))
	}

	b2 := shot(vecmath.Vec3{1, 50, -40}, 25)
	r.PlayerBullets([]*Bullet{b2}, []*enemy.Enemy{en}, 2, &out)
	if len(out.Destroyed) != 1 {
		t.Fatalf("expected one destroyed event, got %d", len(out.Destroyed))
	}
	ev := out.Destroyed[0]
	if ev.Points != 50 || ev.Type != enemy.Fighter || ev.Cause != enemy.CauseShot {
		t.Fatalf("unexpected event %+v", ev)
	}
	if sc.score != 50 || sc.kills != 1 {
		t.Fatalf("score %d kills %d", sc.score, sc.kills)
	}
	if !en.Gone() || en.Health.Current != 0 {
		t.Fatalf("enemy not removed: health %v", en.Health.Current)
	}
}

func TestPlayerBullets_RetreatBelowThreshold(t *testing.T) {
	en := newEnemy("b", enemy.Bomber, vecmath.Vec3{})
	en.State = enemy.State(enemy.StateAttacking)
	var out Outcome
	(&Resolver{Score: &board{}}).PlayerBullets([]*Bullet{shot(vecmath.Vec3{}, 75)}, []*enemy.Enemy{en}, 0, &out)
	if !en.State.Is(enemy.StateRetreating) || en.StateTimer != enemy.RetreatDuration {
		t.Fatalf("state %s timer %v", en.State, en.StateTimer)
	}
	if len(out.Retreats) != 1 {
		t.Fatalf("retreats = %v", out.Retreats)
	}

	// already retreating: the timer is left alone
	en.StateTimer = 1
	out = Outcome{}
	(&Resolver{Score: &board{}}).PlayerBullets([]*Bullet{shot(vecmath.Vec3{}, 1)}, []*enemy.Enemy{en}, 0, &out)
	if en.StateTimer != 1 || len(out.Retreats) != 0 {
		t.Fatalf("retreat re-triggered")
	}
}

func TestPlayerBullets_DeadEnemyExcludedSamePass(t *testing.T) {
	en := newEnemy("f", enemy.Fighter, vecmath.Vec3{})
	en.Health.Current = 20
	sc := &board{}
	b1, b2 := shot(vecmath.Vec3{}, 25), shot(vecmath.Vec3{}, 25)
	var out Outcome
	(&Resolver{Score: sc}).PlayerBullets([]*Bullet{b1, b2}, []*enemy.Enemy{en}, 0, &out)
	if len(out.Destroyed) != 1 || sc.kills != 1 {
		t.Fatalf("kill reported %d times", len(out.Destroyed))
	}
	if b2.Spent() {
		t.Fatalf("second bullet should pass through the wreck")
	}
}

func TestPlayerBullets_OneEnemyPerBullet(t *testing.T) {
	a := newEnemy("a", enemy.Bomber, vecmath.Vec3{})
	b := newEnemy("b", enemy.Bomber, vecmath.Vec3{1, 0, 0})
	var out Outcome
	(&Resolver{Score: &board{}}).PlayerBullets([]*Bullet{shot(vecmath.Vec3{0.5, 0, 0}, 10)}, []*enemy.Enemy{a, b}, 0, &out)
	if a.Health.Current != 90 || b.Health.Current != 100 {
		t.Fatalf("health a=%v b=%v", a.Health.Current, b.Health.Current)
	}
}

func TestEnemyBullets_ShieldAndGameOver(t *testing.T) {
	p := player.New(50, 100, 1, 1)
	ref := &referee{}
	r := &Resolver{Score: &board{}, Referee: ref}

	var out Outcome
	hit := &Bullet{Owner: OwnerEnemy, Position: p.Position(), Damage: 20, Lifetime: 1}
	r.EnemyBullets([]*Bullet{hit}, p, powerup.Active{Shield: true}, &out)
	if p.Health.Current != 96 || out.PlayerHits != 1 {
		t.Fatalf("shielded hit: health %v hits %d", p.Health.Current, out.PlayerHits)
	}

	p.Health.Current = 10
	b1 := &Bullet{Owner: OwnerEnemy, Position: p.Position(), Damage: 20, Lifetime: 1}
	b2 := &Bullet{Owner: OwnerEnemy, Position: p.Position(), Damage: 20, Lifetime: 1}
	out = Outcome{}
	r.EnemyBullets([]*Bullet{b1, b2}, p, powerup.Active{}, &out)
	if !out.PlayerKilled || ref.calls != 1 || p.Health.Current != 0 {
		t.Fatalf("killed=%v calls=%d health=%v", out.PlayerKilled, ref.calls, p.Health.Current)
	}
	r.EnemyBullets([]*Bullet{b2}, p, powerup.Active{}, &out)
	if ref.calls != 1 {
		t.Fatalf("dead player took more hits")
	}
}

func TestRams(t *testing.T) {
	p := player.New(50, 100, 1, 1)
	bomber := newEnemy("b", enemy.Bomber, p.Position().Add(vecmath.Vec3{7, 0, 0}))
	ace := newEnemy("a", enemy.Ace, p.Position().Add(vecmath.Vec3{7, 0, 0}))
	sc := &board{}
	var out Outcome
	(&Resolver{Score: sc}).Rams([]*enemy.Enemy{bomber, ace}, p, 3, &out)
	if p.Health.Current != 60 {
		t.Fatalf("health = %v, want 60", p.Health.Current)
	}
	if !bomber.Gone() || ace.Gone() {
		t.Fatalf("ram radius wrong: bomber gone=%v ace gone=%v", bomber.Gone(), ace.Gone())
	}
	if sc.score != 50 || sc.kills != 1 || !out.CameraShake {
		t.Fatalf("score %d kills %d shake %v", sc.score, sc.kills, out.CameraShake)
	}
	if out.Destroyed[0].Cause != enemy.CauseRam {
		t.Fatalf("cause = %s", out.Destroyed[0].Cause)
	}
}

func TestRams_HealthFloorAndGameOver(t *testing.T) {
	p := player.New(50, 100, 1, 1)
	p.Health.Current = 10
	f := newEnemy("f", enemy.Fighter, p.Position())
	ref := &referee{}
	var out Outcome
	(&Resolver{Score: &board{}, Referee: ref}).Rams([]*enemy.Enemy{f}, p, 0, &out)
	if p.Health.Current != 0 || ref.calls != 1 || !out.PlayerKilled {
		t.Fatalf("health %v calls %d", p.Health.Current, ref.calls)
	}
}

func TestEnemyFire_Gates(t *testing.T) {
	pv := &enemy.PlayerView{Transform: vecmath.NewTransform(vecmath.Vec3{0, 50, 0})}
	en := newEnemy("f", enemy.Fighter, vecmath.Vec3{0, 50, -30})
	r := rand.New(rand.NewSource(1))

	if got := EnemyFire([]*enemy.Enemy{en}, pv, 0.016, r); len(got) != 0 {
		t.Fatalf("pursuing enemy fired")
	}

	en.State = enemy.State(enemy.StateAttacking)
	en.StateTimer = 1.9
	if got := EnemyFire([]*enemy.Enemy{en}, pv, 0.016, r); len(got) != 0 {
		t.Fatalf("fired inside the reaction window")
	}

	en.StateTimer = 1.0
	got := EnemyFire([]*enemy.Enemy{en}, pv, 0.016, r)
	if len(got) != 1 {
		t.Fatalf("expected a shot, got %d", len(got))
	}
	if en.ShootCooldown != enemy.FireRate(enemy.Fighter, enemy.Tactical) {
		t.Fatalf("cooldown = %v", en.ShootCooldown)
	}
	b := got[0]
	if math.Abs(b.Velocity.Len()-EnemyBulletSpeed) > 1e-6 || b.Damage != en.Damage || b.Lifetime != BulletLifetime {
		t.Fatalf("bullet %+v", b)
	}
	if got := EnemyFire([]*enemy.Enemy{en}, pv, 0.5, r); len(got) != 0 {
		t.Fatalf("fired during cooldown")
	}
	if got := EnemyFire([]*enemy.Enemy{en}, pv, 0.7, r); len(got) != 1 {
		t.Fatalf("cooldown did not expire")
	}

	en.Transform.Position = vecmath.Vec3{0, 50, -60}
	en.ShootCooldown = 0
	if got := EnemyFire([]*enemy.Enemy{en}, pv, 0.016, r); len(got) != 0 {
		t.Fatalf("fired out of range")
	}
}

func TestEnemyFire_AceAimsTight(t *testing.T) {
	pv := &enemy.PlayerView{Transform: vecmath.NewTransform(vecmath.Vec3{0, 50, 0})}
	en := newEnemy("a", enemy.Ace, vecmath.Vec3{40, 50, 0})
	en.Personality = enemy.Veteran
	en.ManeuverSkill = 1
	en.State = enemy.State(enemy.StateStrafing)
	got := EnemyFire([]*enemy.Enemy{en}, pv, 0.016, rand.New(rand.NewSource(3)))
	if len(got) != 1 {
		t.Fatalf("expected a shot")
	}
	dir := vecmath.Normalize(got[0].Velocity)
	if dir.Dot(vecmath.Vec3{-1, 0, 0}) < 0.99 {
		t.Fatalf("ace shot off target: %v", dir)
	}
}

func TestPlayerFire(t *testing.T) {
	p := player.New(50, 100, 1, 1)
	if got := PlayerFire(p, powerup.Active{}, true, 0.016); len(got) != 2 {
		t.Fatalf("twin guns fired %d", len(got))
	} else if got[0].Damage != PlayerDamage || math.Abs(got[0].Velocity.Len()-PlayerBulletSpeed) > 1e-9 {
		t.Fatalf("bullet %+v", got[0])
	}
	if got := PlayerFire(p, powerup.Active{}, true, 0.1); len(got) != 0 {
		t.Fatalf("fired during cooldown")
	}
	p.ShootCooldown = 0
	got := PlayerFire(p, powerup.Active{TripleShot: true, HomingMissiles: true, RapidFire: true}, true, 0.016)
	if len(got) != 3 || got[0].Damage != HomingDamage {
		t.Fatalf("triple/homing: %d bullets", len(got))
	}
	if p.ShootCooldown != RapidFireRate {
		t.Fatalf("cooldown = %v", p.ShootCooldown)
	}
	if got := PlayerFire(p, powerup.Active{}, false, 1); len(got) != 0 {
		t.Fatalf("fired without trigger")
	}
}

func TestAdvanceExpires(t *testing.T) {
	bs := []*Bullet{
		{Velocity: vecmath.Vec3{10, 0, 0}, Lifetime: 1},
		{Velocity: vecmath.Vec3{10, 0, 0}, Lifetime: 0.05},
	}
	bs = Advance(bs, 0.1)
	if len(bs) != 1 {
		t.Fatalf("expected one survivor, got %d", len(bs))
	}
	if bs[0].Position.X() != 1 {
		t.Fatalf("position %v", bs[0].Position)
	}
}
