package enemy

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"skyhunter/internal/vecmath"
)

// Rand is the single source of randomness for every stochastic decision.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

var wingmanOffsets = [2]vecmath.Vec3{{-15, 0, -10}, {15, 0, -10}}

// wingmanOffset returns the leader-relative slot for a wingman. Even serials
// fly on the left.
func wingmanOffset(serial uint64) vecmath.Vec3 {
	if serial%2 == 0 {
		return wingmanOffsets[0]
	}
	return wingmanOffsets[1]
}

// Spawner decides when, where and what to spawn.
type Spawner struct {
	Tuning Tuning

	rand   Rand
	timer  float64
	serial uint64
	log    *slog.Logger
}

// NewSpawner returns a spawner drawing from r.
func NewSpawner(t Tuning, r Rand, log *slog.Logger) *Spawner {
	if log == nil {
		log = slog.Default()
	}
	return &Spawner{Tuning: t, rand: r, log: log}
}

// Cap returns the live-enemy cap for a difficulty level.
func (s *Spawner) Cap(difficulty float64) int {
	limit := s.Tuning.MaxEnemies
	if limit <= 0 {
		limit = MaxEnemies
	}
	return int(math.Min(5*difficulty, float64(limit)))
}

// Interval returns the spawn interval for a difficulty level.
func Interval(difficulty float64) float64 {
	if difficulty <= 0 {
		difficulty = 1
	}
	return 3.0 / math.Sqrt(difficulty)
}

// Update advances the spawn timer and returns any newly created enemies.
// The result never pushes the live count above Cap(difficulty).
func (s *Spawner) Update(dt float64, live int, player vecmath.Transform, difficulty float64) []*Enemy {
	capacity := s.Cap(difficulty)
	s.timer += dt
	if live >= capacity || s.timer <= Interval(difficulty) {
		return nil
	}
	s.timer = 0
	if s.rand.Float64() < 0.3+(difficulty-1)*0.1 && live+3 <= capacity {
		return s.SpawnFormation(player)
	}
	return []*Enemy{s.SpawnSingle(player, difficulty)}
}

// SpawnSingle creates one enemy on a ring 150..250 units from the player.
func (s *Spawner) SpawnSingle(player vecmath.Transform, difficulty float64) *Enemy {
	dist := 150 + s.rand.Float64()*100
	angle := s.rand.Float64() * 2 * math.Pi
	height := math.Max(player.Position.Y()+(-20+s.rand.Float64()*40), 30)
	pos := vecmath.Vec3{
		player.Position.X() + math.Cos(angle)*dist,
		height,
		player.Position.Z() + math.Sin(angle)*dist,
	}

	typ := s.rollType(difficulty)
	pers := s.rollPersonality(typ)

	en := s.newEnemy(typ, pers, pos, player.Position)
	en.ManeuverSkill = s.rollSkill(typ, pers)
	en.ReactionTime = s.rollReaction(pers)
	s.log.Info("enemy spawned", "enemy_id", en.ID, "enemy_type", typ, "personality", pers)
	return en
}

// SpawnFormation creates a leader and two wingmen 200..300 units from the
// player. The wingmen reference the leader by ID.
func (s *Spawner) SpawnFormation(player vecmath.Transform) []*Enemy {
	dist := 200 + s.rand.Float64()*100
	angle := s.rand.Float64() * 2 * math.Pi
	height := math.Max(player.Position.Y()+(-10+s.rand.Float64()*20), 40)
	center := vecmath.Vec3{
		player.Position.X() + math.Cos(angle)*dist,
		height,
		player.Position.Z() + math.Sin(angle)*dist,
	}
	typ := Fighter
	if s.rand.Float64() >= 0.7 {
		typ = Bomber
	}

	leader := s.newFormationMember(typ, Tactical, center, player.Position)
	leader.Role = FormationRole{Kind: RoleLeader}
	group := []*Enemy{leader}

	for range wingmanOffsets {
		pers := Defensive
		if s.rand.Float64() < 0.5 {
			pers = Tactical
		}
		pos := center.Add(leader.Transform.Rotation.Rotate(wingmanOffset(s.serial + 1)))
		w := s.newFormationMember(typ, pers, pos, player.Position)
		w.Role = WingmanOf(leader.ID)
		group = append(group, w)
	}
	s.log.Info("formation spawned", "leader_id", leader.ID, "enemy_type", typ)
	return group
}

func (s *Spawner) newFormationMember(typ Type, pers Personality, pos, look vecmath.Vec3) *Enemy {
	en := s.newEnemy(typ, pers, pos, look)
	en.State = State(StateFormation)
	en.Morale = FormationMorale
	en.ManeuverSkill = 0.5 + s.rand.Float64()*0.3
	en.ReactionTime = 0.3 + s.rand.Float64()*0.2
	return en
}

func (s *Spawner) newEnemy(typ Type, pers Personality, pos, look vecmath.Vec3) *Enemy {
	a := s.Tuning.archetype(typ)
	attack, pursuit := s.Tuning.AttackRange, s.Tuning.PursuitRange
	if attack <= 0 {
		attack = DefaultAttackRange
	}
	if pursuit <= 0 {
		pursuit = DefaultPursuitRange
	}
	s.serial++
	return &Enemy{
		ID:                uuid.New().String(),
		Serial:            s.serial,
		Type:              typ,
		Personality:       pers,
		State:             State(StatePatrol),
		Speed:             a.Speed,
		Damage:            a.Damage,
		AttackRange:       attack,
		PursuitRange:      pursuit,
		PreferredDistance: a.PreferredDistance,
		Morale:            BaseMorale,
		Scale:             a.Scale,
		Color:             a.Color,
		Transform:         vecmath.NewTransform(pos).LookingAt(look, vecmath.Up),
		Health:            NewHealth(a.Health),
	}
}

func (s *Spawner) rollType(difficulty float64) Type {
	if s.rand.Float64() < 0.05+(difficulty-1)*0.1 {
		return Ace
	}
	if s.rand.Float64() < 0.2+(difficulty-1)*0.1 {
		return Bomber
	}
	return Fighter
}

func (s *Spawner) rollPersonality(typ Type) Personality {
	switch typ {
	case Ace:
		if s.rand.Float64() < 0.5 {
			return Veteran
		}
		return ShowOff
	case Bomber:
		if s.rand.Float64() < 0.7 {
			return Defensive
		}
		return Tactical
	default:
		return [...]Personality{Aggressive, Defensive, Tactical, ShowOff}[s.rand.Intn(4)]
	}
}

func (s *Spawner) rollSkill(typ Type, p Personality) float64 {
	switch {
	case typ == Ace:
		return 0.8 + s.rand.Float64()*0.2
	case p == Veteran:
		return 0.7 + s.rand.Float64()*0.2
	case p == ShowOff:
		return 0.6 + s.rand.Float64()*0.3
	case typ == Fighter:
		return 0.4 + s.rand.Float64()*0.3
	default:
		return 0.2 + s.rand.Float64()*0.2
	}
}

func (s *Spawner) rollReaction(p Personality) float64 {
	switch p {
	case Veteran:
		return 0.2 + s.rand.Float64()*0.1
	case Aggressive:
		return 0.3 + s.rand.Float64()*0.2
	case Defensive:
		return 0.4 + s.rand.Float64()*0.2
	default:
		return 0.5 + s.rand.Float64()*0.3
	}
}
