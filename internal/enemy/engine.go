package enemy

import (
	"log/slog"
	"math"

	"skyhunter/internal/vecmath"
)

// formationBreakDistance is how far a wingman may drift from its slot
// before flying on its own.
const formationBreakDistance = 50.0

// Engine owns the live enemies and runs their behavior state machines.
type Engine struct {
	Enemies []*Enemy

	rand Rand
	log  *slog.Logger
}

// StepResult holds the events produced by one AI pass.
type StepResult struct {
	Chatter   []ChatterEvent
	Formation []FormationEvent
}

// NewEngine creates an empty engine.
func NewEngine(r Rand, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{rand: r, log: log}
}

// Add registers newly spawned enemies.
func (e *Engine) Add(ens ...*Enemy) {
	e.Enemies = append(e.Enemies, ens...)
}

// Find returns the live enemy with id, or nil.
func (e *Engine) Find(id string) *Enemy {
	for _, en := range e.Enemies {
		if en.ID == id && !en.Gone() {
			return en
		}
	}
	return nil
}

// Live returns the number of enemies still in play.
func (e *Engine) Live() int {
	n := 0
	for _, en := range e.Enemies {
		if !en.Gone() {
			n++
		}
	}
	return n
}

// Prune drops dead and despawned enemies and returns them.
func (e *Engine) Prune() []*Enemy {
	var removed []*Enemy
	kept := e.Enemies[:0]
	for _, en := range e.Enemies {
		if en.Gone() {
			removed = append(removed, en)
			continue
		}
		kept = append(kept, en)
	}
	for i := len(kept); i < len(e.Enemies); i++ {
		e.Enemies[i] = nil
	}
	e.Enemies = kept
	return removed
}

// leaderSnapshot captures every live leader's pose before any enemy moves.
func (e *Engine) leaderSnapshot() map[string]vecmath.Transform {
	leaders := make(map[string]vecmath.Transform)
	for _, en := range e.Enemies {
		if en.Role.Kind == RoleLeader && !en.Gone() {
			leaders[en.ID] = en.Transform
		}
	}
	return leaders
}

// Step advances every live enemy by dt. A nil player makes the pass a no-op.
func (e *Engine) Step(player *PlayerView, dt, elapsed float64) StepResult {
	var res StepResult
	if player == nil {
		return res
	}
	leaders := e.leaderSnapshot()

	// wingmen whose leader vanished fly on their own before anything moves
	for _, en := range e.Enemies {
		if en.Gone() || en.Role.Kind != RoleWingman {
			continue
		}
		if _, ok := leaders[en.Role.LeaderID]; ok {
			continue
		}
		res.Formation = append(res.Formation, FormationEvent{Kind: FormationOrphaned, EnemyID: en.ID, LeaderID: en.Role.LeaderID})
		e.log.Debug("wingman orphaned", "enemy_id", en.ID, "leader_id", en.Role.LeaderID)
		en.Role = FormationRole{}
		e.transition(en, State(StatePursuing), 0)
	}

	for _, en := range e.Enemies {
		if en.Gone() {
			continue
		}
		if ev := e.update(en, player, leaders, dt, elapsed, &res); ev != nil {
			res.Chatter = append(res.Chatter, *ev)
		}
	}
	return res
}

func (e *Engine) transition(en *Enemy, to BehaviorState, timer float64) {
	if en.State != to {
		e.log.Debug("enemy state change", "enemy_id", en.ID, "from", en.State.String(), "state", to.String())
	}
	en.enter(to, timer)
}

func (e *Engine) update(en *Enemy, player *PlayerView, leaders map[string]vecmath.Transform, dt, elapsed float64, res *StepResult) *ChatterEvent {
	toPlayer := player.Position().Sub(en.Position())
	dist := toPlayer.Len()
	tr := &en.Transform

	en.StateTimer -= dt

	en.Morale = en.Health.Ratio() * 1.2
	if en.Morale < 0.3 && !en.State.Is(StateRetreating) {
		e.transition(en, State(StateRetreating), 0)
	}
	aggression := AggressionModifier(en.Personality)

	var chatter *ChatterEvent
	if elapsed-en.LastTauntTime > TauntInterval {
		if msg := Chatter(en, dist, e.rand); msg != "" {
			en.LastTauntTime = elapsed
			chatter = &ChatterEvent{EnemyID: en.ID, Message: msg, Sender: en.Type, Personality: en.Personality, Elapsed: elapsed}
		}
	}

	switch en.State.Kind {
	case StatePatrol:
		if dist < en.PursuitRange {
			e.transition(en, State(StatePursuing), 2.0)
			break
		}
		angle := elapsed * 0.5
		offset := vecmath.Vec3{math.Cos(angle) * 50, 0, math.Sin(angle) * 50}
		tr.SlerpTowards(vecmath.LookRotation(offset, vecmath.Up), dt)
		tr.Translate(tr.Forward().Mul(en.Speed * 0.5 * dt))

	case StatePursuing:
		switch {
		case dist < en.AttackRange:
			e.transition(en, State(StateAttacking), 1.5)
		case dist > en.PursuitRange*1.5:
			e.transition(en, State(StatePatrol), 0)
		default:
			e.chase(en, player, dist, 0.5, 3, dt)
		}

	case StateAttacking:
		switch {
		case dist > en.AttackRange*1.2:
			e.transition(en, State(StatePursuing), 0)
		case en.StateTimer <= 0:
			next := e.attackPattern(en)
			if e.rand.Float64() > 0.5 {
				en.EvasionAngle = 1
			} else {
				en.EvasionAngle = -1
			}
			timer := AttackDuration
			if next.Is(StateManeuvering) {
				timer = ManeuverDuration
			}
			e.transition(en, next, timer)
		default:
			distErr := dist - en.PreferredDistance*aggression
			if math.Abs(distErr) > 5 {
				mult := 1.0
				if distErr < 0 {
					mult = -0.5
				}
				tr.Translate(tr.Forward().Mul(en.Speed * mult * dt))
			}
			lead := LeadFactor(en.Type, en.Personality, en.ManeuverSkill)
			aim := player.Position().Add(player.Velocity().Mul(lead))
			tr.SlerpTowards(vecmath.LookRotation(aim.Sub(en.Position()), vecmath.Up), dt*2.5)
		}

	case StateStrafing:
		if en.StateTimer <= 0 {
			e.transition(en, State(StateAttacking), 1.0)
			break
		}
		tangent := vecmath.Normalize(vecmath.Normalize(toPlayer).Cross(vecmath.Up)).Mul(en.EvasionAngle)
		tr.Translate(tangent.Mul(en.Speed * 0.8 * dt))
		tr.SlerpTowards(vecmath.LookRotation(toPlayer, vecmath.Up), dt*4)
		tr.Position[1] = vecmath.Clamp(player.Position().Y(), 20, 200)

	case StateEvading:
		if en.StateTimer <= 0 {
			e.transition(en, State(StatePursuing), 0)
			break
		}
		roll := math.Sin(elapsed*3+en.EvasionAngle) * 0.5
		pitch := math.Cos(elapsed*2) * 0.3
		tr.RotateLocalX(pitch * dt)
		tr.RotateLocalZ(roll * dt)
		tr.Translate(tr.Forward().Mul(en.Speed * 1.2 * dt))

	case StateRetreating:
		if dist > en.PursuitRange*2 {
			e.transition(en, State(StatePatrol), 0)
			break
		}
		tr.SlerpTowards(vecmath.LookRotation(toPlayer.Mul(-1), vecmath.Up), dt*2)
		tr.Translate(tr.Forward().Mul(en.Speed * 0.8 * dt))

	case StateFormation:
		e.formation(en, player, leaders, dist, dt, res)

	case StateManeuvering:
		en.fly(en.State.Maneuver, dt, elapsed)
		if en.StateTimer <= 0 {
			if dist < en.AttackRange {
				e.transition(en, State(StateAttacking), 0)
			} else {
				e.transition(en, State(StatePursuing), 0)
			}
		}

	case StateAmbushing:
		if dist < en.AttackRange*1.5 {
			e.transition(en, State(StateAttacking), 2.0)
			break
		}
		tr.Position[1] = vecmath.Lerp(tr.Position.Y(), player.Position().Y()+100, dt*0.5)
		future := player.Position().Add(player.Velocity().Mul(2))
		tr.SlerpTowards(vecmath.LookRotation(future.Sub(en.Position()), vecmath.Up), dt)
		tr.Translate(tr.Forward().Mul(en.Speed * 0.5 * dt))

	case StateSupporting:
		if dist >= en.PursuitRange {
			e.transition(en, State(StatePatrol), 0)
			break
		}
		radius := en.PreferredDistance * 1.5
		angle := elapsed * 0.3
		slot := player.Position().Add(vecmath.Vec3{math.Cos(angle) * radius, 10, math.Sin(angle) * radius})
		tr.Translate(vecmath.Normalize(slot.Sub(en.Position())).Mul(en.Speed * 0.8 * dt))
		tr.SlerpTowards(vecmath.LookRotation(toPlayer, vecmath.Up), dt*2)
	}

	tr.Position[1] = vecmath.Clamp(tr.Position.Y(), MinAltitude, MaxAltitude)
	tr.RotateLocalZ(math.Sin(elapsed*2+en.EvasionAngle) * 0.02)
	return chatter
}

// chase steers toward the player's predicted position at turn rate and flies
// at full speed. prediction weights the time-to-intercept.
func (e *Engine) chase(en *Enemy, player *PlayerView, dist, prediction, turn, dt float64) {
	lead := 0.0
	if en.Speed > 0 {
		lead = dist / en.Speed * prediction
	}
	predicted := player.Position().Add(player.Velocity().Mul(lead))
	en.Transform.SlerpTowards(vecmath.LookRotation(predicted.Sub(en.Position()), vecmath.Up), turn*dt)
	en.Transform.Translate(en.Transform.Forward().Mul(en.Speed * dt))
}

func (e *Engine) formation(en *Enemy, player *PlayerView, leaders map[string]vecmath.Transform, dist, dt float64, res *StepResult) {
	tr := &en.Transform
	switch en.Role.Kind {
	case RoleLeader:
		switch {
		case dist < en.AttackRange:
			e.transition(en, State(StateAttacking), 2.0)
		case dist < en.PursuitRange:
			e.chase(en, player, dist, 0.3, 2.5, dt)
		default:
			tr.Translate(tr.Forward().Mul(en.Speed * 0.5 * dt))
		}

	case RoleWingman:
		lead, ok := leaders[en.Role.LeaderID]
		if !ok {
			res.Formation = append(res.Formation, FormationEvent{Kind: FormationOrphaned, EnemyID: en.ID, LeaderID: en.Role.LeaderID})
			en.Role = FormationRole{}
			e.transition(en, State(StatePursuing), 0)
			return
		}
		desired := lead.Position.Add(lead.Rotation.Rotate(wingmanOffset(en.Serial)))
		toSlot := desired.Sub(en.Position())
		slotDist := toSlot.Len()
		if slotDist > formationBreakDistance || dist < en.AttackRange {
			res.Formation = append(res.Formation, FormationEvent{Kind: FormationBroken, EnemyID: en.ID, LeaderID: en.Role.LeaderID})
			en.Role = FormationRole{}
			e.transition(en, State(StatePursuing), 0)
			return
		}
		tr.SlerpTowards(lead.Rotation, dt*3)
		if slotDist > 2 {
			factor := math.Min(slotDist/20, 1.5)
			tr.Translate(toSlot.Mul(1 / slotDist).Mul(en.Speed * factor * dt))
		}

	case RoleSupport:
		e.transition(en, State(StateSupporting), 0)

	default:
		e.transition(en, State(StatePursuing), 0)
	}
}

// attackPattern picks the state that follows an Attacking run.
func (e *Engine) attackPattern(en *Enemy) BehaviorState {
	switch en.Personality {
	case Aggressive:
		if e.rand.Float64() < 0.3 && en.ManeuverSkill > 0.6 {
			return Maneuvering(BarrelRoll)
		}
		return State(StateStrafing)
	case Defensive:
		if e.rand.Float64() < 0.7 {
			return State(StateEvading)
		}
		return State(StateStrafing)
	case ShowOff:
		if en.ManeuverSkill > 0.5 {
			show := [...]Maneuver{BarrelRoll, Immelmann, ChandelleTurn}
			return Maneuvering(show[e.rand.Intn(len(show))])
		}
		return State(StateStrafing)
	case Veteran:
		switch roll := e.rand.Intn(4); {
		case roll == 0 && en.ManeuverSkill > 0.7:
			return Maneuvering(HighYoYo)
		case roll == 1:
			return State(StateAmbushing)
		case roll == 2:
			return State(StateEvading)
		}
		return State(StateStrafing)
	default:
		// Tactical pilots do not coordinate with allies yet.
		return State(StateStrafing)
	}
}
