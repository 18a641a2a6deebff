package enemy

import (
	"fmt"
	"strings"

	"skyhunter/internal/vecmath"
)

// Type is the airframe class of a hostile aircraft.
type Type string

const (
	Fighter Type = "fighter"
	Bomber  Type = "bomber"
	Ace     Type = "ace"
)

// Types lists every airframe class.
var Types = []Type{Fighter, Bomber, Ace}

// ParseType maps a config name to a Type.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown enemy type %q", s)
}

// Personality modulates how a pilot picks and flies behaviors.
type Personality string

const (
	Aggressive Personality = "aggressive"
	Defensive  Personality = "defensive"
	Tactical   Personality = "tactical"
	ShowOff    Personality = "showoff"
	Veteran    Personality = "veteran"
)

// RoleKind identifies a pilot's place in a formation.
type RoleKind int

const (
	RoleNone RoleKind = iota
	RoleLeader
	RoleWingman
	RoleSupport
)

func (k RoleKind) String() string {
	switch k {
	case RoleLeader:
		return "leader"
	case RoleWingman:
		return "wingman"
	case RoleSupport:
		return "support"
	default:
		return "none"
	}
}

// FormationRole is a non-owning relation to a formation. LeaderID is only
// meaningful for wingmen and must be validated against the live leader
// snapshot every tick before use.
type FormationRole struct {
	Kind     RoleKind
	LeaderID string
}

// WingmanOf returns the role of a wingman following leaderID.
func WingmanOf(leaderID string) FormationRole {
	return FormationRole{Kind: RoleWingman, LeaderID: leaderID}
}

// StateKind enumerates the behavior states.
type StateKind int

const (
	StatePatrol StateKind = iota
	StatePursuing
	StateAttacking
	StateEvading
	StateStrafing
	StateRetreating
	StateFormation
	StateManeuvering
	StateAmbushing
	StateSupporting
)

var stateNames = [...]string{
	StatePatrol:      "patrol",
	StatePursuing:    "pursuing",
	StateAttacking:   "attacking",
	StateEvading:     "evading",
	StateStrafing:    "strafing",
	StateRetreating:  "retreating",
	StateFormation:   "formation",
	StateManeuvering: "maneuvering",
	StateAmbushing:   "ambushing",
	StateSupporting:  "supporting",
}

func (k StateKind) String() string {
	if int(k) < len(stateNames) {
		return stateNames[k]
	}
	return "unknown"
}

// Maneuver is the aerobatic figure flown while Maneuvering.
type Maneuver string

const (
	BarrelRoll    Maneuver = "barrel_roll"
	Immelmann     Maneuver = "immelmann"
	SplitS        Maneuver = "split_s"
	HighYoYo      Maneuver = "high_yoyo"
	LowYoYo       Maneuver = "low_yoyo"
	Scissors      Maneuver = "scissors"
	ChandelleTurn Maneuver = "chandelle"
)

// BehaviorState is a state tag plus the maneuver payload carried by
// StateManeuvering. The zero value is Patrol.
type BehaviorState struct {
	Kind     StateKind
	Maneuver Maneuver
}

// State returns a payload-free behavior state.
func State(k StateKind) BehaviorState { return BehaviorState{Kind: k} }

// Maneuvering returns the Maneuvering state for m.
func Maneuvering(m Maneuver) BehaviorState {
	return BehaviorState{Kind: StateManeuvering, Maneuver: m}
}

func (s BehaviorState) String() string {
	if s.Kind == StateManeuvering {
		return s.Kind.String() + "(" + string(s.Maneuver) + ")"
	}
	return s.Kind.String()
}

// Is reports whether s has kind k.
func (s BehaviorState) Is(k StateKind) bool { return s.Kind == k }

// Health is the hit-point pair of any combat entity.
type Health struct {
	Current float64
	Max     float64
}

// NewHealth returns full health of max points.
func NewHealth(max float64) Health { return Health{Current: max, Max: max} }

// Ratio returns current/max clamped to [0,1].
func (h Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return vecmath.Clamp(h.Current/h.Max, 0, 1)
}

// Dead reports whether the entity has run out of health.
func (h Health) Dead() bool { return h.Current <= 0 }

// Damage subtracts amount. Current may transiently drop below zero.
func (h *Health) Damage(amount float64) { h.Current -= amount }

// Heal adds amount, never exceeding Max.
func (h *Health) Heal(amount float64) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Enemy is one hostile aircraft.
type Enemy struct {
	ID     string
	Serial uint64

	Type        Type
	Personality Personality
	Role        FormationRole

	State        BehaviorState
	StateTimer   float64
	EvasionAngle float64

	Speed             float64
	Damage            float64
	AttackRange       float64
	PursuitRange      float64
	PreferredDistance float64

	ManeuverSkill float64
	ReactionTime  float64
	Morale        float64
	LastTauntTime float64
	ShootCooldown float64

	Scale float64
	Color string

	Transform vecmath.Transform
	Health    Health

	despawned bool
}

// Despawn marks the enemy for removal at the end of the tick.
func (e *Enemy) Despawn() { e.despawned = true }

// Gone reports whether the enemy is dead or despawned and must not take
// part in further interactions.
func (e *Enemy) Gone() bool { return e.despawned || e.Health.Dead() }

// Position is shorthand for the enemy's world position.
func (e *Enemy) Position() vecmath.Vec3 { return e.Transform.Position }

// enter switches state and resets the state timer.
func (e *Enemy) enter(s BehaviorState, timer float64) {
	e.State = s
	e.StateTimer = timer
}

// ForceRetreat puts the enemy into Retreating for five seconds unless it is
// already retreating. It reports whether the state changed.
func (e *Enemy) ForceRetreat() bool {
	if e.State.Is(StateRetreating) {
		return false
	}
	e.enter(State(StateRetreating), RetreatDuration)
	return true
}

// PlayerView is the read-only player state the AI and combat consume.
type PlayerView struct {
	Transform vecmath.Transform
	Speed     float64
}

// Position returns the player's world position.
func (p PlayerView) Position() vecmath.Vec3 { return p.Transform.Position }

// Velocity returns forward * speed.
func (p PlayerView) Velocity() vecmath.Vec3 { return p.Transform.Forward().Mul(p.Speed) }

// DestroyCause says how an enemy was removed.
type DestroyCause string

const (
	CauseShot DestroyCause = "shot"
	CauseRam  DestroyCause = "ram"
)

// DestroyedEvent is emitted exactly once per destroyed enemy.
type DestroyedEvent struct {
	EnemyID  string       `json:"enemy_id"`
	Type     Type         `json:"enemy_type"`
	Position vecmath.Vec3 `json:"position"`
	Cause    DestroyCause `json:"cause"`
	Points   int          `json:"points"`
	Elapsed  float64      `json:"elapsed"`
}

// ChatterEvent is a cosmetic radio message from a pilot.
type ChatterEvent struct {
	EnemyID     string      `json:"enemy_id"`
	Message     string      `json:"message"`
	Sender      Type        `json:"sender_type"`
	Personality Personality `json:"personality"`
	Elapsed     float64     `json:"elapsed"`
}

// FormationEventKind classifies formation bookkeeping events.
type FormationEventKind string

const (
	FormationFormed   FormationEventKind = "formed"
	FormationBroken   FormationEventKind = "broken"
	FormationOrphaned FormationEventKind = "orphaned"
)

// FormationEvent records a formation membership change.
type FormationEvent struct {
	Kind     FormationEventKind
	EnemyID  string
	LeaderID string
}
