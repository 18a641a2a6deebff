package enemy

// Archetype is the fixed per-type tuning tuple.
type Archetype struct {
	Speed             float64 `yaml:"speed" json:"speed"`
	Health            float64 `yaml:"health" json:"health"`
	Damage            float64 `yaml:"damage" json:"damage"`
	PreferredDistance float64 `yaml:"preferred_distance" json:"preferred_distance"`
	Scale             float64 `yaml:"scale" json:"scale"`
	Color             string  `yaml:"color" json:"color"`
}

const (
	DefaultAttackRange  = 50.0
	DefaultPursuitRange = 200.0
	MaxEnemies          = 10

	// RetreatDuration is the dwell time of a health-forced retreat.
	RetreatDuration = 5.0
	// RetreatHealthRatio is the health fraction below which a hit forces a retreat.
	RetreatHealthRatio = 0.3

	BaseMorale      = 1.0
	FormationMorale = 1.2

	MinAltitude = 10.0
	MaxAltitude = 300.0

	ManeuverDuration = 1.5
	AttackDuration   = 2.0
)

// DefaultArchetypes returns the built-in tuning for every enemy type.
func DefaultArchetypes() map[Type]Archetype {
	return map[Type]Archetype{
		Fighter: {Speed: 60, Health: 50, Damage: 10, PreferredDistance: 40, Scale: 2.0, Color: "#cc3333"},
		Bomber:  {Speed: 40, Health: 100, Damage: 20, PreferredDistance: 60, Scale: 3.0, Color: "#666666"},
		Ace:     {Speed: 80, Health: 75, Damage: 15, PreferredDistance: 30, Scale: 1.8, Color: "#3333cc"},
	}
}

// Tuning groups the numbers an operator may override from configuration.
type Tuning struct {
	Archetypes   map[Type]Archetype
	AttackRange  float64
	PursuitRange float64
	MaxEnemies   int
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Archetypes:   DefaultArchetypes(),
		AttackRange:  DefaultAttackRange,
		PursuitRange: DefaultPursuitRange,
		MaxEnemies:   MaxEnemies,
	}
}

// archetype returns the tuning for t, falling back to the built-in value for
// types the tuning does not override.
func (t Tuning) archetype(typ Type) Archetype {
	if a, ok := t.Archetypes[typ]; ok && a.Speed > 0 && a.Health > 0 {
		return a
	}
	return DefaultArchetypes()[typ]
}

// AggressionModifier scales the preferred combat distance.
func AggressionModifier(p Personality) float64 {
	switch p {
	case Aggressive:
		return 1.5
	case Defensive:
		return 0.7
	case ShowOff:
		return 1.2
	case Tactical:
		return 0.9
	default:
		return 1.0
	}
}

// LeadFactor is the fraction of player velocity added to the aim point while
// Attacking. Type rules take precedence over personality rules except for
// Veteran and Aggressive pilots flying non-Ace airframes.
func LeadFactor(typ Type, p Personality, skill float64) float64 {
	switch {
	case typ == Ace:
		return 0.3 * skill
	case p == Veteran:
		return 0.25 * skill
	case p == Aggressive:
		return 0.15
	case typ == Fighter:
		return 0.1
	default:
		return 0
	}
}

// FireRate is the cooldown in seconds between enemy shots.
func FireRate(typ Type, p Personality) float64 {
	switch {
	case typ == Ace:
		return 0.8
	case p == Aggressive:
		return 0.9
	case typ == Fighter:
		return 1.2
	case p == Defensive:
		return 1.8
	default:
		return 2.0
	}
}

// BaseAccuracy is the aim spread of an airframe before personality.
func BaseAccuracy(typ Type) float64 {
	switch typ {
	case Ace:
		return 0.05
	case Fighter:
		return 0.15
	default:
		return 0.25
	}
}

// AccuracyModifier scales BaseAccuracy by temperament.
func AccuracyModifier(p Personality) float64 {
	switch p {
	case Veteran:
		return 0.7
	case Tactical:
		return 0.8
	case Aggressive:
		return 1.2
	case ShowOff:
		return 1.5
	default:
		return 1.0
	}
}

// KillPoints is awarded for shooting an enemy down.
func KillPoints(typ Type) int {
	switch typ {
	case Bomber:
		return 100
	case Ace:
		return 200
	default:
		return 50
	}
}

// RamPoints is awarded for destroying an enemy by collision.
func RamPoints(typ Type) int {
	switch typ {
	case Bomber:
		return 50
	case Ace:
		return 100
	default:
		return 25
	}
}

// RamRadius is the player-contact radius of an airframe.
func RamRadius(typ Type) float64 {
	switch typ {
	case Bomber:
		return 8
	case Ace:
		return 5
	default:
		return 6
	}
}

// RamDamage is what a collision with the airframe costs the player.
func RamDamage(typ Type) float64 {
	switch typ {
	case Bomber:
		return 40
	case Ace:
		return 25
	default:
		return 30
	}
}
