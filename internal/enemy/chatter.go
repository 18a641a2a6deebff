package enemy

// TauntInterval is the minimum simulated time between two messages from the
// same pilot.
const TauntInterval = 5.0

var (
	chatterAggressiveAttack = []string{"I've got you now!", "Nowhere to run!", "This is too easy!"}
	chatterShowOffAttack    = []string{"Watch this move!", "Time for some aerobatics!", "Hope you're taking notes!"}
	chatterVeteranPursuit   = []string{"Target acquired.", "Beginning attack run.", "Stay focused, maintain pursuit."}
	chatterDamaged          = []string{"Taking heavy damage!", "I need backup!", "Systems failing!"}
	chatterFormation        = []string{"Formation holding.", "Following lead.", "Maintaining position."}
	chatterRetreat          = []string{"Breaking off!", "I'm hit, pulling out!", "Can't take much more!"}
	chatterShowOffManeuver  = []string{"Check out this maneuver!", "Bet you can't do this!", "Textbook execution!"}
	chatterClose            = []string{"You're mine!", "Got a lock!", "In position!"}
)

// chatterBucket picks the message pool for the pilot's situation, or nil.
func chatterBucket(state BehaviorState, p Personality, dist, healthRatio float64) []string {
	switch {
	case state.Is(StateAttacking) && p == Aggressive:
		return chatterAggressiveAttack
	case state.Is(StateAttacking) && p == ShowOff:
		return chatterShowOffAttack
	case state.Is(StatePursuing) && p == Veteran:
		return chatterVeteranPursuit
	case state.Is(StateEvading) && healthRatio < 0.5:
		return chatterDamaged
	case state.Is(StateFormation):
		return chatterFormation
	case state.Is(StateRetreating):
		return chatterRetreat
	case state.Is(StateManeuvering) && p == ShowOff:
		return chatterShowOffManeuver
	case dist < 30:
		return chatterClose
	}
	return nil
}

// Chatter returns a radio message for en, or "" when it stays silent. Most
// calls are suppressed at random.
func Chatter(en *Enemy, dist float64, r Rand) string {
	if r.Float64() > 0.3 {
		return ""
	}
	msgs := chatterBucket(en.State, en.Personality, dist, en.Health.Ratio())
	if len(msgs) == 0 {
		return ""
	}
	return msgs[r.Intn(len(msgs))]
}
