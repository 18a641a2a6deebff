package enemy

import (
	"testing"

	"skyhunter/internal/vecmath"
)

func TestChatter_SuppressedAtRandom(t *testing.T) {
	en := testEnemy("e", Fighter, Aggressive, vecmath.Vec3{})
	en.State = State(StateAttacking)
	if msg := Chatter(en, 40, &scriptedRand{floats: []float64{0.31}}); msg != "" {
		t.Fatalf("expected silence, got %q", msg)
	}
}

func TestChatter_Buckets(t *testing.T) {
	cases := []struct {
		name   string
		state  BehaviorState
		pers   Personality
		dist   float64
		health float64
		want   string
	}{
		{"aggressive attack", State(StateAttacking), Aggressive, 40, 1, "Nowhere to run!"},
		{"showoff attack", State(StateAttacking), ShowOff, 40, 1, "Time for some aerobatics!"},
		{"veteran pursuit", State(StatePursuing), Veteran, 100, 1, "Beginning attack run."},
		{"damaged evade", State(StateEvading), Tactical, 100, 0.4, "I need backup!"},
		{"formation", State(StateFormation), Defensive, 100, 1, "Following lead."},
		{"retreat", State(StateRetreating), Tactical, 100, 1, "I'm hit, pulling out!"},
		{"showoff maneuver", Maneuvering(Scissors), ShowOff, 100, 1, "Bet you can't do this!"},
		{"close range", State(StateStrafing), Tactical, 20, 1, "Got a lock!"},
		{"healthy evade far", State(StateEvading), Tactical, 100, 1, ""},
		{"tactical attack far", State(StateAttacking), Tactical, 40, 1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			en := testEnemy("e", Fighter, tc.pers, vecmath.Vec3{})
			en.State = tc.state
			en.Health.Current = en.Health.Max * tc.health
			got := Chatter(en, tc.dist, &scriptedRand{floats: []float64{0.1}, ints: []int{1}})
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEngine_ChatterThrottled(t *testing.T) {
	en := testEnemy("e", Fighter, Tactical, vecmath.Vec3{100, 50, 0})
	en.State = State(StateRetreating)
	en.LastTauntTime = 4
	eng := NewEngine(&scriptedRand{floats: []float64{0.1}}, quietLogger())
	eng.Add(en)
	player := playerAt(vecmath.Vec3{0, 50, 0})

	if res := eng.Step(player, 0.016, 8); len(res.Chatter) != 0 {
		t.Fatalf("chatter inside the taunt interval: %+v", res.Chatter)
	}
	res := eng.Step(player, 0.016, 9.5)
	if len(res.Chatter) != 1 || res.Chatter[0].Message != "Breaking off!" {
		t.Fatalf("expected one retreat message, got %+v", res.Chatter)
	}
	if en.LastTauntTime != 9.5 {
		t.Fatalf("last taunt = %v", en.LastTauntTime)
	}
	if res.Chatter[0].Sender != Fighter || res.Chatter[0].Personality != Tactical {
		t.Fatalf("event metadata wrong: %+v", res.Chatter[0])
	}
}
