package enemy

import (
	"math"
	"math/rand"
	"testing"

	"skyhunter/internal/vecmath"
)

var origin = vecmath.NewTransform(vecmath.Vec3{0, 50, 0})

func TestSpawner_FormationOfThree(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.0, 0.5, 0.0, 0.5, 0.1}}
	sp := NewSpawner(DefaultTuning(), r, quietLogger())
	if got := sp.Update(3.1, 0, origin, 1.0); len(got) != 3 {
		t.Fatalf("expected 3 enemies, got %d", len(got))
	} else {
		leader := got[0]
		if leader.Role.Kind != RoleLeader || leader.Type != Fighter || leader.Personality != Tactical {
			t.Fatalf("unexpected leader %+v", leader.Role)
		}
		for _, w := range got[1:] {
			if w.Role.Kind != RoleWingman || w.Role.LeaderID != leader.ID {
				t.Fatalf("wingman role = %+v", w.Role)
			}
			if !w.State.Is(StateFormation) || w.Morale != FormationMorale {
				t.Fatalf("wingman state %s morale %v", w.State, w.Morale)
			}
			if w.Type != leader.Type {
				t.Fatalf("formation mixes types")
			}
			if d := vecmath.Distance(w.Position(), leader.Position()); math.Abs(d-math.Hypot(15, 10)) > 1e-6 {
				t.Fatalf("wingman offset %.3f", d)
			}
		}
		if d := vecmath.Distance(leader.Position(), origin.Position); d < 200 || d > 300 {
			t.Fatalf("leader ring distance %.2f", d)
		}
	}
}

func TestSpawner_WingmenSpawnInTheirSlots(t *testing.T) {
	for _, singles := range []int{0, 1} {
		sp := NewSpawner(DefaultTuning(), &scriptedRand{}, quietLogger())
		for i := 0; i < singles; i++ {
			sp.SpawnSingle(origin, 1)
		}
		group := sp.SpawnFormation(origin)
		leader := group[0]
		for _, w := range group[1:] {
			slot := leader.Position().Add(leader.Transform.Rotation.Rotate(wingmanOffset(w.Serial)))
			if d := vecmath.Distance(slot, w.Position()); d > 1e-9 {
				t.Fatalf("leader serial %d: wingman %d spawned %.3f from its slot", leader.Serial, w.Serial, d)
			}
		}
		if group[1].Position() == group[2].Position() {
			t.Fatalf("wingmen share a slot")
		}
	}
}

func TestSpawner_FormationNeedsCapacity(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.0}}
	sp := NewSpawner(DefaultTuning(), r, quietLogger())
	got := sp.Update(3.1, 3, origin, 1.0)
	if len(got) != 1 {
		t.Fatalf("expected single spawn when formation would overflow, got %d", len(got))
	}
}

func TestSpawner_IntervalGate(t *testing.T) {
	sp := NewSpawner(DefaultTuning(), rand.New(rand.NewSource(1)), quietLogger())
	for i := 0; i < 3; i++ {
		if got := sp.Update(1.0, 0, origin, 1.0); got != nil {
			t.Fatalf("spawned before interval at step %d", i)
		}
	}
	if got := sp.Update(1.0, 0, origin, 1.0); len(got) == 0 {
		t.Fatalf("expected spawn after interval")
	}
	if got := sp.Update(1.0, 0, origin, 1.0); got != nil {
		t.Fatalf("timer not reset after spawn")
	}
}

func TestSpawner_NeverExceedsCap(t *testing.T) {
	for _, d := range []float64{1, 1.3, 1.5, 2, 2.5, 4} {
		sp := NewSpawner(DefaultTuning(), rand.New(rand.NewSource(int64(d*10))), quietLogger())
		live := 0
		for i := 0; i < 500; i++ {
			live += len(sp.Update(0.5, live, origin, d))
			if limit := sp.Cap(d); live > limit {
				t.Fatalf("difficulty %v: live %d exceeds cap %d", d, live, limit)
			}
		}
	}
}

func TestSpawner_CapLimits(t *testing.T) {
	sp := NewSpawner(DefaultTuning(), &scriptedRand{}, quietLogger())
	if sp.Cap(1) != 5 || sp.Cap(1.5) != 7 || sp.Cap(3) != 10 {
		t.Fatalf("caps: %d %d %d", sp.Cap(1), sp.Cap(1.5), sp.Cap(3))
	}
}

func TestSpawner_SingleAceVeteran(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.5, 0, 0.5, 0.01, 0.4, 0.5, 0.5}}
	sp := NewSpawner(DefaultTuning(), r, quietLogger())
	en := sp.SpawnSingle(origin, 1.0)
	if en.Type != Ace || en.Personality != Veteran {
		t.Fatalf("got %s/%s", en.Type, en.Personality)
	}
	if !approxEq(en.ManeuverSkill, 0.9) || !approxEq(en.ReactionTime, 0.25) {
		t.Fatalf("skill %v reaction %v", en.ManeuverSkill, en.ReactionTime)
	}
	if en.Speed != 80 || en.Health.Max != 75 || en.Damage != 15 {
		t.Fatalf("ace archetype not applied: %+v", en)
	}
	want := vecmath.Vec3{200, 50, 0}
	if vecmath.Distance(en.Position(), want) > 1e-6 {
		t.Fatalf("position %v, want %v", en.Position(), want)
	}
	if !en.State.Is(StatePatrol) || en.Role.Kind != RoleNone {
		t.Fatalf("single spawn starts in %s with role %s", en.State, en.Role.Kind)
	}
	// spawned facing the player
	toPlayer := vecmath.Normalize(origin.Position.Sub(en.Position()))
	if en.Transform.Forward().Dot(toPlayer) < 0.999 {
		t.Fatalf("enemy not facing player")
	}
}

func TestSpawner_FighterPersonalityUniform(t *testing.T) {
	want := []Personality{Aggressive, Defensive, Tactical, ShowOff}
	for i, p := range want {
		r := &scriptedRand{floats: []float64{0.5, 0, 0.5, 0.9, 0.9}, ints: []int{i}}
		sp := NewSpawner(DefaultTuning(), r, quietLogger())
		en := sp.SpawnSingle(origin, 1.0)
		if en.Type != Fighter || en.Personality != p {
			t.Fatalf("roll %d: got %s/%s", i, en.Type, en.Personality)
		}
	}
}

func TestSpawner_MinimumAltitude(t *testing.T) {
	low := vecmath.NewTransform(vecmath.Vec3{0, 0, 0})
	r := &scriptedRand{floats: []float64{0.5, 0, 0}}
	sp := NewSpawner(DefaultTuning(), r, quietLogger())
	if en := sp.SpawnSingle(low, 1); en.Position().Y() != 30 {
		t.Fatalf("altitude %v, want 30", en.Position().Y())
	}
}

func approxEq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
