package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestMachineGameOverIdempotent(t *testing.T) {
	var m Machine
	if m.State() != MainMenu {
		t.Fatalf("initial state %s", m.State())
	}
	m.Start()
	m.GameOver("shot down")
	m.GameOver("collision")
	if m.State() != GameOver || m.Reason() != "shot down" {
		t.Fatalf("state %s reason %q", m.State(), m.Reason())
	}
	if m.TogglePause() != GameOver {
		t.Fatalf("game over must not be pausable")
	}
}

func TestMachinePause(t *testing.T) {
	var m Machine
	m.Start()
	if m.TogglePause() != Paused || m.Running() {
		t.Fatalf("pause failed")
	}
	if m.TogglePause() != Playing || !m.Running() {
		t.Fatalf("resume failed")
	}
}

func TestDifficultyGrowth(t *testing.T) {
	var s Stats
	d := DefaultDifficulty()
	for i := 0; i < 120; i++ {
		s.Advance(1, d)
	}
	if math.Abs(s.Difficulty-1.2) > 1e-9 {
		t.Fatalf("difficulty after 2 minutes = %v", s.Difficulty)
	}
}

func TestComboTimeout(t *testing.T) {
	var s Stats
	s.RecordTargetHit(0)
	s.RecordTargetHit(4)
	if s.Combo != 6 || s.MaxCombo != 2 || s.TargetsHit != 2 {
		t.Fatalf("combo %d max %d hits %d", s.Combo, s.MaxCombo, s.TargetsHit)
	}
	s.Advance(2, DefaultDifficulty())
	s.RecordTargetHit(0)
	s.Advance(2.5, DefaultDifficulty())
	if s.Combo != 7 {
		t.Fatalf("combo reset early: %d", s.Combo)
	}
	s.Advance(1, DefaultDifficulty())
	if s.Combo != 0 {
		t.Fatalf("combo survived timeout: %d", s.Combo)
	}
}

func TestHighScoreAndReset(t *testing.T) {
	var s Stats
	s.AddScore(450)
	s.RecordKill()
	s.Advance(0.1, DefaultDifficulty())
	if s.HighScore != 450 {
		t.Fatalf("high score %d", s.HighScore)
	}
	if s.Settle() != 4 {
		t.Fatalf("coins earned")
	}
	s.Reset(DefaultDifficulty())
	if s.Score != 0 || s.EnemiesDestroyed != 0 || s.HighScore != 450 || s.Coins != 4 || s.Difficulty != 1 {
		t.Fatalf("reset: %+v", s)
	}
}

func TestChallengeTimer(t *testing.T) {
	timed := NewChallengeTimer(BuiltIn()[TimeAttack])
	timed.Tick(10)
	timed.AddTime(5)
	if timed.Remaining != 55 {
		t.Fatalf("remaining %v", timed.Remaining)
	}
	timed.AddTime(30)
	if timed.Remaining != 60 {
		t.Fatalf("bonus exceeded total: %v", timed.Remaining)
	}
	timed.Tick(100)
	if timed.Remaining != 0 {
		t.Fatalf("timer went negative: %v", timed.Remaining)
	}

	free := NewChallengeTimer(BuiltIn()[FreePlay])
	free.Tick(10)
	if free.Remaining != 60 || free.Running() {
		t.Fatalf("free play timer should not run")
	}
}

func TestRulesetOver(t *testing.T) {
	cases := []struct {
		mode      Mode
		remaining float64
		hits      int
		over      bool
	}{
		{FreePlay, 0, 100, false},
		{TargetHunt, 0, 100, false},
		{TimeAttack, 0.5, 0, false},
		{TimeAttack, 0, 0, true},
		{Survival, 0, 0, true},
		{RaceTheClock, 10, 49, false},
		{RaceTheClock, 10, 50, true},
		{RaceTheClock, 0, 0, true},
	}
	for _, tc := range cases {
		r := BuiltIn()[tc.mode]
		timer := NewChallengeTimer(r)
		timer.Remaining = tc.remaining
		_, over := r.Over(&Stats{TargetsHit: tc.hits}, timer)
		if over != tc.over {
			t.Errorf("%s remaining=%v hits=%d: over=%v", tc.mode, tc.remaining, tc.hits, over)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"time_attack", "time-attack", "TimeAttack"} {
		if m, err := ParseMode(in); err != nil || m != TimeAttack {
			t.Fatalf("%s: %v %v", in, m, err)
		}
	}
	if _, err := ParseMode("deathmatch"); err == nil {
		t.Fatalf("expected error")
	}
	if len(Modes()) != 5 {
		t.Fatalf("modes = %v", Modes())
	}
}

func TestLoadRuleset(t *testing.T) {
	r, err := Load("testdata/blitz.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Name != "Blitz" || r.TimeLimit != 30 || r.TargetGoal != 20 || r.MaxTargets != 40 {
		t.Fatalf("unexpected ruleset %+v", r)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("mode: dogfight\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}
