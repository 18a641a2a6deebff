// Package game holds the session rules: modes, the challenge timer, score
// counters and the session state machine.
package game

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode is a game mode.
type Mode string

const (
	FreePlay     Mode = "free_play"
	TimeAttack   Mode = "time_attack"
	TargetHunt   Mode = "target_hunt"
	Survival     Mode = "survival"
	RaceTheClock Mode = "race_the_clock"
)

// Ruleset configures one mode.
type Ruleset struct {
	Name        string `yaml:"name"`
	Mode        Mode   `yaml:"mode"`
	Description string `yaml:"description,omitempty"`
	// TimeLimit in seconds; zero means untimed.
	TimeLimit  float64 `yaml:"time_limit,omitempty"`
	TargetGoal int     `yaml:"target_goal,omitempty"`
	MaxTargets int     `yaml:"max_targets"`
	// TargetTable selects the balloon mix (see the target package); empty
	// means the mode's own table.
	TargetTable string `yaml:"target_table,omitempty"`
}

// Timed reports whether the challenge timer runs in this ruleset.
func (r Ruleset) Timed() bool { return r.TimeLimit > 0 }

// BuiltIn returns the stock rulesets keyed by mode.
func BuiltIn() map[Mode]Ruleset {
	return map[Mode]Ruleset{
		FreePlay: {
			Name:        "Free Play",
			Mode:        FreePlay,
			Description: "Fly freely, pop balloons and shoot down whatever comes at you.",
			MaxTargets:  40,
		},
		TimeAttack: {
			Name:        "Time Attack",
			Mode:        TimeAttack,
			Description: "Score as much as possible before the clock runs out.",
			TimeLimit:   60,
			MaxTargets:  50,
		},
		TargetHunt: {
			Name:        "Target Hunt",
			Mode:        TargetHunt,
			Description: "Hunt for rare golden balloons among a sparse field.",
			MaxTargets:  30,
		},
		Survival: {
			Name:        "Survival",
			Mode:        Survival,
			Description: "Stay alive until time expires; time balloons buy extra seconds.",
			TimeLimit:   60,
			MaxTargets:  40,
		},
		RaceTheClock: {
			Name:        "Race the Clock",
			Mode:        RaceTheClock,
			Description: "Hit fifty targets before the timer runs out.",
			TimeLimit:   60,
			TargetGoal:  50,
			MaxTargets:  40,
		},
	}
}

// Modes returns the built-in modes in a stable order.
func Modes() []Mode {
	var out []Mode
	for m := range BuiltIn() {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseMode accepts names like "time_attack", "time-attack" or "TimeAttack".
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for m := range BuiltIn() {
		if strings.ReplaceAll(string(m), "_", "") == norm {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

// Lookup returns the built-in ruleset for a mode.
func Lookup(m Mode) (Ruleset, error) {
	r, ok := BuiltIn()[m]
	if !ok {
		return Ruleset{}, fmt.Errorf("unknown game mode %q", m)
	}
	return r, nil
}

// Load reads a custom ruleset from a YAML file. Missing fields inherit the
// built-in ruleset of the declared mode.
func Load(path string) (*Ruleset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}
	var r Ruleset
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse ruleset: %w", err)
	}
	base, err := Lookup(r.Mode)
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	if r.Name == "" {
		r.Name = base.Name
	}
	if r.MaxTargets <= 0 {
		r.MaxTargets = base.MaxTargets
	}
	if r.TimeLimit < 0 {
		return nil, fmt.Errorf("ruleset %s: negative time limit", path)
	}
	return &r, nil
}

// Over reports whether the session has ended under r, and why.
func (r Ruleset) Over(stats *Stats, timer *ChallengeTimer) (reason string, over bool) {
	if r.Timed() && timer.Remaining <= 0 {
		switch r.Mode {
		case TimeAttack, Survival, RaceTheClock:
			return "time expired", true
		}
	}
	if r.TargetGoal > 0 && stats.TargetsHit >= r.TargetGoal {
		return "target goal reached", true
	}
	return "", false
}

// ChallengeTimer counts down in timed modes.
type ChallengeTimer struct {
	Remaining float64 `json:"remaining"`
	Total     float64 `json:"total"`
	running   bool
}

// NewChallengeTimer returns a full timer for r. Untimed rulesets get a
// stopped 60-second timer so time bonuses still have a cap.
func NewChallengeTimer(r Ruleset) *ChallengeTimer {
	total := r.TimeLimit
	if total <= 0 {
		total = 60
	}
	return &ChallengeTimer{Remaining: total, Total: total, running: r.Timed()}
}

// Tick counts down by dt, clamping at zero.
func (c *ChallengeTimer) Tick(dt float64) {
	if !c.running {
		return
	}
	c.Remaining -= dt
	if c.Remaining < 0 {
		c.Remaining = 0
	}
}

// AddTime extends the timer without exceeding its total.
func (c *ChallengeTimer) AddTime(seconds float64) {
	c.Remaining += seconds
	if c.Remaining > c.Total {
		c.Remaining = c.Total
	}
}

// Running reports whether the timer counts down.
func (c *ChallengeTimer) Running() bool { return c.running }
