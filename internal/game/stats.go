package game

// ComboTimeout is how long a combo survives without a new target hit.
const ComboTimeout = 3.0

// Stats accumulates per-session score counters.
type Stats struct {
	Score            int     `json:"score"`
	HighScore        int     `json:"high_score"`
	EnemiesDestroyed int     `json:"enemies_destroyed"`
	TargetsHit       int     `json:"targets_hit"`
	Combo            int     `json:"combo"`
	MaxCombo         int     `json:"max_combo"`
	TimePlayed       float64 `json:"time_played"`
	Difficulty       float64 `json:"difficulty"`
	Coins            int     `json:"coins"`

	comboTimer float64
}

// Difficulty grows linearly with minutes played.
type Difficulty struct {
	Start           float64 `yaml:"start"`
	GrowthPerMinute float64 `yaml:"growth_per_minute"`
}

// DefaultDifficulty starts at 1.0 and grows 0.1 per minute.
func DefaultDifficulty() Difficulty { return Difficulty{Start: 1.0, GrowthPerMinute: 0.1} }

// Level returns the difficulty after played seconds.
func (d Difficulty) Level(played float64) float64 {
	start := d.Start
	if start <= 0 {
		start = 1
	}
	growth := d.GrowthPerMinute
	if growth < 0 {
		growth = 0
	}
	return start + played/60*growth
}

// AddScore adds points.
func (s *Stats) AddScore(points int) { s.Score += points }

// RecordKill counts a destroyed enemy.
func (s *Stats) RecordKill() { s.EnemiesDestroyed++ }

// RecordTargetHit counts a collected target and extends the combo by
// 1+bonus. The combo countdown restarts.
func (s *Stats) RecordTargetHit(bonus int) {
	s.TargetsHit++
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.Combo += bonus
	s.comboTimer = 0
}

// Advance moves the clock forward: time played, difficulty, combo timeout
// and high score.
func (s *Stats) Advance(dt float64, d Difficulty) {
	s.TimePlayed += dt
	if lvl := d.Level(s.TimePlayed); lvl > s.Difficulty {
		s.Difficulty = lvl
	}
	if s.Combo > 0 {
		s.comboTimer += dt
		if s.comboTimer > ComboTimeout {
			s.Combo = 0
			s.comboTimer = 0
		}
	} else {
		s.comboTimer = 0
	}
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
}

// Settle converts the session score into coins. It is meant to be called
// once when the session ends.
func (s *Stats) Settle() int {
	earned := s.Score / 100
	s.Coins += earned
	return earned
}

// Reset clears per-session counters but keeps high score and coins.
func (s *Stats) Reset(d Difficulty) {
	*s = Stats{HighScore: s.HighScore, Coins: s.Coins, Difficulty: d.Level(0)}
}

// ScoreMultiplier returns the target score multiplier for an upgrade level.
func ScoreMultiplier(level int) int {
	if level < 1 {
		return 1
	}
	return level
}

// MagnetRange returns the extra pickup reach for a magnet upgrade level.
func MagnetRange(level int) float64 {
	if level < 0 {
		return 0
	}
	return float64(level) * 5
}
