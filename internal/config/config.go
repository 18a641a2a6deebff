// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"skyhunter/internal/enemy"
	"skyhunter/internal/game"
	"skyhunter/internal/player"
)

// PlayerConfig sets up the player aircraft.
type PlayerConfig struct {
	Speed    float64 `yaml:"speed"`
	Health   float64 `yaml:"health"`
	Altitude float64 `yaml:"altitude"`
}

// EnemyConfig tunes the enemy spawner and AI ranges.
type EnemyConfig struct {
	Enabled      *bool                      `yaml:"enabled"`
	AttackRange  float64                    `yaml:"attack_range"`
	PursuitRange float64                    `yaml:"pursuit_range"`
	MaxEnemies   int                        `yaml:"max_enemies"`
	Archetypes   map[string]enemy.Archetype `yaml:"archetypes"`
}

// PowerUpConfig toggles power-up spawning.
type PowerUpConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// TargetConfig toggles balloon targets and sets the upgrade levels that
// affect them.
type TargetConfig struct {
	Enabled         *bool `yaml:"enabled"`
	MagnetLevel     int   `yaml:"magnet_level"`
	MultiplierLevel int   `yaml:"multiplier_level"`
}

// Config is the root configuration of a simulation run.
type Config struct {
	Session    string          `yaml:"session"`
	Seed       int64           `yaml:"seed"`
	Mode       string          `yaml:"mode"`
	TickMS     int             `yaml:"tick_ms"`
	Difficulty game.Difficulty `yaml:"difficulty"`
	Player     PlayerConfig    `yaml:"player"`
	Enemies    EnemyConfig     `yaml:"enemies"`
	PowerUps   PowerUpConfig   `yaml:"powerups"`
	Targets    TargetConfig    `yaml:"targets"`
}

// Default returns the stock configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load validates configPath against the CUE schema, then decodes it and
// fills in defaults for missing values.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes without schema validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Ruleset(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Session == "" {
		c.Session = "skyhunter-01"
	}
	if c.Mode == "" {
		c.Mode = string(game.FreePlay)
	}
	if c.TickMS <= 0 {
		c.TickMS = 16
	}
	def := game.DefaultDifficulty()
	if c.Difficulty.Start <= 0 {
		c.Difficulty.Start = def.Start
	}
	if c.Difficulty.GrowthPerMinute <= 0 {
		c.Difficulty.GrowthPerMinute = def.GrowthPerMinute
	}
	if c.Player.Speed <= 0 {
		c.Player.Speed = player.DefaultSpeed
	}
	if c.Player.Health <= 0 {
		c.Player.Health = player.DefaultHealth
	}
	if c.Player.Altitude <= 0 {
		c.Player.Altitude = player.DefaultAltitude
	}
	if c.Enemies.AttackRange <= 0 {
		c.Enemies.AttackRange = enemy.DefaultAttackRange
	}
	if c.Enemies.PursuitRange <= 0 {
		c.Enemies.PursuitRange = enemy.DefaultPursuitRange
	}
	if c.Enemies.MaxEnemies <= 0 {
		c.Enemies.MaxEnemies = enemy.MaxEnemies
	}
}

func enabled(b *bool) bool { return b == nil || *b }

// EnemiesEnabled reports whether enemies spawn. Missing means true.
func (c *Config) EnemiesEnabled() bool { return enabled(c.Enemies.Enabled) }

// PowerUpsEnabled reports whether power-ups spawn. Missing means true.
func (c *Config) PowerUpsEnabled() bool { return enabled(c.PowerUps.Enabled) }

// TargetsEnabled reports whether balloons spawn. Missing means true.
func (c *Config) TargetsEnabled() bool { return enabled(c.Targets.Enabled) }

// TickInterval returns the wall-clock tick.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Ruleset resolves the configured mode to a built-in ruleset.
func (c *Config) Ruleset() (game.Ruleset, error) {
	if c.Mode == "" {
		return game.BuiltIn()[game.FreePlay], nil
	}
	m, err := game.ParseMode(c.Mode)
	if err != nil {
		return game.Ruleset{}, fmt.Errorf("config mode: %w", err)
	}
	return game.Lookup(m)
}

// Tuning builds the enemy tuning, overlaying configured archetypes on the
// defaults. Unset archetype fields keep their default value.
func (c *Config) Tuning() (enemy.Tuning, error) {
	t := enemy.DefaultTuning()
	t.AttackRange = c.Enemies.AttackRange
	t.PursuitRange = c.Enemies.PursuitRange
	t.MaxEnemies = c.Enemies.MaxEnemies
	for name, a := range c.Enemies.Archetypes {
		typ, err := enemy.ParseType(name)
		if err != nil {
			return enemy.Tuning{}, fmt.Errorf("config archetypes: %w", err)
		}
		t.Archetypes[typ] = mergeArchetype(t.Archetypes[typ], a)
	}
	return t, nil
}

func mergeArchetype(base, over enemy.Archetype) enemy.Archetype {
	if over.Speed > 0 {
		base.Speed = over.Speed
	}
	if over.Health > 0 {
		base.Health = over.Health
	}
	if over.Damage > 0 {
		base.Damage = over.Damage
	}
	if over.PreferredDistance > 0 {
		base.PreferredDistance = over.PreferredDistance
	}
	if over.Scale > 0 {
		base.Scale = over.Scale
	}
	if over.Color != "" {
		base.Color = over.Color
	}
	return base
}
