// Simulator orchestrating the player, enemies and session ticks
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"skyhunter/internal/combat"
	"skyhunter/internal/config"
	"skyhunter/internal/enemy"
	"skyhunter/internal/game"
	"skyhunter/internal/player"
	"skyhunter/internal/powerup"
	"skyhunter/internal/target"
	"skyhunter/internal/telemetry"
)

// Simulator owns one headless game session: the player flown by an
// autopilot, the enemy AI, combat, pickups and the session rules.
type Simulator struct {
	session      string
	cfg          *config.Config
	ruleset      game.Ruleset
	difficulty   game.Difficulty
	tickInterval time.Duration

	rand      *rand.Rand
	player    *player.Player
	autopilot player.Autopilot
	engine    *enemy.Engine
	spawner   *enemy.Spawner
	bullets   []*combat.Bullet
	powerups  *powerup.Manager
	targets   *target.Manager
	stats     game.Stats
	timer     *game.ChallengeTimer
	machine   game.Machine
	resolver  combat.Resolver
	recorder  *telemetry.Recorder

	writer      StatsWriter
	eventWriter EventWriter

	tick    uint64
	elapsed float64
	events  []Event

	pendingFormation []enemy.FormationEvent

	now func() time.Time
	log *slog.Logger
	mu  sync.Mutex
}

// NewSimulator builds a session from cfg. eventWriter may be nil.
func NewSimulator(session string, cfg *config.Config, writer StatsWriter, eventWriter EventWriter, tickInterval time.Duration, log *slog.Logger) (*Simulator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	if session == "" {
		session = cfg.Session
	}
	if tickInterval <= 0 {
		tickInterval = cfg.TickInterval()
	}
	ruleset, err := cfg.Ruleset()
	if err != nil {
		return nil, err
	}
	tuning, err := cfg.Tuning()
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	s := &Simulator{
		session:      session,
		cfg:          cfg,
		ruleset:      ruleset,
		difficulty:   cfg.Difficulty,
		tickInterval: tickInterval,
		rand:         rnd,
		autopilot:    player.DefaultAutopilot(),
		engine:       enemy.NewEngine(rnd, log),
		spawner:      enemy.NewSpawner(tuning, rnd, log),
		powerups:     powerup.NewManager(rnd, log),
		targets:      target.NewManager(ruleset, rnd, log),
		recorder:     telemetry.NewRecorder(session),
		writer:       writer,
		eventWriter:  eventWriter,
		now:          time.Now,
		log:          log,
	}
	s.resolver = combat.Resolver{Score: &s.stats, Referee: &s.machine, Log: log}
	s.reset()
	return s, nil
}

// UseRuleset switches to a custom ruleset and restarts the session.
func (s *Simulator) UseRuleset(r game.Ruleset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ruleset = r
	s.targets = target.NewManager(r, s.rand, s.log)
	s.reset()
}

// reset starts a fresh session, keeping high score and coins.
func (s *Simulator) reset() {
	s.player = player.New(s.cfg.Player.Altitude, s.cfg.Player.Health, 1, 1)
	s.player.BaseSpeed = s.cfg.Player.Speed
	s.player.Speed = s.cfg.Player.Speed
	s.engine.Enemies = nil
	s.bullets = nil
	s.powerups.Reset()
	s.targets.Reset()
	s.targets.MagnetLevel = s.cfg.Targets.MagnetLevel
	s.targets.MultiplierLevel = s.cfg.Targets.MultiplierLevel
	s.stats.Reset(s.difficulty)
	s.timer = game.NewChallengeTimer(s.ruleset)
	s.tick = 0
	s.elapsed = 0
	s.machine.Start()
	s.log.Info("session started", "session", s.session, "mode", s.ruleset.Mode)
}

// Restart begins a new session after game over.
func (s *Simulator) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// ApplyConfig swaps in a reloaded configuration. Tuning affects enemies
// spawned from now on; the mode and seed of a running session are kept.
func (s *Simulator) ApplyConfig(cfg *config.Config) error {
	tuning, err := cfg.Tuning()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.difficulty = cfg.Difficulty
	s.spawner.Tuning = tuning
	s.targets.MagnetLevel = cfg.Targets.MagnetLevel
	s.targets.MultiplierLevel = cfg.Targets.MultiplierLevel
	s.logEvent("config", "configuration reloaded")
	return nil
}

// TogglePause flips between playing and paused and returns the new state.
func (s *Simulator) TogglePause() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.machine.TogglePause()
	s.logEvent("state", st.String())
	return st
}

// State returns the session state.
func (s *Simulator) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// GrantPowerUp applies a power-up to the player as if it had been collected.
func (s *Simulator) GrantPowerUp(t powerup.Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.powerups.Apply(t, s.player, &s.stats)
	s.logEvent("powerup", string(t))
}

// SpawnFormation forces a formation spawn regardless of the spawn timer and
// returns the new leader's ID, or an error when there is no room for three.
func (s *Simulator) SpawnFormation() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine.Live()+3 > s.spawner.Cap(s.stats.Difficulty) {
		return "", fmt.Errorf("no room for a formation: %d live enemies", s.engine.Live())
	}
	group := s.spawner.SpawnFormation(s.player.Transform)
	s.addFormation(group)
	return group[0].ID, nil
}

// Snapshot returns the current session row.
func (s *Simulator) Snapshot() telemetry.StatsRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsRow()
}

// Enemies returns the live enemy table.
func (s *Simulator) Enemies() []telemetry.EnemyRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enemyRows()
}

// ActivePowerUps returns the player's running effects.
func (s *Simulator) ActivePowerUps() powerup.Active {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.powerups.Active()
}

// Ruleset returns the active ruleset.
func (s *Simulator) Ruleset() game.Ruleset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ruleset
}

// GameOverReason returns why the session ended, if it has.
func (s *Simulator) GameOverReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Reason()
}

func (s *Simulator) statsRow() telemetry.StatsRow {
	return telemetry.StatsRow{
		Session:          s.session,
		Mode:             string(s.ruleset.Mode),
		State:            s.machine.State().String(),
		Tick:             s.tick,
		Score:            s.stats.Score,
		HighScore:        s.stats.HighScore,
		EnemiesDestroyed: s.stats.EnemiesDestroyed,
		TargetsHit:       s.stats.TargetsHit,
		Combo:            s.stats.Combo,
		MaxCombo:         s.stats.MaxCombo,
		Difficulty:       s.stats.Difficulty,
		TimePlayed:       s.stats.TimePlayed,
		TimeRemaining:    s.timer.Remaining,
		PlayerHealth:     s.player.Health.Current,
		LiveEnemies:      s.engine.Live(),
		Timestamp:        s.now().UTC(),
	}
}

func (s *Simulator) enemyRows() []telemetry.EnemyRow {
	ts := s.now().UTC()
	rows := make([]telemetry.EnemyRow, 0, len(s.engine.Enemies))
	for _, en := range s.engine.Enemies {
		if en.Gone() {
			continue
		}
		rows = append(rows, s.recorder.Enemy(en, s.player.Position(), ts))
	}
	return rows
}

// Controls returns the session actions for interactive writers.
func (s *Simulator) Controls() Controls {
	return Controls{
		TogglePause:    s.TogglePause,
		SpawnFormation: s.SpawnFormation,
		GrantPowerUp:   s.GrantPowerUp,
	}
}

// TickSeconds returns the simulated seconds per tick.
func (s *Simulator) TickSeconds() float64 { return s.tickInterval.Seconds() }
