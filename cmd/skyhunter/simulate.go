package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"skyhunter/internal/admin"
	"skyhunter/internal/config"
	"skyhunter/internal/game"
	"skyhunter/internal/logging"
	"skyhunter/internal/sim"
)

var (
	simPrintOnly   bool
	simTUI         bool
	simConfigPath  string
	simSchemaPath  string
	simRuleset     string
	simMode        string
	simSeed        int64
	simTick        time.Duration
	simTicks       int
	simLogFile     string
	simAdminAddr   string
	simWatchConfig bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a flight-combat session",
	Long:  "simulate flies the autopilot player against the enemy AI and streams session stats, kills and radio chatter.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(simTUI)
		if err != nil {
			return err
		}
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		if simMode != "" {
			m, err := game.ParseMode(simMode)
			if err != nil {
				return err
			}
			cfg.Mode = string(m)
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = simSeed
		}
		ruleset, err := cfg.Ruleset()
		if err != nil {
			return err
		}
		if simRuleset != "" {
			r, err := game.Load(simRuleset)
			if err != nil {
				return err
			}
			ruleset = *r
		}

		writer, eventWriter, cleanup, err := newWriters(cfg, ruleset, simPrintOnly, simTUI, simLogFile, log)
		if err != nil {
			return err
		}
		defer cleanup()

		session := os.Getenv("SESSION_ID")
		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return fmt.Errorf("invalid TICK_INTERVAL: %w", err)
			}
			tickInterval = d
		}

		simulator, err := sim.NewSimulator(session, cfg, writer, eventWriter, tickInterval, log)
		if err != nil {
			return err
		}
		if simRuleset != "" {
			simulator.UseRuleset(ruleset)
		}
		if cw, ok := writer.(sim.ControlsWriter); ok {
			cw.SetControls(simulator.Controls())
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		if simTicks > 0 {
			n := simulator.RunTicks(ctx, simTicks, simulator.TickSeconds())
			snap := simulator.Snapshot()
			log.Info("session finished", "ticks", n, "state", snap.State, "score", snap.Score,
				"kills", snap.EnemiesDestroyed, "targets", snap.TargetsHit, "reason", simulator.GameOverReason())
			return nil
		}

		if simAdminAddr != "" {
			srv := admin.NewServer(simulator)
			go func() {
				if aw, ok := writer.(sim.AdminStatusWriter); ok {
					aw.SetAdminStatus(true)
					defer aw.SetAdminStatus(false)
				}
				if err := srv.Start(ctx, simAdminAddr); err != nil {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		if simWatchConfig {
			go func() {
				err := config.Watch(ctx, simConfigPath, simSchemaPath, func(c *config.Config) {
					if err := simulator.ApplyConfig(c); err != nil {
						log.Error("apply config failed", "err", err)
					}
				})
				if err != nil {
					log.Error("config watch failed", "err", err)
				}
			}()
		}

		simulator.Run(ctx)
		log.Info("skyhunter session stopped")
		return nil
	},
}

// newLogger builds the process logger. The TUI owns the terminal, so its
// logs are dropped.
func newLogger(tui bool) (*slog.Logger, error) {
	if tui {
		return logging.Discard(), nil
	}
	return logging.New(logFormat, logLevel)
}

func init() {
	f := simulateCmd.Flags()
	f.BoolVar(&simPrintOnly, "print-only", false, "Print session output to STDOUT instead of writing to DB")
	f.BoolVar(&simTUI, "tui", false, "Render the session in an interactive terminal UI")
	f.StringVar(&simConfigPath, "config", "config/skyhunter.yaml", "Path to session configuration YAML")
	f.StringVar(&simSchemaPath, "schema", "schemas/skyhunter.cue", "Path to CUE schema file")
	f.StringVar(&simRuleset, "ruleset", "", "Path to a custom ruleset YAML")
	f.StringVar(&simMode, "mode", "", "Game mode override (see 'skyhunter modes')")
	f.Int64Var(&simSeed, "seed", 0, "Random seed override (0 picks one from the clock)")
	f.DurationVar(&simTick, "tick", 0, "Tick interval (defaults to tick_ms from the config)")
	f.IntVar(&simTicks, "ticks", 0, "Run this many ticks as fast as possible, then exit")
	f.StringVar(&simLogFile, "log-file", "", "Path to export stats/kill/chatter/formation logs (JSONL)")
	f.StringVar(&simAdminAddr, "admin", ":8080", "Admin UI listen address (empty disables it)")
	f.BoolVar(&simWatchConfig, "watch", false, "Reload enemy and target tuning when the config file changes")
}
