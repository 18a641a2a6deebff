package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"skyhunter/internal/config"
	"skyhunter/internal/game"
	"skyhunter/internal/sim"
)

// newWriters sets up stats and event writers based on flags and env vars.
// It returns the writers and a cleanup function to close any resources.
func newWriters(cfg *config.Config, ruleset game.Ruleset, printOnly, tui bool, logFile string, log *slog.Logger) (sim.StatsWriter, sim.EventWriter, func(), error) {
	writer, eventWriter, cleanup, err := baseWriters(cfg, ruleset, printOnly, tui, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if logFile == "" {
		return writer, eventWriter, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".kills", logFile+".chatter", logFile+".formation")
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	mw := sim.NewMultiWriter([]sim.StatsWriter{writer, fw}, []sim.EventWriter{eventWriter, fw})
	base := cleanup
	cleanup = func() {
		fw.Close()
		base()
	}
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying writer: the TUI, STDOUT, or GreptimeDB
// when GREPTIMEDB_ENDPOINT is set.
func baseWriters(cfg *config.Config, ruleset game.Ruleset, printOnly, tui bool, log *slog.Logger) (sim.StatsWriter, sim.EventWriter, func(), error) {
	if tui {
		w := sim.NewTUIWriter(cfg, ruleset)
		return w, w, func() { w.Close() }, nil
	}
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		sw, ew := stdoutWriters(cfg)
		return sw, ew, func() {}, nil
	}
	database := os.Getenv("GREPTIMEDB_DATABASE")
	if database == "" {
		database = "public"
	}
	w, err := sim.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), database, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return w, w, func() {}, nil
}

// stdoutWriters prints colorized lines on a terminal and JSON otherwise.
func stdoutWriters(cfg *config.Config) (sim.StatsWriter, sim.EventWriter) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		w := sim.NewColorStdoutWriter(cfg)
		return w, w
	}
	w := sim.NewJSONStdoutWriter()
	return w, w
}

// newStatsWriter creates a stats-only writer for replays.
func newStatsWriter(cfg *config.Config, printOnly bool, log *slog.Logger) (sim.StatsWriter, error) {
	r, err := cfg.Ruleset()
	if err != nil {
		return nil, err
	}
	w, _, _, err := newWriters(cfg, r, printOnly, false, "", log)
	return w, err
}
