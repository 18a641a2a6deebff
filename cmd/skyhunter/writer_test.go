package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"skyhunter/internal/config"
	"skyhunter/internal/game"
	"skyhunter/internal/logging"
	"skyhunter/internal/sim"
	"skyhunter/internal/telemetry"
)

func freePlay(t *testing.T) game.Ruleset {
	t.Helper()
	r, err := game.Lookup(game.FreePlay)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewWritersPrintOnly(t *testing.T) {
	sw, ew, cleanup, err := newWriters(config.Default(), freePlay(t), true, false, "", logging.Discard())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", sw)
	}
	if _, ok := ew.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", ew)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	sw, _, cleanup, err := newWriters(config.Default(), freePlay(t), false, false, "", logging.Discard())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", sw)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.log")
	sw, ew, cleanup, err := newWriters(config.Default(), freePlay(t), true, false, path, logging.Discard())
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := sw.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", sw)
	}
	if err := sw.WriteStats(telemetry.StatsRow{Session: "s", Timestamp: time.Now()}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := ew.WriteKill(telemetry.KillRow{EnemyID: "e1", Timestamp: time.Now()}); err != nil {
		t.Fatalf("write kill failed: %v", err)
	}
	fw, ok := sw.(sim.FormationEventWriter)
	if !ok {
		t.Fatalf("stats writer does not implement FormationEventWriter")
	}
	if err := fw.WriteFormationEvent(telemetry.FormationEventRow{EventType: "formed", Timestamp: time.Now()}); err != nil {
		t.Fatalf("write formation failed: %v", err)
	}
	for _, p := range []string{path, path + ".kills", path + ".formation"} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", p)
		}
	}
}
