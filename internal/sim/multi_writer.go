package sim

import (
	"skyhunter/internal/telemetry"
)

// MultiWriter fans stats and event rows out to multiple writers. Formation
// and enemy snapshot rows go to every stats writer that accepts them.
type MultiWriter struct {
	statsWriters []StatsWriter
	eventWriters []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []StatsWriter, ews []EventWriter) *MultiWriter {
	return &MultiWriter{statsWriters: sws, eventWriters: ews}
}

// WriteStats sends a stats row to all writers.
func (mw *MultiWriter) WriteStats(row telemetry.StatsRow) error {
	for _, w := range mw.statsWriters {
		if err := w.WriteStats(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteKill sends a kill row to all event writers.
func (mw *MultiWriter) WriteKill(row telemetry.KillRow) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteKill(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteKills sends kill rows to all event writers, using batch if supported.
func (mw *MultiWriter) WriteKills(rows []telemetry.KillRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteKills(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteKill(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteChatter sends a radio message to all event writers.
func (mw *MultiWriter) WriteChatter(row telemetry.ChatterRow) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteChatter(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteChatters sends radio messages to all event writers, using batch if
// supported.
func (mw *MultiWriter) WriteChatters(rows []telemetry.ChatterRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteChatters(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteChatter(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFormationEvent forwards to stats writers that handle formation rows.
func (mw *MultiWriter) WriteFormationEvent(row telemetry.FormationEventRow) error {
	for _, w := range mw.statsWriters {
		if fw, ok := w.(FormationEventWriter); ok {
			if err := fw.WriteFormationEvent(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEnemies forwards to stats writers that show live enemies.
func (mw *MultiWriter) WriteEnemies(rows []telemetry.EnemyRow) error {
	for _, w := range mw.statsWriters {
		if ew, ok := w.(EnemySnapshotWriter); ok {
			if err := ew.WriteEnemies(rows); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetAdminStatus forwards the admin UI status to writers that display it.
func (mw *MultiWriter) SetAdminStatus(listening bool) {
	for _, w := range mw.statsWriters {
		if aw, ok := w.(AdminStatusWriter); ok {
			aw.SetAdminStatus(listening)
		}
	}
}

// SetControls forwards the session controls to writers that accept them.
func (mw *MultiWriter) SetControls(c Controls) {
	for _, w := range mw.statsWriters {
		if cw, ok := w.(ControlsWriter); ok {
			cw.SetControls(c)
		}
	}
}
