package sim

import "skyhunter/internal/telemetry"

// StatsWriter receives the per-tick session snapshot.
type StatsWriter interface {
	WriteStats(telemetry.StatsRow) error
}

// EventWriter handles kill and radio chatter events.
type EventWriter interface {
	WriteKill(telemetry.KillRow) error
	WriteChatter(telemetry.ChatterRow) error
}

// Optional: event writers may support batch mode
type batchEventWriter interface {
	WriteKills([]telemetry.KillRow) error
	WriteChatters([]telemetry.ChatterRow) error
}

// FormationEventWriter handles formation lifecycle events.
type FormationEventWriter interface {
	WriteFormationEvent(telemetry.FormationEventRow) error
}

// EnemySnapshotWriter receives the live enemy table once per tick.
type EnemySnapshotWriter interface {
	WriteEnemies([]telemetry.EnemyRow) error
}

// AdminStatusWriter allows writers to receive admin UI status updates.
type AdminStatusWriter interface {
	SetAdminStatus(listening bool)
}

// ControlsWriter accepts the session controls, for interactive writers.
type ControlsWriter interface {
	SetControls(Controls)
}
