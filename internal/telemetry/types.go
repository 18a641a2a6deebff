// Telemetry rows with greptime tags
package telemetry

import (
	"os"
	"time"
)

func tableName(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// StatsTableName defaults to "skyhunter_stats" and can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var StatsTableName = tableName("GREPTIMEDB_TABLE", "skyhunter_stats")

// KillTableName holds destroyed-enemy events (KILL_EVENT_TABLE).
var KillTableName = tableName("KILL_EVENT_TABLE", "enemy_kills")

// ChatterTableName holds radio chatter (CHATTER_TABLE).
var ChatterTableName = tableName("CHATTER_TABLE", "radio_chatter")

// FormationTableName holds formation lifecycle events (FORMATION_EVENT_TABLE).
var FormationTableName = tableName("FORMATION_EVENT_TABLE", "formation_events")

// StatsRow is a per-tick snapshot of the session. Session and Mode are
// tags, Timestamp is the time index, everything else is a field.
type StatsRow struct {
	Session          string    `json:"session"`
	Mode             string    `json:"mode"`
	State            string    `json:"state"`
	Tick             uint64    `json:"tick"`
	Score            int       `json:"score"`
	HighScore        int       `json:"high_score"`
	EnemiesDestroyed int       `json:"enemies_destroyed"`
	TargetsHit       int       `json:"targets_hit"`
	Combo            int       `json:"combo"`
	MaxCombo         int       `json:"max_combo"`
	Difficulty       float64   `json:"difficulty"`
	TimePlayed       float64   `json:"time_played"`
	TimeRemaining    float64   `json:"time_remaining"`
	PlayerHealth     float64   `json:"player_health"`
	LiveEnemies      int       `json:"live_enemies"`
	Timestamp        time.Time `json:"ts"`
}

func (StatsRow) TableName() string { return StatsTableName }

// KillRow records one destroyed enemy.
type KillRow struct {
	Session   string    `json:"session"`
	EnemyID   string    `json:"enemy_id"`
	EnemyType string    `json:"enemy_type"`
	Cause     string    `json:"cause"`
	Points    int       `json:"points"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	Elapsed   float64   `json:"elapsed"`
	Timestamp time.Time `json:"ts"`
}

func (KillRow) TableName() string { return KillTableName }

// ChatterRow records one radio message.
type ChatterRow struct {
	Session     string    `json:"session"`
	EnemyID     string    `json:"enemy_id"`
	Sender      string    `json:"sender"`
	Personality string    `json:"personality"`
	Message     string    `json:"message"`
	Elapsed     float64   `json:"elapsed"`
	Timestamp   time.Time `json:"ts"`
}

func (ChatterRow) TableName() string { return ChatterTableName }

// FormationEventRow records a formation lifecycle change. EventType is one
// of formed, broken or orphaned.
type FormationEventRow struct {
	Session   string    `json:"session"`
	EventType string    `json:"event_type"`
	EnemyID   string    `json:"enemy_id"`
	LeaderID  string    `json:"leader_id,omitempty"`
	Timestamp time.Time `json:"ts"`
}

func (FormationEventRow) TableName() string { return FormationTableName }

// EnemyRow is the pose and condition of one live enemy, for live views.
type EnemyRow struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Personality string    `json:"personality"`
	State       string    `json:"state"`
	Role        string    `json:"role"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Z           float64   `json:"z"`
	Health      float64   `json:"health"`
	MaxHealth   float64   `json:"max_health"`
	Morale      float64   `json:"morale"`
	Distance    float64   `json:"distance"`
	Timestamp   time.Time `json:"ts"`
}
