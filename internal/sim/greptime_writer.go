package sim

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"skyhunter/internal/telemetry"
)

const defaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes session stats and events to GreptimeDB via the
// ingester client. Tables are created on first write.
type GreptimeDBWriter struct {
	client         greptimeClient
	statsTable     string
	killTable      string
	chatterTable   string
	formationTable string
	log            *slog.Logger
}

// NewGreptimeDBWriter connects to endpoint (host or host:port) and database.
func NewGreptimeDBWriter(endpoint, database string, log *slog.Logger) (*GreptimeDBWriter, error) {
	if log == nil {
		log = slog.Default()
	}
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	return &GreptimeDBWriter{
		client:         client,
		statsTable:     telemetry.StatsTableName,
		killTable:      telemetry.KillTableName,
		chatterTable:   telemetry.ChatterTableName,
		formationTable: telemetry.FormationTableName,
		log:            log,
	}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	if endpoint == "" {
		return "", 0, fmt.Errorf("empty greptime endpoint")
	}
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid greptime port %q: %w", portStr, err)
	}
	return host, port, nil
}

func (w *GreptimeDBWriter) logger() *slog.Logger {
	if w.log == nil {
		return slog.Default()
	}
	return w.log
}

func (w *GreptimeDBWriter) send(name string, tbl *table.Table, n int) error {
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.logger().Error("greptime write failed", "table", name, "err", err)
		return err
	}
	w.logger().Debug("greptime write", "table", name, "rows", n)
	return nil
}

// WriteStats inserts a single stats row.
func (w *GreptimeDBWriter) WriteStats(row telemetry.StatsRow) error {
	return w.WriteStatsBatch([]telemetry.StatsRow{row})
}

// WriteStatsBatch inserts multiple stats rows.
func (w *GreptimeDBWriter) WriteStatsBatch(rows []telemetry.StatsRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.statsTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session", types.STRING)
	tbl.AddTagColumn("mode", types.STRING)
	tbl.AddFieldColumn("state", types.STRING)
	tbl.AddFieldColumn("tick", types.UINT64)
	for _, name := range []string{"score", "high_score", "enemies_destroyed", "targets_hit", "combo", "max_combo"} {
		tbl.AddFieldColumn(name, types.INT64)
	}
	for _, name := range []string{"difficulty", "time_played", "time_remaining", "player_health"} {
		tbl.AddFieldColumn(name, types.FLOAT64)
	}
	tbl.AddFieldColumn("live_enemies", types.INT64)
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.Session, r.Mode, r.State, r.Tick,
			int64(r.Score), int64(r.HighScore), int64(r.EnemiesDestroyed), int64(r.TargetsHit),
			int64(r.Combo), int64(r.MaxCombo),
			r.Difficulty, r.TimePlayed, r.TimeRemaining, r.PlayerHealth,
			int64(r.LiveEnemies), r.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.statsTable, tbl, len(rows))
}

// WriteKill inserts a single kill event.
func (w *GreptimeDBWriter) WriteKill(row telemetry.KillRow) error {
	return w.WriteKills([]telemetry.KillRow{row})
}

// WriteKills inserts multiple kill events.
func (w *GreptimeDBWriter) WriteKills(rows []telemetry.KillRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.killTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session", types.STRING)
	tbl.AddTagColumn("enemy_type", types.STRING)
	tbl.AddFieldColumn("enemy_id", types.STRING)
	tbl.AddFieldColumn("cause", types.STRING)
	tbl.AddFieldColumn("points", types.INT64)
	tbl.AddFieldColumn("x", types.FLOAT64)
	tbl.AddFieldColumn("y", types.FLOAT64)
	tbl.AddFieldColumn("z", types.FLOAT64)
	tbl.AddFieldColumn("elapsed", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	for _, r := range rows {
		if err := tbl.AddRow(r.Session, r.EnemyType, r.EnemyID, r.Cause, int64(r.Points),
			r.X, r.Y, r.Z, r.Elapsed, r.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.killTable, tbl, len(rows))
}

// WriteChatter inserts a single radio message.
func (w *GreptimeDBWriter) WriteChatter(row telemetry.ChatterRow) error {
	return w.WriteChatters([]telemetry.ChatterRow{row})
}

// WriteChatters inserts multiple radio messages.
func (w *GreptimeDBWriter) WriteChatters(rows []telemetry.ChatterRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.chatterTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session", types.STRING)
	tbl.AddTagColumn("personality", types.STRING)
	tbl.AddFieldColumn("enemy_id", types.STRING)
	tbl.AddFieldColumn("sender", types.STRING)
	tbl.AddFieldColumn("message", types.STRING)
	tbl.AddFieldColumn("elapsed", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	for _, r := range rows {
		if err := tbl.AddRow(r.Session, r.Personality, r.EnemyID, r.Sender, r.Message,
			r.Elapsed, r.Timestamp); err != nil {
			return err
		}
	}
	return w.send(w.chatterTable, tbl, len(rows))
}

// WriteFormationEvent inserts a formation lifecycle event.
func (w *GreptimeDBWriter) WriteFormationEvent(row telemetry.FormationEventRow) error {
	tbl, err := table.New(w.formationTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session", types.STRING)
	tbl.AddTagColumn("event_type", types.STRING)
	tbl.AddFieldColumn("enemy_id", types.STRING)
	tbl.AddFieldColumn("leader_id", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	if err := tbl.AddRow(row.Session, row.EventType, row.EnemyID, row.LeaderID, row.Timestamp); err != nil {
		return err
	}
	return w.send(w.formationTable, tbl, 1)
}
