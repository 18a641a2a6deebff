package telemetry

import (
	"time"

	"skyhunter/internal/enemy"
	"skyhunter/internal/vecmath"
)

// Recorder turns simulation events into rows stamped with one session.
type Recorder struct {
	Session string
}

// NewRecorder creates a recorder for a session.
func NewRecorder(session string) *Recorder {
	return &Recorder{Session: session}
}

// Kill converts a destroyed event.
func (r *Recorder) Kill(ev enemy.DestroyedEvent, ts time.Time) KillRow {
	return KillRow{
		Session:   r.Session,
		EnemyID:   ev.EnemyID,
		EnemyType: string(ev.Type),
		Cause:     string(ev.Cause),
		Points:    ev.Points,
		X:         ev.Position.X(),
		Y:         ev.Position.Y(),
		Z:         ev.Position.Z(),
		Elapsed:   ev.Elapsed,
		Timestamp: ts,
	}
}

// Chatter converts a radio message.
func (r *Recorder) Chatter(ev enemy.ChatterEvent, ts time.Time) ChatterRow {
	return ChatterRow{
		Session:     r.Session,
		EnemyID:     ev.EnemyID,
		Sender:      string(ev.Sender),
		Personality: string(ev.Personality),
		Message:     ev.Message,
		Elapsed:     ev.Elapsed,
		Timestamp:   ts,
	}
}

// Formation converts a formation event.
func (r *Recorder) Formation(ev enemy.FormationEvent, ts time.Time) FormationEventRow {
	return FormationEventRow{
		Session:   r.Session,
		EventType: string(ev.Kind),
		EnemyID:   ev.EnemyID,
		LeaderID:  ev.LeaderID,
		Timestamp: ts,
	}
}

// Enemy snapshots a live enemy relative to the player position.
func (r *Recorder) Enemy(en *enemy.Enemy, playerPos vecmath.Vec3, ts time.Time) EnemyRow {
	p := en.Position()
	return EnemyRow{
		ID:          en.ID,
		Type:        string(en.Type),
		Personality: string(en.Personality),
		State:       en.State.String(),
		Role:        en.Role.Kind.String(),
		X:           p.X(),
		Y:           p.Y(),
		Z:           p.Z(),
		Health:      en.Health.Current,
		MaxHealth:   en.Health.Max,
		Morale:      en.Morale,
		Distance:    vecmath.Distance(p, playerPos),
		Timestamp:   ts,
	}
}
