package sim

import (
	"context"
	"fmt"
	"time"

	"skyhunter/internal/enemy"
	"skyhunter/internal/logging"
)

// logFormationEvents records formation changes in the event log and hands
// them to the stats writer when it accepts formation rows.
func (s *Simulator) logFormationEvents(ctx context.Context, evs []enemy.FormationEvent, ts time.Time) {
	if len(evs) == 0 {
		return
	}
	w, _ := s.writer.(FormationEventWriter)
	for _, ev := range evs {
		s.logEvent("formation", fmt.Sprintf("%s wingman=%s leader=%s", ev.Kind, short(ev.EnemyID), short(ev.LeaderID)))
		if w == nil {
			continue
		}
		if err := w.WriteFormationEvent(s.recorder.Formation(ev, ts)); err != nil {
			logging.FromContext(ctx).Error("formation event write failed", "err", err)
		}
	}
}

// FormationSummary counts live formations: leaders, and wingmen still
// attached to a live leader.
type FormationSummary struct {
	Leaders  int `json:"leaders"`
	Wingmen  int `json:"wingmen"`
	Solo     int `json:"solo"`
	Retreats int `json:"retreating"`
}

// Formations summarises the formation roles of the live enemies.
func (s *Simulator) Formations() FormationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum FormationSummary
	for _, en := range s.engine.Enemies {
		if en.Gone() {
			continue
		}
		switch en.Role.Kind {
		case enemy.RoleLeader:
			sum.Leaders++
		case enemy.RoleWingman:
			if s.engine.Find(en.Role.LeaderID) != nil {
				sum.Wingmen++
			} else {
				sum.Solo++
			}
		default:
			sum.Solo++
		}
		if en.State.Is(enemy.StateRetreating) {
			sum.Retreats++
		}
	}
	return sum
}
