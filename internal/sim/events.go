package sim

import "time"

// maxEvents bounds the in-memory event log.
const maxEvents = 200

// Event is a human-readable entry in the session event log.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
}

// RecentEvents returns a copy of the event log, oldest first.
func (s *Simulator) RecentEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Simulator) logEvent(t, details string) {
	s.events = append(s.events, Event{Timestamp: s.now().UTC(), Type: t, Details: details})
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}
