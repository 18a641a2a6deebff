package game

import "fmt"

// State is the session lifecycle state.
type State int

const (
	MainMenu State = iota
	Playing
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main_menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Machine is the session state machine. GameOver is the single sink for
// player death and mode completion.
type Machine struct {
	state  State
	reason string
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Reason returns why the session ended, if it has.
func (m *Machine) Reason() string { return m.reason }

// Start begins a fresh session from any state.
func (m *Machine) Start() {
	m.state = Playing
	m.reason = ""
}

// TogglePause flips between Playing and Paused and returns the new state.
// Other states are left alone.
func (m *Machine) TogglePause() State {
	switch m.state {
	case Playing:
		m.state = Paused
	case Paused:
		m.state = Playing
	}
	return m.state
}

// GameOver ends the session. Only the first call records a reason; later
// calls are no-ops.
func (m *Machine) GameOver(reason string) {
	if m.state == GameOver {
		return
	}
	m.state = GameOver
	m.reason = reason
}

// Running reports whether the world should advance.
func (m *Machine) Running() bool { return m.state == Playing }
