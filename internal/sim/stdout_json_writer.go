package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"skyhunter/internal/telemetry"
)

// JSONStdoutWriter prints stats and events as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

func (w *JSONStdoutWriter) emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteStats outputs a stats row in JSON format.
func (w *JSONStdoutWriter) WriteStats(row telemetry.StatsRow) error { return w.emit(row) }

// WriteKill outputs a kill event in JSON format.
func (w *JSONStdoutWriter) WriteKill(row telemetry.KillRow) error { return w.emit(row) }

// WriteKills outputs multiple kill events.
func (w *JSONStdoutWriter) WriteKills(rows []telemetry.KillRow) error {
	for _, r := range rows {
		if err := w.WriteKill(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteChatter outputs a radio message in JSON format.
func (w *JSONStdoutWriter) WriteChatter(row telemetry.ChatterRow) error { return w.emit(row) }

// WriteChatters outputs multiple radio messages.
func (w *JSONStdoutWriter) WriteChatters(rows []telemetry.ChatterRow) error {
	for _, r := range rows {
		if err := w.WriteChatter(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteFormationEvent outputs a formation event in JSON format.
func (w *JSONStdoutWriter) WriteFormationEvent(row telemetry.FormationEventRow) error {
	return w.emit(row)
}
