package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"skyhunter/internal/telemetry"
)

// ReplayLog replays stats rows from r to writer. A speed >0 paces playback
// by the recorded timestamps, accelerated by speed. If speed <= 0, no
// artificial delay is inserted.
func ReplayLog(r io.Reader, writer StatsWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var row telemetry.StatsRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode stats row: %w", err)
		}
		if !prev.IsZero() && speed > 0 {
			diff := row.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.WriteStats(row); err != nil {
			return err
		}
		prev = row.Timestamp
	}
}

// ReplayLogFile opens a file and replays its stats rows.
func ReplayLogFile(path string, writer StatsWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open replay log: %w", err)
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
