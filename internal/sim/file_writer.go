package sim

import (
	"encoding/json"
	"os"

	"skyhunter/internal/telemetry"
)

// FileWriter writes stats and events to JSONL files.
type FileWriter struct {
	statsFile     *os.File
	killFile      *os.File
	chatterFile   *os.File
	formationFile *os.File
	statsEnc      *json.Encoder
	killEnc       *json.Encoder
	chatterEnc    *json.Encoder
	formationEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. killPath, chatterPath or formationPath
// may be empty to skip those logs.
func NewFileWriter(statsPath, killPath, chatterPath, formationPath string) (*FileWriter, error) {
	sf, err := os.Create(statsPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{statsFile: sf, statsEnc: json.NewEncoder(sf)}
	open := func(path string) (*os.File, *json.Encoder, error) {
		if path == "" {
			return nil, nil, nil
		}
		f, err := os.Create(path)
		if err != nil {
			fw.Close()
			return nil, nil, err
		}
		return f, json.NewEncoder(f), nil
	}
	if fw.killFile, fw.killEnc, err = open(killPath); err != nil {
		return nil, err
	}
	if fw.chatterFile, fw.chatterEnc, err = open(chatterPath); err != nil {
		return nil, err
	}
	if fw.formationFile, fw.formationEnc, err = open(formationPath); err != nil {
		return nil, err
	}
	return fw, nil
}

// WriteStats logs a single stats row.
func (f *FileWriter) WriteStats(row telemetry.StatsRow) error {
	return f.statsEnc.Encode(row)
}

// WriteKill logs a kill event, if enabled.
func (f *FileWriter) WriteKill(row telemetry.KillRow) error {
	if f.killEnc == nil {
		return nil
	}
	return f.killEnc.Encode(row)
}

// WriteKills logs multiple kill events.
func (f *FileWriter) WriteKills(rows []telemetry.KillRow) error {
	for _, r := range rows {
		if err := f.WriteKill(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteChatter logs a radio message, if enabled.
func (f *FileWriter) WriteChatter(row telemetry.ChatterRow) error {
	if f.chatterEnc == nil {
		return nil
	}
	return f.chatterEnc.Encode(row)
}

// WriteChatters logs multiple radio messages.
func (f *FileWriter) WriteChatters(rows []telemetry.ChatterRow) error {
	for _, r := range rows {
		if err := f.WriteChatter(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteFormationEvent logs a formation event, if enabled.
func (f *FileWriter) WriteFormationEvent(row telemetry.FormationEventRow) error {
	if f.formationEnc == nil {
		return nil
	}
	return f.formationEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	for _, file := range []*os.File{f.statsFile, f.killFile, f.chatterFile, f.formationFile} {
		if file == nil {
			continue
		}
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
