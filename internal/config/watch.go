package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"skyhunter/internal/logging"
)

// reloadDebounce is the quiet period after the last event before a reload.
// A burst of saves reloads once, with the final content.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads configPath whenever it changes and hands each valid
// configuration to onChange. Invalid edits are logged and skipped, leaving
// the previous configuration in effect. Watch blocks until ctx is done.
func Watch(ctx context.Context, configPath, cueSchemaPath string, onChange func(*Config)) error {
	log := logging.FromContext(ctx)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := w.Add(filepath.Dir(configPath)); err != nil {
		return err
	}
	target := filepath.Clean(configPath)

	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(reloadDebounce)
		case <-debounce.C:
			cfg, err := Load(configPath, cueSchemaPath)
			if err != nil {
				log.Error("config reload failed", "path", configPath, "err", err)
				continue
			}
			log.Info("config reloaded", "path", configPath)
			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("config watcher error", "err", err)
		}
	}
}
