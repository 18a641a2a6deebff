package dashboard

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"skyhunter/internal/telemetry"
)

//go:embed templates/*.tmpl
var templates embed.FS

var templateFiles = []string{
	"skyhunter-dashboard.json.tmpl",
}

// Tables are the GreptimeDB tables the dashboard queries.
type Tables struct {
	Stats     string
	Kills     string
	Chatter   string
	Formation string
}

// CurrentTables returns the table names the writers use, honoring the
// environment overrides.
func CurrentTables() Tables {
	return Tables{
		Stats:     telemetry.StatsTableName,
		Kills:     telemetry.KillTableName,
		Chatter:   telemetry.ChatterTableName,
		Formation: telemetry.FormationTableName,
	}
}

// Render parses the dashboard templates and writes rendered Grafana
// dashboards to outDir. GREPTIMEDB_DATASOURCE_UID must be set.
func Render(outDir string) error {
	funcMap := template.FuncMap{
		"env": func(key string) (string, error) {
			v := os.Getenv(key)
			if v == "" {
				return "", fmt.Errorf("environment variable %s not set", key)
			}
			return v, nil
		},
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	tables := CurrentTables()
	for _, tplName := range templateFiles {
		t, err := template.New(tplName).Funcs(funcMap).ParseFS(templates, "templates/"+tplName)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(tplName, ".tmpl"))
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := t.Execute(f, tables); err != nil {
			f.Close()
			return fmt.Errorf("render %s: %w", tplName, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
