// ColorStdoutWriter prints human-friendly, colorized session output to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"skyhunter/internal/config"
	"skyhunter/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

func colorWhite() string { return "\x1b[37m" }

// ColorStdoutWriter prints stats and events using ANSI colors. Stats rows
// are throttled to one line per Every ticks.
type ColorStdoutWriter struct {
	cfg   *config.Config
	out   io.Writer
	once  sync.Once
	Every uint64
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.Config) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout, Every: 60}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	fmt.Fprintln(w.out, "Session Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  session\t%s\n", w.cfg.Session)
	fmt.Fprintf(tw, "  mode\t%s\n", w.cfg.Mode)
	fmt.Fprintf(tw, "  seed\t%d\n", w.cfg.Seed)
	fmt.Fprintf(tw, "  difficulty\t%.2f +%.2f/min\n", w.cfg.Difficulty.Start, w.cfg.Difficulty.GrowthPerMinute)
	fmt.Fprintf(tw, "  max enemies\t%d\n", w.cfg.Enemies.MaxEnemies)
	fmt.Fprintf(tw, "  ranges\tattack=%.0f pursuit=%.0f\n", w.cfg.Enemies.AttackRange, w.cfg.Enemies.PursuitRange)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func stamp(ts time.Time) string {
	return fmt.Sprintf("%s[%s]%s", colorGray, ts.Format(time.RFC3339), colorReset)
}

// WriteStats prints a session summary line.
func (w *ColorStdoutWriter) WriteStats(row telemetry.StatsRow) error {
	w.once.Do(w.printOverview)
	if w.Every > 1 && row.Tick%w.Every != 0 && row.State == "playing" {
		return nil
	}
	healthColor := colorGreen
	switch {
	case row.PlayerHealth < 30:
		healthColor = colorRed
	case row.PlayerHealth < 60:
		healthColor = colorYellow
	}
	fmt.Fprintf(w.out, "%s %sSTATS%s ", stamp(row.Timestamp), colorBlue, colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorGray, row.Tick, colorReset)
	fmt.Fprintf(w.out, "%sscore=%d%s ", colorWhite(), row.Score, colorReset)
	fmt.Fprintf(w.out, "%skills=%d%s ", colorRed, row.EnemiesDestroyed, colorReset)
	fmt.Fprintf(w.out, "%stargets=%d%s ", colorGreen, row.TargetsHit, colorReset)
	fmt.Fprintf(w.out, "%scombo=%d%s ", colorMagenta, row.Combo, colorReset)
	fmt.Fprintf(w.out, "%sdiff=%.2f%s ", colorYellow, row.Difficulty, colorReset)
	fmt.Fprintf(w.out, "%senemies=%d%s ", colorCyan, row.LiveEnemies, colorReset)
	fmt.Fprintf(w.out, "%shp=%.0f%s ", healthColor, row.PlayerHealth, colorReset)
	fmt.Fprintf(w.out, "%sstate=%s%s", colorBlue, row.State, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteKill prints a destroyed enemy.
func (w *ColorStdoutWriter) WriteKill(row telemetry.KillRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s %sKILL%s enemy=%s type=%s cause=%s points=%d pos=(%.0f,%.0f,%.0f)\n",
		stamp(row.Timestamp), colorRed, colorReset,
		short(row.EnemyID), row.EnemyType, row.Cause, row.Points, row.X, row.Y, row.Z)
	return nil
}

// WriteChatter prints a radio message.
func (w *ColorStdoutWriter) WriteChatter(row telemetry.ChatterRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s %sRADIO%s %s%s/%s%s: %q\n",
		stamp(row.Timestamp), colorCyan, colorReset,
		colorYellow, row.Sender, row.Personality, colorReset, row.Message)
	return nil
}

// WriteFormationEvent prints a formation change.
func (w *ColorStdoutWriter) WriteFormationEvent(row telemetry.FormationEventRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s %sFORMATION%s type=%s wingman=%s leader=%s\n",
		stamp(row.Timestamp), colorMagenta, colorReset,
		row.EventType, short(row.EnemyID), short(row.LeaderID))
	return nil
}
