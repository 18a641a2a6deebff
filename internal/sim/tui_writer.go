package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"skyhunter/internal/config"
	"skyhunter/internal/game"
	"skyhunter/internal/powerup"
	"skyhunter/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the event viewport.
type logMsg struct{ line string }

// radioMsg carries a radio chatter line.
type radioMsg struct{ line string }

// statsMsg carries the session snapshot.
type statsMsg struct{ telemetry.StatsRow }

// enemiesMsg carries the live enemy table.
type enemiesMsg struct{ rows []telemetry.EnemyRow }

// adminMsg reports admin UI status.
type adminMsg struct{ active bool }

// controlsMsg registers session controls.
type controlsMsg struct{ c Controls }

// statusMsg reports the outcome of a control action.
type statusMsg struct{ text string }

// Controls are the session actions reachable from the TUI. Nil fields are
// ignored.
type Controls struct {
	TogglePause    func() game.State
	SpawnFormation func() (string, error)
	GrantPowerUp   func(powerup.Type)
}

const (
	maxLogLines         = 1000
	maxSectionHeightPct = 0.3
)

// TUIWriter renders the session using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.Config, ruleset game.Ruleset) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg, ruleset), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteStats implements StatsWriter.
func (w *TUIWriter) WriteStats(row telemetry.StatsRow) error {
	w.program.Send(statsMsg{row})
	return nil
}

// WriteEnemies implements EnemySnapshotWriter.
func (w *TUIWriter) WriteEnemies(rows []telemetry.EnemyRow) error {
	w.program.Send(enemiesMsg{rows: rows})
	return nil
}

// WriteKill implements EventWriter.
func (w *TUIWriter) WriteKill(row telemetry.KillRow) error {
	line := fmt.Sprintf("%s %sKILL%s %s%s%s %stype=%s%s %scause=%s%s %s+%d%s",
		stamp(row.Timestamp), colorRed, colorReset,
		colorWhite(), short(row.EnemyID), colorReset,
		colorMagenta, row.EnemyType, colorReset,
		colorYellow, row.Cause, colorReset,
		colorGreen, row.Points, colorReset)
	w.program.Send(logMsg{line: line})
	return nil
}

// WriteChatter implements EventWriter.
func (w *TUIWriter) WriteChatter(row telemetry.ChatterRow) error {
	line := fmt.Sprintf("%s%s%s %s(%s)%s %q",
		colorYellow, row.Sender, colorReset,
		colorGray, row.Personality, colorReset, row.Message)
	w.program.Send(radioMsg{line: line})
	return nil
}

// WriteKills outputs multiple kill rows.
func (w *TUIWriter) WriteKills(rows []telemetry.KillRow) error {
	for _, r := range rows {
		_ = w.WriteKill(r)
	}
	return nil
}

// WriteChatters outputs multiple radio messages.
func (w *TUIWriter) WriteChatters(rows []telemetry.ChatterRow) error {
	for _, r := range rows {
		_ = w.WriteChatter(r)
	}
	return nil
}

// WriteFormationEvent implements FormationEventWriter.
func (w *TUIWriter) WriteFormationEvent(row telemetry.FormationEventRow) error {
	line := fmt.Sprintf("%s %sFORMATION%s %s%s%s wingman=%s leader=%s",
		stamp(row.Timestamp), colorCyan, colorReset,
		colorBlue, row.EventType, colorReset,
		short(row.EnemyID), short(row.LeaderID))
	w.program.Send(logMsg{line: line})
	return nil
}

// SetAdminStatus updates the admin UI indicator.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// SetControls registers the session actions bound to keys.
func (w *TUIWriter) SetControls(c Controls) {
	w.program.Send(controlsMsg{c: c})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	cfg          *config.Config
	ruleset      game.Ruleset
	table        table.Model
	vp           viewport.Model
	radioVP      viewport.Model
	logs         []string
	radio        []string
	stats        telemetry.StatsRow
	controls     Controls
	grantInput   textinput.Model
	grantDialog  bool
	status       string
	admin        bool
	wrap         bool
	autoscroll   bool
	showEnemies  bool
	help         bool
	header       string
	headerHeight int
	height       int
}

func newTUIModel(cfg *config.Config, ruleset game.Ruleset) tuiModel {
	if cfg == nil {
		cfg = config.Default()
	}
	cols := []table.Column{
		{Title: "Enemy", Width: 9},
		{Title: "Type", Width: 7},
		{Title: "Pilot", Width: 10},
		{Title: "State", Width: 16},
		{Title: "Role", Width: 8},
		{Title: "HP", Width: 9},
		{Title: "Dist", Width: 6},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(cfg.Enemies.MaxEnemies+1))
	m := tuiModel{
		cfg:         cfg,
		ruleset:     ruleset,
		table:       t,
		vp:          viewport.New(0, 0),
		radioVP:     viewport.New(0, 0),
		autoscroll:  true,
		showEnemies: true,
	}
	m.header = m.renderHeader()
	m.headerHeight = lipgloss.Height(m.header)
	return m
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.radioVP.Width = msg.Width
		m.height = msg.Height
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
		m.refreshRadio()
	case tea.KeyMsg:
		if m.grantDialog {
			switch msg.Type {
			case tea.KeyEnter:
				t, err := powerup.Parse(m.grantInput.Value())
				switch {
				case err != nil:
					m.status = err.Error()
				case m.controls.GrantPowerUp != nil:
					m.grantDialog = false
					m.updateViewportHeight()
					return m, grantCmd(m.controls.GrantPowerUp, t)
				}
				m.grantDialog = false
				m.updateViewportHeight()
			case tea.KeyEsc:
				m.grantDialog = false
				m.updateViewportHeight()
			default:
				var cmd tea.Cmd
				m.grantInput, cmd = m.grantInput.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
				m.updateViewportHeight()
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			m.refreshRadio()
			m.header = m.renderHeader()
			m.headerHeight = lipgloss.Height(m.header)
			m.updateViewportHeight()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
				m.radioVP.GotoBottom()
			}
			return m, nil
		case "n":
			m.showEnemies = !m.showEnemies
			m.updateViewportHeight()
			return m, nil
		case "p":
			if m.controls.TogglePause != nil {
				return m, pauseCmd(m.controls.TogglePause)
			}
			return m, nil
		case "f":
			if m.controls.SpawnFormation != nil {
				return m, formationCmd(m.controls.SpawnFormation)
			}
			return m, nil
		case "g":
			m.grantInput = textinput.New()
			m.grantInput.Placeholder = strings.Join(powerupNames(), "|")
			m.grantInput.Focus()
			m.grantDialog = true
			m.updateViewportHeight()
			return m, nil
		case "h", "?":
			m.help = !m.help
			m.updateViewportHeight()
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
				m.radioVP.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
				m.radioVP.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
				m.radioVP.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
				m.radioVP.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				m.radioVP, _ = m.radioVP.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		return m, nil
	case logMsg:
		m.logs = appendBounded(m.logs, msg.line)
		m.refreshViewport()
	case radioMsg:
		m.radio = appendBounded(m.radio, msg.line)
		m.updateViewportHeight()
		m.refreshRadio()
	case statsMsg:
		m.stats = msg.StatsRow
	case enemiesMsg:
		rows := make([]table.Row, 0, len(msg.rows))
		for _, e := range msg.rows {
			rows = append(rows, table.Row{
				short(e.ID), e.Type, e.Personality, e.State, e.Role,
				fmt.Sprintf("%.0f/%.0f", e.Health, e.MaxHealth),
				fmt.Sprintf("%.0f", e.Distance),
			})
		}
		m.table.SetRows(rows)
	case adminMsg:
		m.admin = msg.active
	case controlsMsg:
		m.controls = msg.c
	case statusMsg:
		m.status = msg.text
	}
	return m, nil
}

// pauseCmd runs the toggle off the event loop. Controls take the simulator
// lock, which a tick holds while it sends to the program.
func pauseCmd(toggle func() game.State) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: "state " + toggle().String()}
	}
}

func formationCmd(spawn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		id, err := spawn()
		if err != nil {
			return statusMsg{text: err.Error()}
		}
		return statusMsg{text: "formation " + short(id)}
	}
}

func grantCmd(grant func(powerup.Type), t powerup.Type) tea.Cmd {
	return func() tea.Msg {
		grant(t)
		return statusMsg{text: "granted " + string(t)}
	}
}

func appendBounded(lines []string, line string) []string {
	lines = append(lines, line)
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	return lines
}

func powerupNames() []string {
	names := make([]string, len(powerup.Types))
	for i, t := range powerup.Types {
		names[i] = string(t)
	}
	return names
}

func (m tuiModel) maxSectionLines() int {
	h := int(float64(m.height) * maxSectionHeightPct)
	if h < 1 {
		h = 1
	}
	return h
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	radioLines := len(m.radio)
	if radioLines == 0 {
		radioLines = 1
	}
	if limit := m.maxSectionLines(); radioLines > limit {
		radioLines = limit
	}
	m.radioVP.Height = radioLines

	enemyHeight := 0
	if m.showEnemies {
		enemyHeight = lipgloss.Height(m.table.View()) + 1
	}
	if m.grantDialog {
		enemyHeight++
	}
	h := m.height - m.headerHeight - bottomHeight - (1 + m.radioVP.Height) - enemyHeight - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
		m.radioVP.GotoBottom()
	}
}

func (m *tuiModel) wrapped(lines []string, width int) string {
	if !m.wrap || width <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = wordwrap.String(l, width)
	}
	return strings.Join(out, "\n")
}

func (m *tuiModel) refreshViewport() {
	m.vp.SetContent(m.wrapped(m.logs, m.vp.Width))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshRadio() {
	content := "none"
	if len(m.radio) > 0 {
		content = m.wrapped(m.radio, m.radioVP.Width)
	}
	m.radioVP.SetContent(content)
	if m.autoscroll {
		m.radioVP.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.vp.View(),
		divider,
		"Radio:",
		m.radioVP.View(),
	}
	if m.showEnemies {
		sections = append(sections, divider, m.table.View())
	}
	if m.grantDialog {
		sections = append(sections, fmt.Sprintf("Grant power-up - Enter to apply, Esc to cancel: %s", m.grantInput.View()))
	}
	sections = append(sections, divider, m.renderBottom())
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).
		Render(fmt.Sprintf("SKYHUNTER %s", m.cfg.Session))
	mode := fmt.Sprintf("%s%s%s - %s", colorMagenta, m.ruleset.Name, colorReset, m.ruleset.Description)
	if m.wrap && m.vp.Width > 0 {
		mode = wordwrap.String(mode, m.vp.Width)
	}
	settings := fmt.Sprintf("seed=%d max_enemies=%d attack=%.0f pursuit=%.0f difficulty=%.2f+%.2f/min",
		m.cfg.Seed, m.cfg.Enemies.MaxEnemies, m.cfg.Enemies.AttackRange, m.cfg.Enemies.PursuitRange,
		m.cfg.Difficulty.Start, m.cfg.Difficulty.GrowthPerMinute)
	settings = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(settings)
	return lipgloss.JoinVertical(lipgloss.Left, title, mode, settings)
}

func indicator(on bool) string {
	c := lipgloss.Color("9")
	if on {
		c = lipgloss.Color("10")
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

func (m tuiModel) renderBottom() string {
	s := m.stats
	state := fmt.Sprintf("%s%s%s %sscore=%d%s %skills=%d%s %stargets=%d%s %scombo=%d%s %shp=%.0f%s %sdiff=%.2f%s %stime=%.0f%s",
		colorBlue, strings.ToUpper(s.State), colorReset,
		colorWhite(), s.Score, colorReset,
		colorRed, s.EnemiesDestroyed, colorReset,
		colorGreen, s.TargetsHit, colorReset,
		colorMagenta, s.Combo, colorReset,
		colorGreen, s.PlayerHealth, colorReset,
		colorYellow, s.Difficulty, colorReset,
		colorCyan, s.TimePlayed, colorReset)
	if m.ruleset.Timed() {
		state += fmt.Sprintf(" %sleft=%.0f%s", colorYellow, s.TimeRemaining, colorReset)
	}
	line := fmt.Sprintf("%s | Admin UI %s | Wrap %s | Scroll %s | Enemies %s",
		state, indicator(m.admin), indicator(m.wrap), indicator(m.autoscroll), indicator(m.showEnemies))
	if m.status != "" {
		line += " | " + m.status
	}
	return line
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" p  pause/resume the session",
		" f  spawn a formation",
		" g  grant a power-up",
		" w  toggle wrap",
		" s  toggle auto-scroll",
		" n  toggle enemy table",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
