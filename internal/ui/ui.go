// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/catalog"
	"github.com/litescript/ls-astrotool/internal/plan"
	"github.com/litescript/ls-astrotool/internal/state"
	"github.com/litescript/ls-astrotool/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewMap ViewMode = iota
	ViewDetail
	ViewSky
	ViewPolar
)

const viewCount = 4

// Msg types for Bubble Tea
type (
	// TickMsg moves the "now" marker.
	TickMsg time.Time

	// PlanMsg replaces the displayed plan.
	PlanMsg struct {
		Plan *plan.Plan
	}

	// ErrorMsg signals a failed rescan.
	ErrorMsg struct {
		Error error
	}

	// OpenTargetMsg requests the detail view for a target row.
	OpenTargetMsg struct {
		Index int
	}

	// LiveMsg carries the latest live observation of the plan's targets.
	LiveMsg struct {
		Snapshot state.Snapshot
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	plan    *plan.Plan
	reticle *plan.Reticle
	clock   func() time.Time
	rescan  Rescanner
	err     error
	live    state.Snapshot

	rescanning bool

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	now      float64 // UT on the night axis, -1 outside the night

	airmassMap AirmassMapModel
	detail     TargetDetailModel
	sky        SkyViewModel
	polar      PolarViewModel
}

// Option configures New.
type Option func(*Model)

// WithStars sets the background stars drawn in the sky view.
func WithStars(c *catalog.Catalog) Option {
	return func(m *Model) { m.sky = m.sky.SetStars(c) }
}

// WithReticle sets the pole star placement shown in the polar view.
func WithReticle(r plan.Reticle) Option {
	return func(m *Model) { m.reticle = &r }
}

// WithClock replaces time.Now for the "now" marker.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// Rescanner builds the plan for the night on date.
type Rescanner func(date astrotime.Instant) (*plan.Plan, error)

// WithRescan enables rescans: on the r key for the displayed night, and
// automatically for the next night once the displayed one is over.
func WithRescan(r Rescanner) Option {
	return func(m *Model) { m.rescan = r }
}

// New creates a new root UI model for a scanned plan.
func New(p *plan.Plan, opts ...Option) Model {
	m := Model{
		clock:      time.Now,
		airmassMap: NewAirmassMapModel(),
		detail:     NewTargetDetailModel(),
		sky:        NewSkyViewModel(),
		polar:      NewPolarViewModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.polar = m.polar.SetReticle(m.reticle)
	m = m.setPlan(p)
	return m
}

func (m Model) setPlan(p *plan.Plan) Model {
	m.plan = p
	m.now = nowOnNight(p, m.clock())
	m.airmassMap = m.airmassMap.UpdateData(p).SetNow(m.now)
	m.detail = m.detail.UpdateData(p)
	m.sky = m.sky.UpdateData(p)
	return m
}

// nowOnNight places t on the plan's hour axis.
func nowOnNight(p *plan.Plan, t time.Time) float64 {
	if p == nil {
		return -1
	}
	h := hoursIntoNight(p.Night, t)
	if !p.Night.Contains(h) {
		return -1
	}
	return h
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "a":
			m = m.switchTo(ViewMap)
		case "2", "d":
			m = m.switchTo(ViewDetail)
		case "3", "s":
			m = m.switchTo(ViewSky)
		case "4", "p":
			m = m.switchTo(ViewPolar)

		case "tab":
			m = m.switchTo((m.viewMode + 1) % viewCount)

		case "r":
			if m.plan != nil {
				cmds = append(cmds, m.startRescan(m.plan.Night.Date))
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 5 lines, footer 2
		contentHeight := msg.Height - 7
		m.airmassMap = m.airmassMap.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.sky = m.sky.SetSize(msg.Width, contentHeight)
		m.polar = m.polar.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		t := time.Time(msg)
		m.now = nowOnNight(m.plan, t)
		m.airmassMap = m.airmassMap.SetNow(m.now)
		if m.plan != nil && nightOver(m.plan.Night, t) {
			cmds = append(cmds, m.startRescan(nextNightDate(m.plan.Night, t)))
		}

	case PlanMsg:
		m.rescanning = false
		m.err = nil
		m = m.setPlan(msg.Plan)

	case ErrorMsg:
		m.rescanning = false
		m.err = msg.Error

	case LiveMsg:
		m.live = msg.Snapshot
		m.detail = m.detail.SetLive(msg.Snapshot)

	case OpenTargetMsg:
		m.detail = m.detail.SetSelected(msg.Index)
		m.viewMode = ViewDetail

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// startRescan runs the rescanner for date in the background. It returns nil
// when rescans are off or one is already running.
func (m *Model) startRescan(date astrotime.Instant) tea.Cmd {
	if m.rescan == nil || m.rescanning {
		return nil
	}
	m.rescanning = true
	rescan := m.rescan
	return func() tea.Msg {
		p, err := rescan(date)
		if err != nil {
			return ErrorMsg{Error: fmt.Errorf("rescan %04d-%02d-%02d: %w", date.Year, date.Month, date.Day, err)}
		}
		return PlanMsg{Plan: p}
	}
}

// hoursIntoNight returns t in hours from midnight of the night's date.
func hoursIntoNight(n plan.Night, t time.Time) float64 {
	return (astrotime.FromTime(t).JulianDay() - n.Date.JulianDay()) * 24
}

// nightOver reports whether t is at or past the end of the night.
func nightOver(n plan.Night, t time.Time) bool {
	return hoursIntoNight(n, t) >= n.End
}

// nextNightDate returns the date of the first night after n that has not
// ended by t.
func nextNightDate(n plan.Night, t time.Time) astrotime.Instant {
	date := n.Date.Midnight()
	for h := hoursIntoNight(n, t); h >= n.End; h -= 24 {
		date = date.AddHours(24)
	}
	return date
}

// switchTo changes view, carrying the selected target across.
func (m Model) switchTo(mode ViewMode) Model {
	if mode == m.viewMode {
		return m
	}
	selected := m.Selected()
	m.airmassMap = m.airmassMap.SetCursor(selected)
	m.detail = m.detail.SetSelected(selected)
	m.sky = m.sky.SetFocus(selected)
	m.viewMode = mode
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewMap:
		m.airmassMap, cmd = m.airmassMap.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSky:
		m.sky, cmd = m.sky.Update(msg)
	case ViewPolar:
		m.polar, cmd = m.polar.Update(msg)
	}
	return cmd
}

// Selected returns the index of the target selected in the active view.
func (m Model) Selected() int {
	switch m.viewMode {
	case ViewDetail:
		return m.detail.Selected()
	case ViewSky:
		return m.sky.Focus()
	default:
		return m.airmassMap.Cursor()
	}
}

// Mode returns the active view.
func (m Model) Mode() ViewMode {
	return m.viewMode
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewMap:
		content = m.airmassMap.View()
	case ViewDetail:
		content = m.detail.View()
	case ViewSky:
		content = m.sky.View()
	case ViewPolar:
		content = m.polar.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + renderGradient("ls-astrotool"))

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s", version.Version)))
	b.WriteString("\n")

	if m.plan != nil {
		p := m.plan
		b.WriteString(muted.Render(fmt.Sprintf("  %s · %s  %s to %s UT",
			p.Site.Name, p.Night.Label(), plan.FormatUT(p.Night.Start), plan.FormatUT(p.Night.End))))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// renderGradient colours text along the logo gradient.
func renderGradient(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	xRatio := 0.0
	if width > 1 {
		xRatio = float64(col) / float64(width-1)
	}

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Airmass", "[2] Target", "[3] Sky", "[4] Polar"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render("ERROR: " + m.err.Error())
	case m.plan == nil:
		status = dimStyle.Render("No plan")
	case m.live.LastError != nil:
		status = errorStyle.Render("LIVE: " + m.live.LastError.Error())
	default:
		status = accentStyle.Render(fmt.Sprintf("%d targets", len(m.plan.Targets)))
		if n := len(m.plan.Skipped); n > 0 {
			status += dimStyle.Render(fmt.Sprintf(", %d skipped", n))
		}
		if n := len(m.live.Events); n > 0 {
			status += dimStyle.Render(" · ") + accentStyle.Render(describeEvent(m.live.Events[n-1]))
		}
	}

	var help string
	switch m.viewMode {
	case ViewDetail:
		help = dimStyle.Render("←/→: target | tab: switch view | q: quit")
	case ViewSky:
		help = dimStyle.Render("←/→: hour | j/k: focus | l: labels | tab: switch view")
	case ViewPolar:
		help = dimStyle.Render("tab: switch view | q: quit")
	default:
		help = dimStyle.Render("↑↓: navigate | enter: details | r: rescan | tab: switch view | q: quit")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// describeEvent renders a live event for the status line.
func describeEvent(e state.Event) string {
	at := e.Timestamp.UTC().Format("15:04")
	switch e.Type {
	case state.EventRise:
		return fmt.Sprintf("%s rose %s", e.Target, at)
	case state.EventSet:
		return fmt.Sprintf("%s set %s", e.Target, at)
	default:
		return fmt.Sprintf("%s %s→%s %s", e.Target, e.OldTier, e.NewTier, at)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

