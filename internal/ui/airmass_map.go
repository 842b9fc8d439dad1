package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/plan"
)

// Styles for the airmass map
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

// tierColors maps airmass tiers to cell colors.
var tierColors = map[coord.AirmassTier]lipgloss.Color{
	coord.AirmassExcellent: "46",  // green
	coord.AirmassGood:      "154", // yellow-green
	coord.AirmassFair:      "226", // yellow
	coord.AirmassPoor:      "196", // red
	coord.AirmassNone:      "238",
}

const (
	nameWidth = 16
	cellWidth = 5
)

// AirmassMapModel shows one row per target and one cell per hour,
// coloured by airmass tier.
type AirmassMapModel struct {
	width  int
	height int
	cursor int
	offset int // first visible column
	now    float64
	plan   *plan.Plan
}

// NewAirmassMapModel creates a new airmass map.
func NewAirmassMapModel() AirmassMapModel {
	return AirmassMapModel{now: -1}
}

// SetSize updates the viewport size.
func (m AirmassMapModel) SetSize(width, height int) AirmassMapModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the plan.
func (m AirmassMapModel) UpdateData(p *plan.Plan) AirmassMapModel {
	m.plan = p
	m.cursor = clampIndex(m.cursor, m.targetCount())
	m.offset = 0
	return m
}

// SetNow sets the current hour on the night axis, or -1 when outside it.
func (m AirmassMapModel) SetNow(h float64) AirmassMapModel {
	m.now = h
	return m
}

// SetCursor selects a target row.
func (m AirmassMapModel) SetCursor(i int) AirmassMapModel {
	m.cursor = clampIndex(i, m.targetCount())
	return m
}

// Cursor returns the selected row.
func (m AirmassMapModel) Cursor() int {
	return m.cursor
}

func (m AirmassMapModel) targetCount() int {
	if m.plan == nil {
		return 0
	}
	return len(m.plan.Targets)
}

// Update handles messages.
func (m AirmassMapModel) Update(msg tea.Msg) (AirmassMapModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := m.targetCount()
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		if n > 0 {
			m.cursor = n - 1
		}
	case "left", "h":
		if m.offset > 0 {
			m.offset--
		}
	case "right", "l":
		if m.offset < len(m.hours())-m.visibleColumns() {
			m.offset++
		}
	case "enter":
		if n > 0 {
			idx := m.cursor
			return m, func() tea.Msg { return OpenTargetMsg{Index: idx} }
		}
	}
	return m, nil
}

func (m AirmassMapModel) hours() []float64 {
	if m.plan == nil {
		return nil
	}
	return m.plan.Night.WholeHours()
}

// visibleColumns returns how many hour cells fit the width.
func (m AirmassMapModel) visibleColumns() int {
	total := len(m.hours())
	if m.width <= 0 {
		return total
	}
	cols := (m.width - nameWidth - 4) / (cellWidth + 1)
	if cols < 1 {
		cols = 1
	}
	if cols > total {
		cols = total
	}
	return cols
}

// View renders the airmass map.
func (m AirmassMapModel) View() string {
	var b strings.Builder

	if m.plan == nil {
		b.WriteString("No plan\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Airmass"))
	b.WriteString("\n")

	if len(m.plan.Targets) == 0 {
		b.WriteString(mutedStyle.Render("  No targets"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderGrid())
	}

	b.WriteString("\n")
	b.WriteString(renderMarkers(m.plan.Markers))
	b.WriteString(m.renderLegend())
	if len(m.plan.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  Skipped: " + strings.Join(m.plan.Skipped, ", ")))
	}
	return b.String()
}

func (m AirmassMapModel) renderGrid() string {
	var b strings.Builder

	hours := m.hours()
	cols := m.visibleColumns()
	start := clampIndex(m.offset, len(hours)-cols+1)
	hours = hours[start : start+cols]

	header := fmt.Sprintf("  %-*s", nameWidth, "Target")
	for _, h := range hours {
		label := plan.FormatUT(h)[:2]
		if m.nowIn(h) {
			label = ">" + label
		}
		header += fmt.Sprintf(" %*s", cellWidth, label)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	rows := m.plan.Targets
	first, last := m.visibleRows(len(rows))
	for i := first; i < last; i++ {
		t := rows[i]
		name := fmt.Sprintf("%-*s", nameWidth, truncate(t.Name(), nameWidth))
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("▸ " + name))
		} else {
			b.WriteString(rowStyle.Render("  " + name))
		}
		for _, h := range hours {
			b.WriteString(" ")
			b.WriteString(renderCell(t, h))
		}
		b.WriteString("\n")
	}
	if first > 0 || last < len(rows) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d-%d of %d", first+1, last, len(rows))))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRows returns the window of rows that keeps the cursor in view.
func (m AirmassMapModel) visibleRows(n int) (int, int) {
	avail := m.height - 8
	if m.height <= 0 || avail >= n {
		return 0, n
	}
	if avail < 1 {
		avail = 1
	}
	first := 0
	if m.cursor >= avail {
		first = m.cursor - avail + 1
	}
	return first, first + avail
}

func (m AirmassMapModel) nowIn(h float64) bool {
	return m.now >= 0 && m.now >= h && m.now < h+1
}

// renderCell renders the airmass of t at hour h.
func renderCell(t plan.Target, h float64) string {
	s, ok := t.SampleAt(h)
	if !ok {
		return strings.Repeat(" ", cellWidth)
	}
	tier := coord.TierFor(s.Airmass)
	style := lipgloss.NewStyle().Foreground(tierColors[tier])
	if tier == coord.AirmassNone {
		return style.Render(strings.Repeat(" ", cellWidth-1) + "·")
	}
	return style.Render(fmt.Sprintf("%*.2f", cellWidth, math.Min(s.Airmass, 99.99)))
}

// renderMarkers lists the Sun and Moon events.
func renderMarkers(markers []plan.Marker) string {
	if len(markers) == 0 {
		return ""
	}
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	moonStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("153"))

	var parts []string
	for _, mk := range markers {
		style := moonStyle
		if mk.Body == ephem.BodySun {
			style = sunStyle
		}
		var text string
		switch mk.Event {
		case plan.EventRise:
			text = fmt.Sprintf("%s ▲ %s", mk.Body, plan.FormatUT(mk.UT))
		case plan.EventSet:
			text = fmt.Sprintf("%s ▼ %s", mk.Body, plan.FormatUT(mk.UT))
		default:
			text = fmt.Sprintf("%s %s", mk.Body, mk.Event)
		}
		parts = append(parts, style.Render(text))
	}
	return "  " + strings.Join(parts, mutedStyle.Render("  ·  ")) + "\n"
}

func (m AirmassMapModel) renderLegend() string {
	tiers := []coord.AirmassTier{coord.AirmassExcellent, coord.AirmassGood, coord.AirmassFair, coord.AirmassPoor, coord.AirmassNone}
	var parts []string
	for _, t := range tiers {
		style := lipgloss.NewStyle().Foreground(tierColors[t])
		parts = append(parts, style.Render("■ "+t.String()))
	}
	return "  " + strings.Join(parts, " ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}

// clampIndex keeps i within [0, n).
func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
