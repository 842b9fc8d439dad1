package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrotool/internal/catalog"
	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/plan"
)

const (
	// Horizontal field of view in degrees; the view spans 0° to 90° altitude.
	fovAz = 180.0

	starLimit = 4.0

	glyphTarget        = '✦'
	glyphTargetFocused = '◆'

	colorTarget        = "#d0c8ff"
	colorTargetFocused = "229" // bright gold

	glyphStarBright = '✶' // mag < 1.5
	glyphStarMedium = '✸' // mag 1.5-3.0
	glyphStarDim    = '·' // fainter

	colorStarBright = "255"
	colorStarMedium = "250"
	colorStarDim    = "244"
)

// LabelMode controls how target labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only focused target
	LabelAll                      // All targets
)

// SkyViewModel renders a horizon panorama of the targets at one grid hour.
type SkyViewModel struct {
	width  int
	height int

	plan    *plan.Plan
	stars   []coord.Equatorial
	hourIdx int
	focus   int

	labelMode LabelMode
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{labelMode: LabelFocused}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// SetStars sets the background stars. Only stars brighter than magnitude
// 4 are drawn.
func (m SkyViewModel) SetStars(c *catalog.Catalog) SkyViewModel {
	m.stars = nil
	if c != nil {
		m.stars = c.Brighter(starLimit)
	}
	return m
}

// UpdateData replaces the plan and moves to the middle of the night.
func (m SkyViewModel) UpdateData(p *plan.Plan) SkyViewModel {
	m.plan = p
	m.focus = clampIndex(m.focus, m.targetCount())
	if p != nil {
		m.hourIdx = len(p.Night.Hours()) / 2
	}
	return m
}

// SetFocus focuses a target by index.
func (m SkyViewModel) SetFocus(i int) SkyViewModel {
	m.focus = clampIndex(i, m.targetCount())
	return m
}

// Focus returns the focused target index.
func (m SkyViewModel) Focus() int {
	return m.focus
}

// Hour returns the displayed hour on the night axis.
func (m SkyViewModel) Hour() float64 {
	if m.plan == nil {
		return 0
	}
	hours := m.plan.Night.Hours()
	if len(hours) == 0 {
		return m.plan.Night.Start
	}
	return hours[clampIndex(m.hourIdx, len(hours))]
}

func (m SkyViewModel) targetCount() int {
	if m.plan == nil {
		return 0
	}
	return len(m.plan.Targets)
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.plan == nil {
		return m, nil
	}
	n := m.targetCount()
	steps := len(m.plan.Night.Hours())

	switch keyMsg.String() {
	case "up", "k":
		if n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}
	case "down", "j":
		if n > 0 {
			m.focus = (m.focus + 1) % n
		}
	case "left", "[":
		if m.hourIdx > 0 {
			m.hourIdx--
		}
	case "right", "]":
		if m.hourIdx < steps-1 {
			m.hourIdx++
		}
	case "l":
		m.labelMode = (m.labelMode + 1) % 3
	}
	return m, nil
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	if m.plan == nil {
		return "No plan"
	}

	viewHeight := m.height - 3

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorTarget))

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = mutedStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	at := mutedStyle.Render(fmt.Sprintf("%s UT  Az:%.0f°", plan.FormatUT(m.Hour()), m.camAz()))
	return fmt.Sprintf("%s | %s | %s", titleStyle.Render("Sky View"), labelStr, at)
}

func (m SkyViewModel) renderStatus() string {
	if m.targetCount() == 0 {
		return "No targets"
	}
	t := m.plan.Targets[m.focus]
	s, ok := m.sample(t)
	if !ok {
		return ""
	}
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorTargetFocused))
	line := fmt.Sprintf(">>> %s | Az:%.0f° Alt:%.0f°", t.Name(), s.Azimuth, s.Altitude)
	if s.Visible() {
		line += fmt.Sprintf(" | X=%.2f", s.Airmass)
	} else {
		line += " | below horizon"
	}
	return accentStyle.Render(line)
}

// sample returns t's sample at the displayed hour.
func (m SkyViewModel) sample(t plan.Target) (plan.Sample, bool) {
	return t.SampleAt(m.Hour())
}

// camAz centres the view on the focused target, or due south.
func (m SkyViewModel) camAz() float64 {
	if m.targetCount() > 0 {
		if s, ok := m.sample(m.plan.Targets[m.focus]); ok {
			return s.Azimuth
		}
	}
	return 180
}

// targetPos tracks a target glyph for label rendering.
type targetPos struct {
	x, y      int
	name      string
	isFocused bool
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	horizonY := height - 1
	camAz := m.camAz()
	loc := m.plan.Site
	lst := m.plan.Night.At(m.Hour()).LST(loc.Longitude)
	epoch := m.plan.Night.Date.DecimalYear()

	for _, star := range m.stars {
		if on, err := star.OnDate(epoch); err == nil {
			star = on
		}
		hz := star.ToHorizontal(lst, loc)
		x, y, visible := projectToScreen(hz.Azimuth.Degrees(), hz.Altitude.Degrees(), camAz, width, horizonY)
		if !visible {
			continue
		}
		glyph, color := starGlyph(star.Magnitude)
		canvas[y][x] = glyph
		colors[y][x] = color
	}

	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = "60"
	}
	for _, c := range []struct {
		label string
		az    float64
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		if x, _, ok := projectToScreen(c.az, 0, camAz, width, horizonY); ok {
			canvas[horizonY][x] = rune(c.label[0])
			colors[horizonY][x] = "252"
		}
	}

	var positions []targetPos
	for i, t := range m.plan.Targets {
		s, ok := m.sample(t)
		if !ok || !s.Visible() {
			continue
		}
		x, y, visible := projectToScreen(s.Azimuth, s.Altitude, camAz, width, horizonY)
		if !visible {
			continue
		}
		isFocused := i == m.focus
		sym, color := glyphTarget, lipgloss.Color(colorTarget)
		if isFocused {
			sym, color = glyphTargetFocused, colorTargetFocused
		}
		canvas[y][x] = sym
		colors[y][x] = color
		positions = append(positions, targetPos{x: x, y: y, name: t.Name(), isFocused: isFocused})
	}
	m.renderLabels(canvas, colors, width, positions)

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderLabels writes target names to the right of their glyphs. The
// focused label is drawn last so it wins overlaps.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width int, positions []targetPos) {
	if m.labelMode == LabelNone {
		return
	}
	draw := func(p targetPos) {
		color := lipgloss.Color(colorTarget)
		if p.isFocused {
			color = colorTargetFocused
		}
		for i, r := range []rune(p.name) {
			x := p.x + 2 + i
			if x >= width {
				break
			}
			canvas[p.y][x] = r
			colors[p.y][x] = color
		}
	}
	for _, p := range positions {
		if !p.isFocused && m.labelMode == LabelAll {
			draw(p)
		}
	}
	for _, p := range positions {
		if p.isFocused {
			draw(p)
		}
	}
}

// starGlyph returns the glyph and color for a star of the given magnitude.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	default:
		return glyphStarDim, colorStarDim
	}
}

// projectToScreen maps az/alt to a cell above the horizon row.
func projectToScreen(az, alt, camAz float64, width, horizonY int) (int, int, bool) {
	dAz := normalizeAngle(az - camAz)
	if dAz < -fovAz/2 || dAz >= fovAz/2 || alt < 0 || alt > 90 {
		return 0, 0, false
	}
	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((90 - alt) / 90 * float64(horizonY))
	if x < 0 || x >= width || y < 0 || y > horizonY {
		return 0, 0, false
	}
	if y == horizonY && alt > 0 {
		y--
	}
	if y < 0 {
		return 0, 0, false
	}
	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}
