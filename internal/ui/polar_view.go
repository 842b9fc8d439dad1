package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrotool/internal/plan"
)

// reticleRadius is the dial radius in rows; columns are doubled to keep
// the circle round in a terminal cell grid.
const reticleRadius = 7

// PolarViewModel draws a polar-scope reticle with the pole star on it.
type PolarViewModel struct {
	width   int
	height  int
	reticle *plan.Reticle
}

// NewPolarViewModel creates a new polar view.
func NewPolarViewModel() PolarViewModel {
	return PolarViewModel{}
}

// SetSize updates the viewport size.
func (m PolarViewModel) SetSize(width, height int) PolarViewModel {
	m.width = width
	m.height = height
	return m
}

// SetReticle sets the pole star placement, nil when unknown.
func (m PolarViewModel) SetReticle(r *plan.Reticle) PolarViewModel {
	m.reticle = r
	return m
}

// Update handles messages.
func (m PolarViewModel) Update(msg tea.Msg) (PolarViewModel, tea.Cmd) {
	return m, nil
}

// View renders the reticle.
func (m PolarViewModel) View() string {
	if m.reticle == nil {
		return mutedStyle.Render("No pole star available")
	}
	r := m.reticle

	var b strings.Builder
	b.WriteString(titleStyle.Render("Polar Alignment"))
	b.WriteString("\n\n")
	b.WriteString(renderReticle(*r))
	b.WriteString("\n\n")

	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorTargetFocused))
	b.WriteString("  " + starStyle.Render(r.Star))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  at %.1f o'clock, %.1f′ from the pole, HA %s",
		r.Clock, r.Distance, r.HourAngle)))
	b.WriteString("\n")
	return b.String()
}

// renderReticle draws the dial with the star placed by its clock position.
// The star always sits on the ring; the dial is not to scale.
func renderReticle(r plan.Reticle) string {
	rows := 2*reticleRadius + 3
	cols := 4*reticleRadius + 5
	cx, cy := 2*reticleRadius+2, reticleRadius+1

	canvas := make([][]rune, rows)
	colors := make([][]lipgloss.Color, rows)
	for y := range canvas {
		canvas[y] = make([]rune, cols)
		colors[y] = make([]lipgloss.Color, cols)
		for x := range canvas[y] {
			canvas[y][x] = ' '
			colors[y][x] = "60"
		}
	}

	for deg := 0; deg < 360; deg += 3 {
		a := float64(deg) * math.Pi / 180
		x := cx + int(math.Round(2*reticleRadius*math.Sin(a)))
		y := cy - int(math.Round(reticleRadius*math.Cos(a)))
		canvas[y][x] = '·'
	}
	for x := cx - 2; x <= cx+2; x++ {
		canvas[cy][x] = '─'
	}
	canvas[cy][cx] = '┼'
	canvas[cy-1][cx] = '│'
	canvas[cy+1][cx] = '│'

	for hour, label := range map[int]string{0: "12", 3: "3", 6: "6", 9: "9"} {
		a := float64(hour) * math.Pi / 6
		x := cx + int(math.Round(2*(reticleRadius+1)*math.Sin(a)))
		y := cy - int(math.Round((reticleRadius+1)*math.Cos(a)))
		for i, ch := range label {
			if x+i >= 0 && x+i < cols {
				canvas[y][x+i] = ch
				colors[y][x+i] = "244"
			}
		}
	}

	a := r.Clock * math.Pi / 6
	sx := cx + int(math.Round(2*reticleRadius*math.Sin(a)))
	sy := cy - int(math.Round(reticleRadius*math.Cos(a)))
	canvas[sy][sx] = glyphTargetFocused
	colors[sy][sx] = colorTargetFocused

	var b strings.Builder
	for y := 0; y < rows; y++ {
		b.WriteString("  ")
		for x := 0; x < cols; x++ {
			b.WriteString(lipgloss.NewStyle().Foreground(colors[y][x]).Render(string(canvas[y][x])))
		}
		if y < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
