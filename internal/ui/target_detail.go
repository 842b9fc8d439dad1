package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/plan"
	"github.com/litescript/ls-astrotool/internal/state"
)

// TargetDetailModel shows one target: position, best time and an
// altitude sparkline across the night.
type TargetDetailModel struct {
	width    int
	height   int
	selected int
	plan     *plan.Plan
	live     state.Snapshot
}

// NewTargetDetailModel creates a new detail view.
func NewTargetDetailModel() TargetDetailModel {
	return TargetDetailModel{}
}

// SetSize updates the viewport size.
func (m TargetDetailModel) SetSize(width, height int) TargetDetailModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the plan.
func (m TargetDetailModel) UpdateData(p *plan.Plan) TargetDetailModel {
	m.plan = p
	m.selected = clampIndex(m.selected, m.targetCount())
	return m
}

// SetSelected selects a target by index.
func (m TargetDetailModel) SetSelected(i int) TargetDetailModel {
	m.selected = clampIndex(i, m.targetCount())
	return m
}

// SetLive sets the latest live observation.
func (m TargetDetailModel) SetLive(s state.Snapshot) TargetDetailModel {
	m.live = s
	return m
}

// Selected returns the selected target index.
func (m TargetDetailModel) Selected() int {
	return m.selected
}

func (m TargetDetailModel) targetCount() int {
	if m.plan == nil {
		return 0
	}
	return len(m.plan.Targets)
}

// Update handles messages.
func (m TargetDetailModel) Update(msg tea.Msg) (TargetDetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := m.targetCount()
	if n == 0 {
		return m, nil
	}
	switch keyMsg.String() {
	case "right", "]", "j", "down":
		m.selected = (m.selected + 1) % n
	case "left", "[", "k", "up":
		m.selected = (m.selected - 1 + n) % n
	}
	return m, nil
}

// View renders the detail view.
func (m TargetDetailModel) View() string {
	if m.targetCount() == 0 {
		return mutedStyle.Render("No targets")
	}
	t := m.plan.Targets[m.selected]

	var b strings.Builder
	b.WriteString(m.renderSelector())
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	row := func(label, value string) {
		b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value) + "\n")
	}

	row("RA", t.Coord.RA.String())
	row("Dec", t.Coord.Dec.String())
	row("Epoch", fmt.Sprintf("%.2f", t.Coord.Epoch))
	if t.Coord.HasMagnitude() {
		row("Magnitude", fmt.Sprintf("%.2f", t.Coord.Magnitude))
	}

	if best, ok := t.Best(); ok {
		tier := coord.TierFor(best.Airmass)
		tierStyle := lipgloss.NewStyle().Foreground(tierColors[tier])
		row("Best", fmt.Sprintf("%s UT  alt %.1f°  az %.1f°  X=%.2f ",
			plan.FormatUT(best.UT), best.Altitude, best.Azimuth, best.Airmass)+tierStyle.Render(tier.String()))
		row("Up for", fmt.Sprintf("%.1fh", t.VisibleHours(m.plan.Night.Step)))
	} else {
		row("Best", "never above the horizon")
	}
	if now, ok := m.livePosition(t.Name()); ok {
		row("Now", m.describeNow(now))
	}

	b.WriteString("\n")
	b.WriteString("  " + renderAltitudeSparkline(t.Samples, SparklineWidth))
	b.WriteString("\n")
	b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-*s%s",
		SparklineWidth-5, plan.FormatUT(m.plan.Night.Start), plan.FormatUT(m.plan.Night.End))))
	b.WriteString("\n")
	return b.String()
}

func (m TargetDetailModel) livePosition(name string) (state.Position, bool) {
	if m.live.Data == nil {
		return state.Position{}, false
	}
	return m.live.Data.Position(name)
}

func (m TargetDetailModel) describeNow(p state.Position) string {
	s := fmt.Sprintf("alt %.1f°  az %.1f°", p.Altitude, p.Azimuth)
	if p.Up() {
		s += fmt.Sprintf("  X=%.2f", p.Airmass)
	} else {
		s += "  down"
	}
	switch rate := m.live.Rates[p.Target]; {
	case rate > 0:
		s += fmt.Sprintf("  rising %.1f°/h", rate)
	case rate < 0:
		s += fmt.Sprintf("  sinking %.1f°/h", -rate)
	}
	return s
}

func (m TargetDetailModel) renderSelector() string {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	t := m.plan.Targets[m.selected]
	return "  " + dimStyle.Render("◀ ") + activeStyle.Render(t.Name()) + dimStyle.Render(
		fmt.Sprintf(" ▶  (%d/%d)", m.selected+1, len(m.plan.Targets)))
}

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// altColorLow is the color for low altitude (dark blue).
var altColorLow = [3]uint8{0x1b, 0x2b, 0x4b}

// altColorMid is the color for mid altitude (blue).
var altColorMid = [3]uint8{0x34, 0x78, 0xc0}

// altColorHigh is the color for high altitude (cyan).
var altColorHigh = [3]uint8{0x8b, 0xe9, 0xff}

// renderAltitudeSparkline renders altitude samples as a sparkline. Cells
// below the horizon are drawn dim.
func renderAltitudeSparkline(samples []plan.Sample, width int) string {
	alts := resampleAltitude(samples, width)
	if len(alts) == 0 {
		return mutedStyle.Render("No samples")
	}

	var sb strings.Builder
	for _, alt := range alts {
		if alt < 0 {
			sb.WriteString(mutedStyle.Render(string(sparklineBlocks[0])))
			continue
		}
		if alt > 90 {
			alt = 90
		}

		// Normalize to 0-1 for color (0° = 0, 90° = 1)
		t := alt / 90.0

		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}

		r, g, b := interpolateAltColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}
	return sb.String()
}

// interpolateAltColor returns RGB color for altitude value t in [0, 1].
// Gradient: low (dark blue) → mid (blue) → high (cyan).
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	from, to, s := altColorLow, altColorMid, t*2
	if t >= 0.5 {
		from, to, s = altColorMid, altColorHigh, (t-0.5)*2
	}
	mix := func(i int) uint8 {
		return uint8(float64(from[i])*(1-s) + float64(to[i])*s)
	}
	return mix(0), mix(1), mix(2)
}

// resampleAltitude averages samples into a fixed number of buckets.
func resampleAltitude(samples []plan.Sample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx <= startIdx {
			endIdx = startIdx + 1
		}
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Altitude
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}
