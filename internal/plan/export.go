package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
)

// Snapshot is the JSON-serializable representation of a plan.
type Snapshot struct {
	Site    SiteExport     `json:"site"`
	Date    string         `json:"date"`
	Start   float64        `json:"start_ut"`
	End     float64        `json:"end_ut"`
	Step    float64        `json:"step_hours"`
	Targets []TargetExport `json:"targets"`
	Skipped []string       `json:"skipped,omitempty"`
	Markers []MarkerExport `json:"markers,omitempty"`
}

// SiteExport is a JSON-friendly site representation.
type SiteExport struct {
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation,omitempty"`
}

// TargetExport is a JSON-friendly target with its samples.
type TargetExport struct {
	Name      string         `json:"name"`
	Magnitude *float64       `json:"magnitude"`
	RA        string         `json:"ra"`
	Dec       string         `json:"dec"`
	Epoch     float64        `json:"epoch"`
	Samples   []SampleExport `json:"samples"`
}

// SampleExport is one grid point. Airmass is omitted below the horizon.
type SampleExport struct {
	UT       float64  `json:"ut"`
	LST      float64  `json:"lst"`
	Altitude float64  `json:"altitude"`
	Azimuth  float64  `json:"azimuth"`
	Airmass  *float64 `json:"airmass,omitempty"`
}

// MarkerExport is a JSON-friendly marker.
type MarkerExport struct {
	Body      string   `json:"body"`
	Event     string   `json:"event"`
	Threshold float64  `json:"threshold"`
	UT        *float64 `json:"ut,omitempty"`
}

// Snapshot converts a plan to its exportable form.
func (p *Plan) Snapshot() *Snapshot {
	out := &Snapshot{
		Site: SiteExport{
			Name:      p.Site.Name,
			Latitude:  p.Site.LatitudeDeg(),
			Longitude: p.Site.LongitudeDeg(),
			Elevation: optional(p.Site.Elevation),
		},
		Date:    p.Night.Label(),
		Start:   p.Night.Start,
		End:     p.Night.End,
		Step:    p.Night.Step,
		Targets: make([]TargetExport, 0, len(p.Targets)),
		Skipped: p.Skipped,
	}
	for _, t := range p.Targets {
		te := TargetExport{
			Name:      t.Name(),
			Magnitude: optional(t.Coord.Magnitude),
			RA:        t.Coord.RA.String(),
			Dec:       t.Coord.Dec.String(),
			Epoch:     t.Coord.Epoch,
			Samples:   make([]SampleExport, 0, len(t.Samples)),
		}
		for _, s := range t.Samples {
			se := SampleExport{UT: s.UT, LST: s.LST, Altitude: s.Altitude, Azimuth: s.Azimuth}
			if s.Visible() {
				se.Airmass = optional(s.Airmass)
			}
			te.Samples = append(te.Samples, se)
		}
		out.Targets = append(out.Targets, te)
	}
	for _, m := range p.Markers {
		me := MarkerExport{Body: m.Body, Event: string(m.Event), Threshold: m.Threshold}
		if m.Event == EventRise || m.Event == EventSet {
			me.UT = optional(m.UT)
		}
		out.Markers = append(out.Markers, me)
	}
	return out
}

// WriteJSON writes the plan as JSON to the given writer.
func (p *Plan) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p.Snapshot())
}

// WriteTable writes an airmass table with one column per whole hour.
func (p *Plan) WriteTable(w io.Writer) {
	hours := p.Night.WholeHours()
	width := 22 + 6*len(hours)

	fmt.Fprintf(w, "Airmass %s UT @ %s\n", p.Night.Label(), p.Site.Name)
	fmt.Fprintln(w, strings.Repeat("─", width))

	if len(p.Targets) == 0 {
		fmt.Fprintln(w, "No targets")
	} else {
		fmt.Fprintf(w, "%-16s %5s", "Target", "V")
		for _, h := range hours {
			fmt.Fprintf(w, " %5s", FormatUT(h)[:2])
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("─", width))

		for _, t := range p.Targets {
			mag := "  -  "
			if t.Coord.HasMagnitude() {
				mag = fmt.Sprintf("%5.2f", t.Coord.Magnitude)
			}
			fmt.Fprintf(w, "%-16s %5s", truncateStr(t.Name(), 16), mag)
			for _, h := range hours {
				if s, ok := t.SampleAt(h); ok && s.Visible() {
					fmt.Fprintf(w, " %5.2f", s.Airmass)
				} else {
					fmt.Fprintf(w, " %5s", "-")
				}
			}
			fmt.Fprintln(w)
		}
	}

	if len(p.Markers) > 0 {
		fmt.Fprintln(w)
		for _, m := range p.Markers {
			switch m.Event {
			case EventRise, EventSet:
				fmt.Fprintf(w, "%-5s %-5s %6.1f°  %s\n", m.Body, m.Event, m.Threshold, FormatUT(m.UT))
			default:
				fmt.Fprintf(w, "%-5s %s %.1f°\n", m.Body, m.Event, m.Threshold)
			}
		}
	}
	if len(p.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped: %s\n", strings.Join(p.Skipped, ", "))
	}
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
