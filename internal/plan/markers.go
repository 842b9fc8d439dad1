package plan

import (
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/logging"
	"github.com/litescript/ls-astrotool/internal/site"
)

// Event is what happens at a marker.
type Event string

const (
	EventRise        Event = "rise"
	EventSet         Event = "set"
	EventAlwaysAbove Event = "always-above"
	EventNeverRises  Event = "never-rises"
)

// Marker is a Sun or Moon crossing of its threshold altitude. UT is on the
// night's hour axis and is zero for the circumpolar events.
type Marker struct {
	Body      string
	Event     Event
	Threshold float64
	UT        float64
}

// markers computes the crossings of body through h0 that fall inside the
// night. Bodies the resolver does not know yield no markers.
func markers(resolver ephem.Provider, loc site.Location, night Night, body string, h0 float64, log *logging.Logger) []Marker {
	eq, err := resolver.Resolve(body, night.Mid())
	if err != nil {
		log.Debug("no markers", "body", body, "err", err)
		return nil
	}

	var out []Marker
	for _, date := range []Night{night, {Date: night.Date.AddHours(24), Start: night.Start - 24, End: night.End - 24}} {
		w := eq.Window(loc, date.Date, h0)
		switch {
		case w.AlwaysAbove:
			return []Marker{{Body: body, Event: EventAlwaysAbove, Threshold: h0}}
		case w.NeverRises:
			return []Marker{{Body: body, Event: EventNeverRises, Threshold: h0}}
		}
		for _, c := range []struct {
			event Event
			t     float64
		}{
			{EventSet, w.Set.Hours()},
			{EventRise, w.Rise.Hours()},
		} {
			if !date.Contains(c.t) {
				continue
			}
			ut := c.t + (night.Start - date.Start)
			if !containsMarker(out, c.event, ut) {
				out = append(out, Marker{Body: body, Event: c.event, Threshold: h0, UT: ut})
			}
		}
	}
	return out
}

func containsMarker(ms []Marker, event Event, ut float64) bool {
	for _, m := range ms {
		if m.Event == event && m.UT > ut-0.5 && m.UT < ut+0.5 {
			return true
		}
	}
	return false
}
