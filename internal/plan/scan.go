package plan

import (
	"context"
	"errors"
	"math"

	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/logging"
	"github.com/litescript/ls-astrotool/internal/site"
)

// Sample is one target position on the night's grid.
type Sample struct {
	UT       float64 // hours from midnight of the night's date
	LST      float64 // hours
	Altitude float64
	Azimuth  float64
	Airmass  float64 // coord.BelowHorizon when the target is down
}

// Visible reports whether the sample carries a real airmass.
func (s Sample) Visible() bool {
	return coord.ValidAirmass(s.Airmass)
}

// Target is a resolved object with its on-date coordinate and samples.
type Target struct {
	Coord   coord.Equatorial
	Samples []Sample
}

// Name returns the target name.
func (t Target) Name() string { return t.Coord.Name }

// Best returns the highest sample. The second result is false when the
// target never rises during the night.
func (t Target) Best() (Sample, bool) {
	best := -1
	for i, s := range t.Samples {
		if best < 0 || s.Altitude > t.Samples[best].Altitude {
			best = i
		}
	}
	if best < 0 || !t.Samples[best].Visible() {
		return Sample{}, false
	}
	return t.Samples[best], true
}

// VisibleHours returns the time the target spends above the horizon.
func (t Target) VisibleHours(step float64) float64 {
	n := 0
	for _, s := range t.Samples {
		if s.Visible() {
			n++
		}
	}
	return float64(n) * step
}

// SampleAt returns the sample closest to hour h.
func (t Target) SampleAt(h float64) (Sample, bool) {
	i := nearestSample(t.Samples, h)
	if i < 0 {
		return Sample{}, false
	}
	return t.Samples[i], true
}

// Plan is the result of scanning a night.
type Plan struct {
	Site    site.Location
	Night   Night
	Targets []Target
	Skipped []string
	Markers []Marker
}

type options struct {
	twilight float64
	log      *logging.Logger
}

// Option configures Scan.
type Option func(*options)

// WithTwilight sets the Sun altitude that bounds the night, in degrees.
func WithTwilight(h0 float64) Option {
	return func(o *options) { o.twilight = h0 }
}

// WithLogger sets the logger used for progress and skipped names.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// Scan resolves each name and samples its altitude and airmass across the
// night. Names the resolver cannot place are recorded in Skipped. Catalog
// positions at J2000 are advanced to the night's date before sampling.
func Scan(ctx context.Context, loc site.Location, names []string, resolver ephem.Provider, night Night, opts ...Option) (*Plan, error) {
	o := options{twilight: coord.AstronomicalTwilight, log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With("plan", "site", loc.Name)

	hours := night.Hours()
	mid := night.Mid()
	epoch := night.Date.DecimalYear()

	p := &Plan{Site: loc, Night: night}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		eq, err := resolver.Resolve(name, mid)
		if err != nil {
			if errors.Is(err, ephem.ErrUnknownBody) {
				log.Warn("unknown target", "name", name)
			} else {
				log.Warn("cannot resolve target", "name", name, "err", err)
			}
			p.Skipped = append(p.Skipped, name)
			continue
		}
		if eq.Catalog() {
			if eq, err = eq.OnDate(epoch); err != nil {
				return nil, err
			}
		}

		t := Target{Coord: eq, Samples: make([]Sample, 0, len(hours))}
		for _, h := range hours {
			lst := night.At(h).LST(loc.Longitude)
			hz := eq.ToHorizontal(lst, loc)
			t.Samples = append(t.Samples, Sample{
				UT:       h,
				LST:      lst.Hours(),
				Altitude: hz.Altitude.Degrees(),
				Azimuth:  hz.Azimuth.Degrees(),
				Airmass:  hz.Airmass(),
			})
		}
		p.Targets = append(p.Targets, t)
		log.Debug("sampled target", "name", eq.Name, "samples", len(t.Samples))
	}

	p.Markers = append(p.Markers, markers(resolver, loc, night, ephem.BodySun, o.twilight, log)...)
	p.Markers = append(p.Markers, markers(resolver, loc, night, ephem.BodyMoon, coord.Horizon, log)...)
	log.Info("scan complete", "targets", len(p.Targets), "skipped", len(p.Skipped))
	return p, nil
}

// Target returns the scanned target with the given name.
func (p *Plan) Target(name string) (Target, bool) {
	for _, t := range p.Targets {
		if t.Name() == name {
			return t, true
		}
	}
	return Target{}, false
}

// nearestSample returns the index of the sample closest to hour h.
func nearestSample(samples []Sample, h float64) int {
	best := -1
	for i, s := range samples {
		if best < 0 || math.Abs(s.UT-h) < math.Abs(samples[best].UT-h) {
			best = i
		}
	}
	return best
}
