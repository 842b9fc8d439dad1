package coord

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/site"
)

// Altitude thresholds for rise and set, in degrees.
const (
	Horizon              = 0.0
	CivilTwilight        = -6.0
	NauticalTwilight     = -12.0
	AstronomicalTwilight = -18.0
)

// SiderealRate is the ratio of sidereal to solar time.
const SiderealRate = 1.002737909

// Window is a rise, transit and set cycle on one date. When AlwaysAbove or
// NeverRises is set, Rise and Set are zero and only Transit is meaningful.
type Window struct {
	Threshold   float64
	Rise        angle.HMS
	Transit     angle.HMS
	Set         angle.HMS
	MaxAltitude float64
	AlwaysAbove bool
	NeverRises  bool
}

// RiseTime returns the UT at which the object climbs through altitude h0
// (degrees) on the date of date.
func (e Equatorial) RiseTime(loc site.Location, date astrotime.Instant, h0 float64) (angle.HMS, error) {
	ha0, err := e.thresholdHourAngle(loc, h0)
	if err != nil {
		return angle.HMS{}, err
	}
	return e.crossing(loc, date, -ha0), nil
}

// SetTime returns the UT at which the object sinks through altitude h0.
func (e Equatorial) SetTime(loc site.Location, date astrotime.Instant, h0 float64) (angle.HMS, error) {
	ha0, err := e.thresholdHourAngle(loc, h0)
	if err != nil {
		return angle.HMS{}, err
	}
	return e.crossing(loc, date, ha0), nil
}

// TransitTime returns the UT of upper culmination.
func (e Equatorial) TransitTime(loc site.Location, date astrotime.Instant) angle.HMS {
	return e.crossing(loc, date, 0)
}

// MaxAltitude returns the altitude at upper culmination in degrees.
func (e Equatorial) MaxAltitude(loc site.Location) float64 {
	return 90 - math.Abs(loc.LatitudeDeg()-e.Dec.Degrees())
}

// Window computes the full cycle for threshold h0. Circumpolar and
// never-visible objects are flagged rather than reported as errors.
func (e Equatorial) Window(loc site.Location, date astrotime.Instant, h0 float64) Window {
	w := Window{
		Threshold:   h0,
		Transit:     e.TransitTime(loc, date),
		MaxAltitude: e.MaxAltitude(loc),
	}
	ha0, err := e.thresholdHourAngle(loc, h0)
	switch {
	case err == nil:
		w.Rise = e.crossing(loc, date, -ha0)
		w.Set = e.crossing(loc, date, ha0)
	case errors.Is(err, ErrAlwaysAbove):
		w.AlwaysAbove = true
	default:
		w.NeverRises = true
	}
	return w
}

// thresholdHourAngle solves for the hour angle, in degrees, at which the
// object sits at altitude h0.
func (e Equatorial) thresholdHourAngle(loc site.Location, h0 float64) (float64, error) {
	phi := loc.Latitude.Radians()
	dec := e.Dec.Radians()
	cosHA := (math.Sin(angle.DegToRad(h0)) - math.Sin(phi)*math.Sin(dec)) / (math.Cos(phi) * math.Cos(dec))
	switch {
	case cosHA > 1:
		return 0, fmt.Errorf("%s at %.1f°: %w", e.label(), h0, ErrNeverRises)
	case cosHA < -1:
		return 0, fmt.Errorf("%s at %.1f°: %w", e.label(), h0, ErrAlwaysAbove)
	case math.IsNaN(cosHA):
		return 0, fmt.Errorf("%s at %.1f°: %w", e.label(), h0, ErrAlwaysAbove)
	}
	return angle.RadToDeg(math.Acos(cosHA)), nil
}

// crossing converts an hour angle offset from transit into UT on the date.
func (e Equatorial) crossing(loc site.Location, date astrotime.Instant, ha float64) angle.HMS {
	theta0 := date.Midnight().GMST().Degrees()
	deg := (e.RA.Degrees() + ha + loc.LongitudeDeg() - theta0) / SiderealRate
	return angle.DegToHMS(deg)
}

func (e Equatorial) label() string {
	if e.Name == "" {
		return "object"
	}
	return e.Name
}
