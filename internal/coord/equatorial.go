// Package coord transforms between equatorial and horizontal coordinates
// and derives airmass, rise/set times and short-term precession.
package coord

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/site"
)

// J2000Epoch is the epoch catalog coordinates are published in.
const J2000Epoch = 2000.0

// Errors for coordinate operations.
var (
	ErrNeverRises    = errors.New("never rises above threshold")
	ErrAlwaysAbove   = errors.New("always above threshold")
	ErrEpochAdvanced = errors.New("coordinate already advanced from J2000")
)

// Equatorial is a right ascension and declination. Magnitude is NaN when
// unknown. Epoch is the year the position refers to. OfDate marks a
// position already referred to its own date, which OnDate never advances.
type Equatorial struct {
	Name      string
	Magnitude float64
	RA        angle.HMS
	Dec       angle.DMS
	Epoch     float64
	OfDate    bool
}

// NewEquatorial returns a J2000 coordinate.
func NewEquatorial(name string, ra angle.HMS, dec angle.DMS, magnitude float64) Equatorial {
	return Equatorial{Name: name, Magnitude: magnitude, RA: ra, Dec: dec, Epoch: J2000Epoch}
}

// Catalog reports whether the coordinate is a J2000 catalog position that
// OnDate can advance.
func (e Equatorial) Catalog() bool {
	return !e.OfDate && e.Epoch == J2000Epoch
}

// HasMagnitude reports whether the magnitude is known.
func (e Equatorial) HasMagnitude() bool {
	return !math.IsNaN(e.Magnitude)
}

// HourAngle returns LST − α.
func (e Equatorial) HourAngle(lst angle.HMS) angle.HMS {
	return angle.DegToHMS(lst.Degrees() - e.RA.Degrees())
}

// ToHorizontal projects the coordinate onto the local horizon at sidereal
// time lst.
func (e Equatorial) ToHorizontal(lst angle.HMS, loc site.Location) Horizontal {
	phi := loc.Latitude.Radians()
	ha := e.HourAngle(lst).Radians()
	dec := e.Dec.Radians()

	h := math.Asin(clamp(math.Cos(phi)*math.Cos(ha)*math.Cos(dec) + math.Sin(phi)*math.Sin(dec)))

	// sin A = −sin HA cos δ / cos h; the cosine term resolves the quadrant.
	sinA := -math.Sin(ha) * math.Cos(dec)
	cosA := math.Cos(phi)*math.Sin(dec) - math.Sin(phi)*math.Cos(dec)*math.Cos(ha)
	az := angle.Normalize360(angle.RadToDeg(math.Atan2(sinA, cosA)))

	return Horizontal{
		Name:      e.Name,
		Magnitude: e.Magnitude,
		Azimuth:   angle.DegToDMS(az),
		Altitude:  angle.DegToDMS(angle.RadToDeg(h)),
	}
}

// Altitude returns the altitude in degrees at sidereal time lst.
func (e Equatorial) Altitude(lst angle.HMS, loc site.Location) float64 {
	return e.ToHorizontal(lst, loc).Altitude.Degrees()
}

// Airmass returns the airmass at sidereal time lst, or BelowHorizon.
func (e Equatorial) Airmass(lst angle.HMS, loc site.Location) float64 {
	return Airmass(e.Altitude(lst, loc))
}

// OnDate applies short-term precession from J2000 to year and returns the
// advanced coordinate tagged with that epoch. Only J2000 coordinates can be
// advanced.
func (e Equatorial) OnDate(year float64) (Equatorial, error) {
	if !e.Catalog() {
		return Equatorial{}, fmt.Errorf("%s at epoch %.2f: %w", e.Name, e.Epoch, ErrEpochAdvanced)
	}

	t := (year - J2000Epoch) / 100
	m := angle.DegToRad(1.2812323*t + 0.0003879*t*t + 0.0000101*t*t*t)
	n := angle.DegToRad(0.5567530*t - 0.0001185*t*t + 0.0000116*t*t*t)

	ra := e.RA.Radians()
	dec := e.Dec.Radians()
	dRA := m + n*math.Sin(ra)*math.Tan(dec)
	dDec := n * math.Cos(ra)

	out := e
	out.RA = angle.RadToHMS(ra + dRA)
	out.Dec = angle.RadToDMS(dec + dDec)
	out.Epoch = year
	out.OfDate = true
	return out, nil
}

// Separation returns the great-circle distance to other in degrees.
func (e Equatorial) Separation(other Equatorial) float64 {
	ra1, dec1 := e.RA.Radians(), e.Dec.Radians()
	ra2, dec2 := other.RA.Radians(), other.Dec.Radians()

	dRA := ra2 - ra1
	dDec := dec2 - dec1
	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1)*math.Cos(dec2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}
	return angle.RadToDeg(2 * math.Asin(math.Sqrt(a)))
}

func (e Equatorial) String() string {
	name := e.Name
	if name == "" {
		name = "unnamed"
	}
	if e.HasMagnitude() {
		return fmt.Sprintf("%s α=%s δ=%s V=%.2f", name, e.RA, e.Dec, e.Magnitude)
	}
	return fmt.Sprintf("%s α=%s δ=%s", name, e.RA, e.Dec)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
