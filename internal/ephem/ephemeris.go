// Package ephem computes geocentric positions of the Sun, Moon and planets
// from Keplerian orbital elements.
package ephem

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/coord"
)

var (
	// ErrUnknownBody is matched by every UnknownBodyError.
	ErrUnknownBody = errors.New("unknown body")
	// ErrObserverBody is returned when asked for the position of the Earth.
	ErrObserverBody = errors.New("body is the observer")
)

// UnknownBodyError names a body no table or catalog knows.
type UnknownBodyError struct {
	Name string
}

func (e *UnknownBodyError) Error() string {
	return fmt.Sprintf("unknown body %q", e.Name)
}

// Is reports whether target is ErrUnknownBody.
func (e *UnknownBodyError) Is(target error) bool {
	return target == ErrUnknownBody
}

// magnitudes holds static apparent visual magnitudes.
var magnitudes = map[string]float64{
	"sun":     -26.83,
	"mercury": 0.23,
	"venus":   -4.14,
	"moon":    -12.90,
	"mars":    0.71,
	"jupiter": -2.20,
	"saturn":  0.46,
	"uranus":  6.03,
	"neptune": 7.78,
	"pluto":   14.4,
}

// Ephemeris answers position queries against an element table. Every call
// solves afresh; nothing is cached between instants.
type Ephemeris struct {
	table *Table
}

// New returns an Ephemeris over table, or the built-in table when nil.
func New(table *Table) *Ephemeris {
	if table == nil {
		table = DefaultTable()
	}
	return &Ephemeris{table: table}
}

// Name implements Provider.
func (e *Ephemeris) Name() string { return "ephemeris" }

// Bodies lists every body a position can be computed for.
func (e *Ephemeris) Bodies() []string {
	var out []string
	for _, n := range e.table.Names() {
		if normalizeName(n) == normalizeName(BodyEarth) {
			continue
		}
		out = append(out, n)
	}
	out = append(out, BodySun)
	sort.Strings(out)
	return out
}

// Magnitude returns the static apparent magnitude of body. Bodies present
// in the table but without a known magnitude report NaN.
func (e *Ephemeris) Magnitude(body string) (float64, error) {
	key := normalizeName(body)
	if m, ok := magnitudes[key]; ok {
		return m, nil
	}
	if _, err := e.table.Lookup(body); err != nil {
		return 0, err
	}
	return math.NaN(), nil
}

// Heliocentric returns the heliocentric ecliptic position of a body in km.
// Geocentric element sets are returned as stored.
func (e *Ephemeris) Heliocentric(body string, at astrotime.Instant) (Vec3, error) {
	if normalizeName(body) == normalizeName(BodySun) {
		return Vec3{}, nil
	}
	set, err := e.table.Lookup(body)
	if err != nil {
		return Vec3{}, err
	}
	orb, err := set.At(at.Centuries())
	if err != nil {
		return Vec3{}, err
	}
	return orb.Ecliptic(), nil
}

// Geocentric returns the geocentric ecliptic position of a body in km.
func (e *Ephemeris) Geocentric(body string, at astrotime.Instant) (Vec3, error) {
	key := normalizeName(body)
	if key == normalizeName(BodyEarth) {
		return Vec3{}, fmt.Errorf("%s: %w", body, ErrObserverBody)
	}

	earth, err := e.Heliocentric(BodyEarth, at)
	if err != nil {
		return Vec3{}, err
	}
	if key == normalizeName(BodySun) {
		return earth.Neg(), nil
	}

	set, err := e.table.Lookup(body)
	if err != nil {
		return Vec3{}, err
	}
	orb, err := set.At(at.Centuries())
	if err != nil {
		return Vec3{}, err
	}
	if set.Geocentric {
		return orb.Ecliptic(), nil
	}
	return orb.Ecliptic().Sub(earth), nil
}

// Position returns the apparent equatorial coordinate of body at the
// instant, carrying its magnitude. The result is marked OfDate with the
// instant's Julian epoch.
func (e *Ephemeris) Position(body string, at astrotime.Instant) (coord.Equatorial, error) {
	geo, err := e.Geocentric(body, at)
	if err != nil {
		return coord.Equatorial{}, err
	}
	mag, err := e.Magnitude(body)
	if err != nil {
		return coord.Equatorial{}, err
	}

	ra, dec := RADec(EclipticToEquatorial(geo, at.Centuries()))
	return coord.Equatorial{
		Name:      e.canonical(body),
		Magnitude: mag,
		RA:        angle.DegToHMS(ra),
		Dec:       angle.DegToDMS(dec),
		Epoch:     JulianEpoch(at),
		OfDate:    true,
	}, nil
}

// JulianEpoch returns the Julian epoch of the instant, 2000.0 at J2000.
func JulianEpoch(at astrotime.Instant) float64 {
	return coord.J2000Epoch + (at.JulianDay()-astrotime.J2000)/365.25
}

// Distance returns the geocentric distance of body in AU.
func (e *Ephemeris) Distance(body string, at astrotime.Instant) (float64, error) {
	geo, err := e.Geocentric(body, at)
	if err != nil {
		return 0, err
	}
	return geo.Norm() / AU, nil
}

// Resolve implements Provider.
func (e *Ephemeris) Resolve(name string, at astrotime.Instant) (coord.Equatorial, error) {
	return e.Position(name, at)
}

func (e *Ephemeris) canonical(body string) string {
	if normalizeName(body) == normalizeName(BodySun) {
		return BodySun
	}
	if set, err := e.table.Lookup(body); err == nil {
		return set.Name
	}
	return body
}
