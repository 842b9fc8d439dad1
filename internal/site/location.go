// Package site describes observer locations and the stores that keep named
// observing sites.
package site

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
)

// Sea-level standard atmosphere.
const (
	SeaLevelPressure = 1013.25 // hPa
	pressureLapse    = 2.25577e-5
	pressureExponent = 5.25588
)

// Errors for locations and site stores.
var (
	ErrUnknownElevation = errors.New("elevation unknown")
	ErrSiteNotFound     = errors.New("site not found")
	ErrInvalidSite      = errors.New("invalid site")
)

// Location is an observer position on the Earth. Longitude is east-positive.
// Elevation is in metres and NaN when unknown.
type Location struct {
	Name      string
	Latitude  angle.DMS
	Longitude angle.DMS
	Elevation float64
}

// New builds a location.
func New(name string, lat, lon angle.DMS, elevation float64) Location {
	return Location{Name: name, Latitude: lat, Longitude: lon, Elevation: elevation}
}

// Parse builds a location from latitude and longitude strings in any form
// accepted by angle.ParseDMS.
func Parse(name, lat, lon string, elevation float64) (Location, error) {
	la, err := angle.ParseDMS(lat)
	if err != nil {
		return Location{}, fmt.Errorf("latitude: %w", err)
	}
	lo, err := angle.ParseDMS(lon)
	if err != nil {
		return Location{}, fmt.Errorf("longitude: %w", err)
	}
	loc := New(name, la, lo, elevation)
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks the coordinate ranges.
func (l Location) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSite)
	}
	if lat := l.Latitude.Degrees(); lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %.4f out of range", ErrInvalidSite, lat)
	}
	if lon := l.Longitude.Degrees(); lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %.4f out of range", ErrInvalidSite, lon)
	}
	return nil
}

// LatitudeDeg returns the latitude in decimal degrees.
func (l Location) LatitudeDeg() float64 { return l.Latitude.Degrees() }

// LongitudeDeg returns the east-positive longitude in decimal degrees.
func (l Location) LongitudeDeg() float64 { return l.Longitude.Degrees() }

// HasElevation reports whether the elevation is known.
func (l Location) HasElevation() bool {
	return !math.IsNaN(l.Elevation)
}

// Pressure returns the standard-atmosphere pressure in hPa at the site's
// elevation.
func (l Location) Pressure() (float64, error) {
	if !l.HasElevation() {
		return 0, fmt.Errorf("%s: %w", l.Name, ErrUnknownElevation)
	}
	return SeaLevelPressure * math.Pow(1-pressureLapse*l.Elevation, pressureExponent), nil
}

// StandardPressureLevels are the isobaric levels weather models publish, in hPa.
var StandardPressureLevels = []float64{1000, 975, 950, 925, 900, 850, 800, 700, 600, 500, 400, 300, 250, 200, 150, 100}

// NearestPressureLevel returns the level in levels closest to the site's
// pressure. An empty levels slice uses StandardPressureLevels.
func (l Location) NearestPressureLevel(levels []float64) (float64, error) {
	p, err := l.Pressure()
	if err != nil {
		return 0, err
	}
	if len(levels) == 0 {
		levels = StandardPressureLevels
	}
	best := levels[0]
	for _, lv := range levels[1:] {
		if math.Abs(lv-p) < math.Abs(best-p) {
			best = lv
		}
	}
	return best, nil
}

func (l Location) String() string {
	elev := "unknown"
	if l.HasElevation() {
		elev = fmt.Sprintf("%.0f m", l.Elevation)
	}
	return fmt.Sprintf("%s (%s, %s, %s)", l.Name, l.Latitude, l.Longitude, elev)
}
