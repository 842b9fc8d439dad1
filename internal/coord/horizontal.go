package coord

import (
	"fmt"
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/site"
)

// Horizontal is an azimuth, measured from North through East in [0°,360°),
// and a signed altitude.
type Horizontal struct {
	Name      string
	Magnitude float64
	Azimuth   angle.DMS
	Altitude  angle.DMS
}

// NewHorizontal builds a horizontal coordinate, wrapping the azimuth.
func NewHorizontal(name string, az, alt angle.DMS, magnitude float64) Horizontal {
	return Horizontal{
		Name:      name,
		Magnitude: magnitude,
		Azimuth:   angle.DegToDMS(angle.Normalize360(az.Degrees())),
		Altitude:  alt,
	}
}

// Airmass returns the airmass at this altitude, or BelowHorizon.
func (h Horizontal) Airmass() float64 {
	return Airmass(h.Altitude.Degrees())
}

// ToEquatorial returns the equatorial coordinate seen at this position at
// sidereal time lst. The result is a position of date with a zero Epoch,
// and OnDate refuses it.
func (h Horizontal) ToEquatorial(lst angle.HMS, loc site.Location) Equatorial {
	phi := loc.Latitude.Radians()
	alt := h.Altitude.Radians()
	az := h.Azimuth.Radians()

	dec := math.Asin(clamp(math.Sin(phi)*math.Sin(alt) + math.Cos(phi)*math.Cos(alt)*math.Cos(az)))

	// sin HA = −cos h sin A / cos δ; the cosine term resolves the quadrant.
	sinHA := -math.Cos(alt) * math.Sin(az)
	cosHA := math.Cos(phi)*math.Sin(alt) - math.Sin(phi)*math.Cos(alt)*math.Cos(az)
	ha := angle.RadToDeg(math.Atan2(sinHA, cosHA))

	return Equatorial{
		Name:      h.Name,
		Magnitude: h.Magnitude,
		RA:        angle.DegToHMS(lst.Degrees() - ha),
		Dec:       angle.DegToDMS(angle.RadToDeg(dec)),
		OfDate:    true,
	}
}

func (h Horizontal) String() string {
	return fmt.Sprintf("%s az=%s alt=%s", h.Name, h.Azimuth, h.Altitude)
}
