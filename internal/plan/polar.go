package plan

import (
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/site"
)

// Pole stars for the polar finder.
const (
	NorthPoleStar = "Polaris"
	SouthPoleStar = "Sigma Octantis"
)

// PoleStar returns the finder star for the observer's hemisphere.
func PoleStar(loc site.Location) string {
	if loc.LatitudeDeg() < 0 {
		return SouthPoleStar
	}
	return NorthPoleStar
}

// Reticle is the pole star's place in a polar-scope reticle. X and Y are in
// arcminutes from the pole with Y up; Clock is the position on a 12-hour
// dial with 0 at the top.
type Reticle struct {
	Star      string
	HourAngle angle.HMS
	Distance  float64
	X, Y      float64
	Clock     float64
}

// PolarScope places star in the reticle at local sidereal time lst. The
// coordinate should already be advanced to the date of observation.
func PolarScope(star coord.Equatorial, lst angle.HMS) Reticle {
	ha := star.HourAngle(lst)
	dist := (90 - math.Abs(star.Dec.Degrees())) * 60
	x := dist * math.Sin(ha.Radians())
	y := -dist * math.Cos(ha.Radians())
	clock := angle.Normalize360(angle.RadToDeg(math.Atan2(x, y))) / 30
	return Reticle{
		Star:      star.Name,
		HourAngle: ha,
		Distance:  dist,
		X:         x,
		Y:         y,
		Clock:     clock,
	}
}
