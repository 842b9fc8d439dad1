package coord

import (
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
)

// BelowHorizon is what Airmass returns for an object under the horizon.
// It is a marker, not a measurement: real airmass peaks near 38.8 at 0°.
const BelowHorizon = 40.0

// Airmass returns the Pickering (2002) airmass for an altitude in degrees,
// or BelowHorizon when the altitude is negative.
func Airmass(altitude float64) float64 {
	if altitude < 0 || math.IsNaN(altitude) {
		return BelowHorizon
	}
	return 1 / math.Sin(angle.DegToRad(altitude+244/(165+47*math.Pow(altitude, 1.1))))
}

// ValidAirmass reports whether x is a real airmass rather than BelowHorizon.
func ValidAirmass(x float64) bool {
	return x != BelowHorizon
}

// AirmassTier buckets airmass for display.
type AirmassTier int

const (
	AirmassNone      AirmassTier = iota // below the horizon
	AirmassPoor                         // 2.0 and above
	AirmassFair                         // 1.5 to 2.0
	AirmassGood                         // 1.2 to 1.5
	AirmassExcellent                    // below 1.2
)

// TierFor returns the tier of an airmass value.
func TierFor(x float64) AirmassTier {
	switch {
	case !ValidAirmass(x):
		return AirmassNone
	case x < 1.2:
		return AirmassExcellent
	case x < 1.5:
		return AirmassGood
	case x < 2.0:
		return AirmassFair
	default:
		return AirmassPoor
	}
}

func (t AirmassTier) String() string {
	switch t {
	case AirmassExcellent:
		return "excellent"
	case AirmassGood:
		return "good"
	case AirmassFair:
		return "fair"
	case AirmassPoor:
		return "poor"
	default:
		return "down"
	}
}
