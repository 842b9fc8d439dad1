package ephem

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
)

// Kepler solver limits.
const (
	MaxKeplerIterations = 100
	KeplerTolerance     = 1e-6 // degrees
)

// ErrKeplerNoConvergence is returned when Kepler's equation cannot be
// solved within MaxKeplerIterations.
var ErrKeplerNoConvergence = errors.New("kepler solver did not converge")

// Orbit is an element set evaluated at one instant. A is in km, angles in
// degrees.
type Orbit struct {
	Elements
	ArgPeri     float64 // ω = ϖ − Ω
	MeanAnomaly float64 // M = L − ϖ
	Eccentric   float64 // E
	TrueAnomaly float64 // ν
	Radius      float64 // km
	Iterations  int
}

// At advances the element set to t Julian centuries from J2000 and solves
// for the body's place in its orbit.
func (s ElementSet) At(t float64) (Orbit, error) {
	el := Elements{
		A:        (s.Base.A + s.Rate.A*t) * AU,
		E:        s.Base.E + s.Rate.E*t,
		I:        angle.Normalize360(s.Base.I + s.Rate.I*t),
		L:        angle.Normalize360(s.Base.L + s.Rate.L*t),
		LongPeri: angle.Normalize360(s.Base.LongPeri + s.Rate.LongPeri*t),
		Node:     angle.Normalize360(s.Base.Node + s.Rate.Node*t),
	}
	o := Orbit{
		Elements:    el,
		ArgPeri:     angle.Normalize360(el.LongPeri - el.Node),
		MeanAnomaly: angle.Normalize360(el.L - el.LongPeri),
	}

	ecc, n, err := SolveKepler(o.MeanAnomaly, el.E)
	if err != nil {
		return Orbit{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	o.Eccentric = ecc
	o.Iterations = n

	eRad := angle.DegToRad(ecc)
	x := el.A * (math.Cos(eRad) - el.E)
	y := el.A * math.Sqrt(1-el.E*el.E) * math.Sin(eRad)
	o.TrueAnomaly = angle.RadToDeg(math.Atan2(y, x))
	o.Radius = math.Hypot(x, y)
	return o, nil
}

// Ecliptic returns the position in the ecliptic frame of the orbit's
// centre, in km.
func (o Orbit) Ecliptic() Vec3 {
	node := angle.DegToRad(o.Node)
	u := angle.DegToRad(o.ArgPeri + o.TrueAnomaly)
	inc := angle.DegToRad(o.I)

	cosN, sinN := math.Cos(node), math.Sin(node)
	cosU, sinU := math.Cos(u), math.Sin(u)
	cosI := math.Cos(inc)

	return Vec3{
		X: o.Radius * (cosN*cosU - sinN*sinU*cosI),
		Y: o.Radius * (sinN*cosU + cosN*sinU*cosI),
		Z: o.Radius * sinU * math.Sin(inc),
	}
}

// SolveKepler solves M = E − e·sin E for the eccentric anomaly E by Newton
// iteration, with M and E in degrees. It returns E and the number of
// iterations taken.
func SolveKepler(m, e float64) (float64, int, error) {
	if e < 0 || e >= 1 {
		return 0, 0, fmt.Errorf("eccentricity %g outside [0,1): %w", e, ErrKeplerNoConvergence)
	}

	eDeg := angle.RadToDeg(e)
	ecc := m - eDeg*math.Sin(angle.DegToRad(m))
	for i := 1; i <= MaxKeplerIterations; i++ {
		dM := m - (ecc - eDeg*math.Sin(angle.DegToRad(ecc)))
		dE := dM / (1 - e*math.Cos(angle.DegToRad(ecc)))
		ecc += dE
		if math.Abs(dE) < KeplerTolerance {
			return ecc, i, nil
		}
	}
	return 0, MaxKeplerIterations, fmt.Errorf("M=%g e=%g after %d iterations: %w",
		m, e, MaxKeplerIterations, ErrKeplerNoConvergence)
}
