package ephem

import (
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// Vec3 is a cartesian vector in whichever frame the caller is working in.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Neg returns the vector pointing the other way.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Obliquity returns the mean obliquity of the ecliptic in degrees, t Julian
// centuries from J2000.
func Obliquity(t float64) float64 {
	return 23.439279444 - 0.013010214*t - 5.086e-8*t*t + 5.565e-7*t*t*t -
		1.6e-10*t*t*t*t - 1.206e-11*t*t*t*t*t
}

// EclipticToEquatorial rotates an ecliptic vector about X by the obliquity
// at t.
func EclipticToEquatorial(ecl Vec3, t float64) Vec3 {
	eps := angle.DegToRad(Obliquity(t))
	cosE, sinE := math.Cos(eps), math.Sin(eps)
	return Vec3{
		X: ecl.X,
		Y: ecl.Y*cosE - ecl.Z*sinE,
		Z: ecl.Y*sinE + ecl.Z*cosE,
	}
}

// RADec returns the right ascension and declination, in degrees, of an
// equatorial vector.
func RADec(eq Vec3) (ra, dec float64) {
	ra = angle.Normalize360(angle.RadToDeg(math.Atan2(eq.Y, eq.X)))
	dec = angle.RadToDeg(math.Atan2(eq.Z, math.Hypot(eq.X, eq.Y)))
	return ra, dec
}

// EclipticLonLat returns ecliptic longitude and latitude in degrees.
func EclipticLonLat(v Vec3) (lon, lat float64) {
	r := v.Norm()
	if r == 0 {
		return 0, 0
	}
	return angle.Normalize360(angle.RadToDeg(math.Atan2(v.Y, v.X))), angle.RadToDeg(math.Asin(v.Z / r))
}
