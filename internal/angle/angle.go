// Package angle represents angular quantities in degrees, radians and the
// sexagesimal DMS and HMS forms, and converts between them.
package angle

import (
	"errors"
	"fmt"
	"math"
)

// Kind identifies which representation an Angle holds.
type Kind int

const (
	KindDegrees Kind = iota
	KindRadians
	KindDMS
	KindHMS
)

func (k Kind) String() string {
	switch k {
	case KindDegrees:
		return "degrees"
	case KindRadians:
		return "radians"
	case KindDMS:
		return "dms"
	case KindHMS:
		return "hms"
	default:
		return "unknown"
	}
}

// Errors for angle conversions.
var (
	ErrInvalidConversion = errors.New("invalid angle conversion")
	ErrMalformedAngle    = errors.New("malformed angle")
)

// DMS is a sexagesimal angle in degrees, arcminutes and arcseconds.
// The sign lives in Sign so that values such as -0°30' keep it.
type DMS struct {
	Sign int // +1 or -1
	Deg  int
	Min  int
	Sec  float64
}

// NewDMS builds a DMS value. Any negative sign argument yields Sign -1.
func NewDMS(sign, deg, arcmin int, arcsec float64) DMS {
	s := 1
	if sign < 0 {
		s = -1
	}
	if deg < 0 {
		deg = -deg
	}
	return DMS{Sign: s, Deg: deg, Min: arcmin, Sec: arcsec}
}

// Degrees returns the value in decimal degrees.
func (d DMS) Degrees() float64 {
	v := float64(abs(d.Deg)) + float64(d.Min)/60 + d.Sec/3600
	if d.Sign < 0 {
		return -v
	}
	return v
}

// Radians returns the value in radians.
func (d DMS) Radians() float64 {
	return DegToRad(d.Degrees())
}

// Negative reports whether the value carries a negative sign.
func (d DMS) Negative() bool {
	return d.Sign < 0
}

// Round rounds the seconds to prec decimals, carrying a rounded 60s into
// the minutes and degrees.
func (d DMS) Round(prec int) DMS {
	d.Deg, d.Min, d.Sec = roundCarry(d.Deg, d.Min, d.Sec, prec)
	return d
}

// String formats as +dd°mm'ss.ss".
func (d DMS) String() string {
	sign := '+'
	if d.Sign < 0 {
		sign = '-'
	}
	r := d.Round(2)
	return fmt.Sprintf("%c%02d°%02d'%05.2f\"", sign, r.Deg, r.Min, r.Sec)
}

// HMS is a time-like angle in hours, minutes and seconds, always in [0h, 24h).
type HMS struct {
	Hour int
	Min  int
	Sec  float64
}

// NewHMS builds an HMS value, wrapping out-of-range fields modulo 24h.
func NewHMS(hour, minute int, sec float64) HMS {
	h := HMS{Hour: hour, Min: minute, Sec: sec}
	if hour >= 0 && hour < 24 && minute >= 0 && minute < 60 && sec >= 0 && sec < 60 {
		return h
	}
	return DegToHMS(h.Degrees())
}

// Hours returns the value in decimal hours.
func (h HMS) Hours() float64 {
	return float64(h.Hour) + float64(h.Min)/60 + h.Sec/3600
}

// Degrees returns the value in decimal degrees.
func (h HMS) Degrees() float64 {
	return h.Hours() * 180 / 12
}

// Radians returns the value in radians.
func (h HMS) Radians() float64 {
	return DegToRad(h.Degrees())
}

// Round rounds the seconds to prec decimals, carrying into minutes and
// hours; 24h wraps to 0h.
func (h HMS) Round(prec int) HMS {
	h.Hour, h.Min, h.Sec = roundCarry(h.Hour, h.Min, h.Sec, prec)
	h.Hour %= 24
	return h
}

// String formats as hhhmmmss.ss.
func (h HMS) String() string {
	r := h.Round(2)
	return fmt.Sprintf("%02dh%02dm%05.2fs", r.Hour, r.Min, r.Sec)
}

// Angle is an immutable angular value held in exactly one representation.
// Conversions return new values.
type Angle struct {
	kind  Kind
	value float64 // degrees or radians
	dms   DMS
	hms   HMS
}

// Degrees returns an angle held in decimal degrees.
func Degrees(v float64) Angle {
	return Angle{kind: KindDegrees, value: v}
}

// Radians returns an angle held in radians.
func Radians(v float64) Angle {
	return Angle{kind: KindRadians, value: v}
}

// FromDMS returns an angle held in DMS form.
func FromDMS(d DMS) Angle {
	return Angle{kind: KindDMS, dms: d}
}

// FromHMS returns an angle held in HMS form.
func FromHMS(h HMS) Angle {
	return Angle{kind: KindHMS, hms: h}
}

// Kind returns the representation held by a.
func (a Angle) Kind() Kind {
	return a.kind
}

// Degrees returns the numeric value in degrees, whatever the representation.
func (a Angle) Degrees() float64 {
	switch a.kind {
	case KindRadians:
		return RadToDeg(a.value)
	case KindDMS:
		return a.dms.Degrees()
	case KindHMS:
		return a.hms.Degrees()
	default:
		return a.value
	}
}

// Radians returns the numeric value in radians, whatever the representation.
func (a Angle) Radians() float64 {
	switch a.kind {
	case KindRadians:
		return a.value
	case KindDMS:
		return a.dms.Radians()
	case KindHMS:
		return a.hms.Radians()
	default:
		return DegToRad(a.value)
	}
}

// DMS returns the stored DMS fields. It fails unless a holds a DMS value.
func (a Angle) DMS() (DMS, error) {
	if a.kind != KindDMS {
		return DMS{}, invalid(a.kind, KindDMS)
	}
	return a.dms, nil
}

// HMS returns the stored HMS fields. It fails unless a holds an HMS value.
func (a Angle) HMS() (HMS, error) {
	if a.kind != KindHMS {
		return HMS{}, invalid(a.kind, KindHMS)
	}
	return a.hms, nil
}

// ToDegrees converts to decimal degrees.
func (a Angle) ToDegrees() Angle {
	return Degrees(a.Degrees())
}

// ToRadians converts to radians.
func (a Angle) ToRadians() Angle {
	return Radians(a.Radians())
}

// ToDMS converts a degree or radian angle to DMS. HMS angles must go through
// ToDegrees or ToRadians first.
func (a Angle) ToDMS() (Angle, error) {
	switch a.kind {
	case KindDMS:
		return a, nil
	case KindDegrees:
		return FromDMS(DegToDMS(a.value)), nil
	case KindRadians:
		return FromDMS(RadToDMS(a.value)), nil
	default:
		return Angle{}, invalid(a.kind, KindDMS)
	}
}

// ToHMS converts a degree or radian angle to HMS. DMS angles must go through
// ToDegrees or ToRadians first.
func (a Angle) ToHMS() (Angle, error) {
	switch a.kind {
	case KindHMS:
		return a, nil
	case KindDegrees:
		return FromHMS(DegToHMS(a.value)), nil
	case KindRadians:
		return FromHMS(RadToHMS(a.value)), nil
	default:
		return Angle{}, invalid(a.kind, KindHMS)
	}
}

func (a Angle) String() string {
	switch a.kind {
	case KindRadians:
		return fmt.Sprintf("%.6frad", a.value)
	case KindDMS:
		return a.dms.String()
	case KindHMS:
		return a.hms.String()
	default:
		return fmt.Sprintf("%.6f°", a.value)
	}
}

func invalid(from, to Kind) error {
	return fmt.Errorf("%w: %s value read as %s", ErrInvalidConversion, from, to)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DegToDMS splits decimal degrees into DMS fields. The integer degrees are
// truncated toward zero and the sign is kept separately, so -0.5 yields
// Sign -1, Deg 0, Min 30.
func DegToDMS(deg float64) DMS {
	sign := 1
	if math.Signbit(deg) {
		sign = -1
	}
	d, m, s := cascade(math.Abs(deg))
	return DMS{Sign: sign, Deg: d, Min: m, Sec: s}
}

// roundCarry rounds sec to prec decimals and carries 60s and 60m upward.
func roundCarry(whole, min int, sec float64, prec int) (int, int, float64) {
	scale := math.Pow(10, float64(prec))
	sec = math.Round(sec*scale) / scale
	if sec >= 60 {
		sec -= 60
		min++
	}
	if min >= 60 {
		min -= 60
		whole++
	}
	return whole, min, sec
}

// RadToDMS splits radians into DMS fields.
func RadToDMS(rad float64) DMS {
	return DegToDMS(RadToDeg(rad))
}

// DegToHMS converts decimal degrees to HMS, wrapping into [0h, 24h).
func DegToHMS(deg float64) HMS {
	h := Normalize24(deg * 12 / 180)
	hh, m, s := cascade(h)
	return HMS{Hour: hh, Min: m, Sec: s}
}

// RadToHMS converts radians to HMS, wrapping into [0h, 24h).
func RadToHMS(rad float64) HMS {
	return DegToHMS(RadToDeg(rad))
}

// HoursToHMS converts decimal hours to HMS, wrapping into [0h, 24h).
func HoursToHMS(hours float64) HMS {
	return DegToHMS(hours * 15)
}

// cascade splits a non-negative value into whole units, sixtieths and
// three-thousand-six-hundredths.
func cascade(v float64) (int, int, float64) {
	whole := math.Trunc(v)
	rem := math.Abs(v-whole) * 60
	sixtieths := math.Trunc(rem)
	sec := math.Abs(rem-sixtieths) * 60
	return int(whole), int(sixtieths), sec
}

// Normalize360 wraps degrees into [0, 360).
func Normalize360(deg float64) float64 {
	return wrap(deg, 360)
}

// Normalize24 wraps hours into [0, 24).
func Normalize24(h float64) float64 {
	return wrap(h, 24)
}

func wrap(v, period float64) float64 {
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	if v >= period {
		v -= period
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
