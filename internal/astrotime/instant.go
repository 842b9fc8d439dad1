// Package astrotime provides UT calendar instants and the Julian Day and
// sidereal clocks derived from them.
package astrotime

import (
	"math"
	"time"

	"github.com/litescript/ls-astrotool/internal/angle"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// DaysPerCentury is the length of a Julian century.
const DaysPerCentury = 36525.0

// Instant is a UT calendar date and time. Values built through New or
// Normalize always have Hour in [0,24), Minute in [0,60) and Second in [0,60).
type Instant struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// New returns the normalized instant for the given fields. Hours outside
// [0,24) move the date forward or backward through the Gregorian calendar.
func New(year, month, day, hour, minute int, second float64) Instant {
	return Instant{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
	}.Normalize()
}

// FromTime converts t to a UT instant.
func FromTime(t time.Time) Instant {
	t = t.UTC()
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return Instant{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: sec,
	}
}

// Now returns the current UT instant.
func Now() Instant {
	return FromTime(time.Now())
}

// Time converts the instant to a time.Time in UTC.
func (i Instant) Time() time.Time {
	n := i.Normalize()
	whole := math.Floor(n.Second)
	nanos := int(math.Round((n.Second - whole) * 1e9))
	return time.Date(n.Year, time.Month(n.Month), n.Day, n.Hour, n.Minute, int(whole), nanos, time.UTC)
}

// Normalize carries seconds and minutes into hours, then moves whole days
// out of the hour field through the Gregorian calendar.
func (i Instant) Normalize() Instant {
	if i.Second >= 0 && i.Second < 60 && i.Minute >= 0 && i.Minute < 60 && i.Hour >= 0 && i.Hour < 24 {
		return i
	}

	carry := math.Floor(i.Second / 60)
	i.Second -= carry * 60
	mins := i.Minute + int(carry)
	i.Minute = floorMod(mins, 60)
	hours := i.Hour + floorDiv(mins, 60)
	i.Hour = floorMod(hours, 24)
	days := floorDiv(hours, 24)
	if days == 0 {
		return i
	}

	jdn := dayNumber(i.Year, i.Month, i.Day) + days
	i.Year, i.Month, i.Day = civil(jdn)
	return i
}

// UT returns the time of day in decimal hours.
func (i Instant) UT() float64 {
	return float64(i.Hour) + float64(i.Minute)/60 + i.Second/3600
}

// JulianDay returns the Julian Day using the USNO formula, valid for
// Gregorian dates between 1801 and 2099 and continuous outside it.
func (i Instant) JulianDay() float64 {
	n := i.Normalize()
	y := float64(n.Year)
	m := float64(n.Month)
	d := float64(n.Day)

	jd := 367*y -
		math.Floor(7*(y+math.Floor((m+9)/12))/4) +
		math.Floor(275*m/9) +
		d + 1721013.5 + n.UT()/24
	return jd - 0.5*math.Copysign(1, 100*y+m-190002.5) + 0.5
}

// Centuries returns Julian centuries elapsed since J2000.
func (i Instant) Centuries() float64 {
	return (i.JulianDay() - J2000) / DaysPerCentury
}

// GMST returns Greenwich mean sidereal time.
func (i Instant) GMST() angle.HMS {
	return angle.HoursToHMS(i.gmstHours())
}

func (i Instant) gmstHours() float64 {
	return angle.Normalize24(18.697375 + 24.065709824279*(i.JulianDay()-J2000))
}

// LST returns local mean sidereal time at the given east-positive longitude.
func (i Instant) LST(longitude angle.DMS) angle.HMS {
	return angle.HoursToHMS(i.gmstHours() + longitude.Degrees()/15)
}

// DayOfYear returns the ordinal day within the year, 1 for January 1.
func (i Instant) DayOfYear() int {
	n := i.Normalize()
	y, m, d := n.Year, n.Month, n.Day
	n1 := 275 * m / 9
	n2 := (m + 9) / 12
	n3 := 1 + (y-4*floorDiv(y, 4)+2)/3
	return n1 - n2*n3 + d - 30
}

// Midnight returns 0h UT on the same date.
func (i Instant) Midnight() Instant {
	n := i.Normalize()
	return Instant{Year: n.Year, Month: n.Month, Day: n.Day}
}

// AddHours returns the instant shifted by h hours, renormalized.
func (i Instant) AddHours(h float64) Instant {
	n := i.Normalize()
	total := n.UT() + h
	days := math.Floor(total / 24)
	total -= days * 24

	hour := math.Floor(total)
	rem := (total - hour) * 60
	minute := math.Floor(rem)
	second := (rem - minute) * 60
	if second >= 60-1e-9 {
		second = 0
		minute++
	}

	out := Instant{Year: n.Year, Month: n.Month, Day: n.Day,
		Hour: int(hour), Minute: int(minute), Second: second}
	if days != 0 {
		out.Year, out.Month, out.Day = civil(dayNumber(n.Year, n.Month, n.Day) + int(days))
	}
	return out.Normalize()
}

// DecimalYear returns Year + (Month-1)/12, the epoch used for on-date
// coordinate corrections.
func (i Instant) DecimalYear() float64 {
	n := i.Normalize()
	return float64(n.Year) + float64(n.Month-1)/12
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
