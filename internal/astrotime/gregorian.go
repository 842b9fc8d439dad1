package astrotime

import "math"

// Gregorian returns the Gregorian calendar date containing the Julian Day jd,
// using the Fliegel–Van Flandern integer algorithm on ⌊jd+0.5⌋.
func Gregorian(jd float64) (year, month, day int) {
	return civil(int(math.Floor(jd + 0.5)))
}

// FromJulianDay returns the UT instant for a Julian Day.
func FromJulianDay(jd float64) Instant {
	jdn := math.Floor(jd + 0.5)
	y, m, d := civil(int(jdn))
	return Instant{Year: y, Month: m, Day: d}.AddHours((jd + 0.5 - jdn) * 24)
}

// dayNumber returns the integer Julian Day Number of a Gregorian date.
func dayNumber(year, month, day int) int {
	a := (month - 14) / 12
	return (1461*(year+4800+a))/4 +
		(367*(month-2-12*a))/12 -
		(3*((year+4900+a)/100))/4 +
		day - 32075
}

// civil inverts dayNumber.
func civil(jdn int) (year, month, day int) {
	g1 := jdn + 68569
	g2 := 4 * g1 / 146097
	g1 -= (146097*g2 + 3) / 4
	g3 := 4000 * (g1 + 1) / 1461001
	g1 -= 1461*g3/4 - 31
	g4 := 80 * g1 / 2447
	day = g1 - 2447*g4/80
	g1 = g4 / 11
	month = g4 + 2 - 12*g1
	year = 100*(g2-49) + g3 + g1
	return year, month, day
}
