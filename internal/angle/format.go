package angle

import (
	"fmt"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// FormatDMS renders d with degree, prime and double-prime glyphs and prec
// decimal places on the seconds.
func FormatDMS(d DMS, prec int) string {
	return fmt.Sprintf("%.*s", prec, sexa.FmtAngle(unit.AngleFromDeg(d.Degrees())))
}

// FormatHMS renders h with superscript hour, minute and second glyphs.
func FormatHMS(h HMS, prec int) string {
	return fmt.Sprintf("%.*s", prec, sexa.FmtRA(unit.RAFromDeg(h.Degrees())))
}
