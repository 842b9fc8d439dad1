// Package plan scans an observing night: airmass of each target on a time
// grid, with Sun and Moon rise/set markers.
package plan

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/astrotime"
)

var (
	ErrNightTooLong = errors.New("observing night longer than 24 hours")
	ErrBadStep      = errors.New("time step must be positive")
)

// Night is an observing window on Date. Start and End are UT hours from
// midnight of Date; End may exceed 24 when the night crosses midnight.
type Night struct {
	Date  astrotime.Instant
	Start float64
	End   float64
	Step  float64
}

// NewNight validates a window. An end at or before start is taken to fall
// on the following day.
func NewNight(date astrotime.Instant, start, end, step float64) (Night, error) {
	if !(step > 0) {
		return Night{}, fmt.Errorf("%w: %v", ErrBadStep, step)
	}
	if end <= start {
		end += 24
	}
	if end-start > 24 {
		return Night{}, fmt.Errorf("%w: %.1fh to %.1fh", ErrNightTooLong, start, end)
	}
	return Night{Date: date.Midnight(), Start: start, End: end, Step: step}, nil
}

// Duration returns the window length in hours.
func (n Night) Duration() float64 {
	return n.End - n.Start
}

// Hours returns the sample grid Start, Start+Step, ... below End.
func (n Night) Hours() []float64 {
	count := int(math.Ceil(n.Duration()/n.Step - 1e-9))
	hours := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		hours = append(hours, n.Start+float64(i)*n.Step)
	}
	return hours
}

// WholeHours returns each whole hour inside the window.
func (n Night) WholeHours() []float64 {
	var out []float64
	for h := math.Ceil(n.Start - 1e-9); h < n.End; h++ {
		out = append(out, h)
	}
	return out
}

// At returns the instant h hours after midnight of the night's date.
func (n Night) At(h float64) astrotime.Instant {
	return n.Date.Midnight().AddHours(h)
}

// Mid returns the middle of the window.
func (n Night) Mid() astrotime.Instant {
	return n.At((n.Start + n.End) / 2)
}

// Contains reports whether hour h falls within the window.
func (n Night) Contains(h float64) bool {
	return h >= n.Start && h < n.End
}

// Label returns the night's date as YYYY-MM-DD.
func (n Night) Label() string {
	return fmt.Sprintf("%04d-%02d-%02d", n.Date.Year, n.Date.Month, n.Date.Day)
}

// FormatUT renders an hour on the window axis as a clock time.
func FormatUT(h float64) string {
	hms := angle.HoursToHMS(angle.Normalize24(h + 0.5/60))
	return fmt.Sprintf("%02d:%02d", hms.Hour, hms.Min)
}
