package astrotime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTime matches every instant parse failure.
var ErrMalformedTime = errors.New("malformed instant")

const grammarInstant = "YYYY-MM-DDThh:mm:ss, YYYY/MM/DD/hh:mm:ss, YYYY-MM-DD or RFC 3339"

// ParseError reports a string that matches none of the accepted layouts.
type ParseError struct {
	Input    string
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse instant %q: expected %s", e.Input, e.Expected)
}

// Is makes errors.Is(err, ErrMalformedTime) hold for parse failures.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedTime
}

var layouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02/15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
}

// Parse reads a UT instant. A bare date means noon UT of that date.
func Parse(s string) (Instant, error) {
	in := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, in); err == nil {
			return FromTime(t), nil
		}
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, in); err == nil {
			return FromTime(t.Add(12 * time.Hour)), nil
		}
	}
	return Instant{}, &ParseError{Input: s, Expected: grammarInstant}
}

// String formats the instant as YYYY-MM-DDThh:mm:ss.ss UT.
func (i Instant) String() string {
	n := i.Normalize()
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%05.2f", n.Year, n.Month, n.Day, n.Hour, n.Minute, n.Second)
}
