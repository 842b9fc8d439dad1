package angle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Grammars accepted by the parsers, used in error messages.
const (
	grammarDMS = `±dd:mm:ss.ss, ±dd°mm'ss.ss" or decimal degrees`
	grammarHMS = `hh:mm:ss.ss, hhhmmmss.sss or decimal degrees`
	grammarAny = `±dd:mm:ss.ss, ±dd°mm'ss.ss", hhhmmmss.sss or decimal degrees`
)

var (
	colonRe  = regexp.MustCompile(`^([+-]?)(\d+):(\d+):(\d+(?:\.\d*)?)$`)
	degreeRe = regexp.MustCompile(`^([+-]?)(\d+)°\s*(\d+)['′]\s*(\d+(?:\.\d*)?)["″]?$`)
	hourRe   = regexp.MustCompile(`^(\d+)h\s*(\d+)m\s*(\d+(?:\.\d*)?)s?$`)
)

// ParseError reports a string that matches none of the accepted grammars.
type ParseError struct {
	Input    string
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse angle %q: expected %s", e.Input, e.Expected)
}

// Is makes errors.Is(err, ErrMalformedAngle) hold for parse failures.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedAngle
}

// Parse reads an angle in any accepted form. Hour forms yield an HMS angle,
// sexagesimal degree forms a DMS angle and plain numbers a degree angle.
func Parse(s string) (Angle, error) {
	in := strings.TrimSpace(s)
	if f, ok := sexagesimal(in, hourRe); ok {
		if f.sign < 0 {
			return Angle{}, &ParseError{Input: s, Expected: grammarAny}
		}
		if f.valid() {
			return FromHMS(HMS{Hour: f.whole, Min: f.min, Sec: f.sec}), nil
		}
		return Angle{}, &ParseError{Input: s, Expected: grammarAny}
	}
	if f, ok := sexagesimal(in, colonRe, degreeRe); ok {
		if !f.valid() {
			return Angle{}, &ParseError{Input: s, Expected: grammarAny}
		}
		return FromDMS(NewDMS(f.sign, f.whole, f.min, f.sec)), nil
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return Angle{}, &ParseError{Input: s, Expected: grammarAny}
	}
	return Degrees(v), nil
}

// ParseDMS reads a declination-like angle. Decimal input is taken as degrees.
func ParseDMS(s string) (DMS, error) {
	in := strings.TrimSpace(s)
	if f, ok := sexagesimal(in, colonRe, degreeRe); ok {
		if !f.valid() {
			return DMS{}, &ParseError{Input: s, Expected: grammarDMS}
		}
		return NewDMS(f.sign, f.whole, f.min, f.sec), nil
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return DMS{}, &ParseError{Input: s, Expected: grammarDMS}
	}
	return DegToDMS(v), nil
}

// ParseHMS reads a right-ascension-like angle. Decimal input is taken as
// degrees and wrapped into [0h, 24h).
func ParseHMS(s string) (HMS, error) {
	in := strings.TrimSpace(s)
	if f, ok := sexagesimal(in, hourRe, colonRe); ok {
		if f.sign < 0 || !f.valid() || f.whole >= 24 {
			return HMS{}, &ParseError{Input: s, Expected: grammarHMS}
		}
		return HMS{Hour: f.whole, Min: f.min, Sec: f.sec}, nil
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return HMS{}, &ParseError{Input: s, Expected: grammarHMS}
	}
	return DegToHMS(v), nil
}

type fields struct {
	sign  int
	whole int
	min   int
	sec   float64
}

func (f fields) valid() bool {
	return f.min < 60 && f.sec < 60
}

// sexagesimal tries each pattern in turn. Patterns without a sign group
// report a positive sign.
func sexagesimal(s string, patterns ...*regexp.Regexp) (fields, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		parts := m[1:]
		f := fields{sign: 1}
		if len(parts) == 4 {
			if parts[0] == "-" {
				f.sign = -1
			}
			parts = parts[1:]
		}
		var err error
		if f.whole, err = strconv.Atoi(parts[0]); err != nil {
			return fields{}, false
		}
		if f.min, err = strconv.Atoi(parts[1]); err != nil {
			return fields{}, false
		}
		if f.sec, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return fields{}, false
		}
		return f, true
	}
	return fields{}, false
}
