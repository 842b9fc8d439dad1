package angle

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantDeg  float64
	}{
		{"colon positive", "+45:59:48.3", KindDMS, 45.99675},
		{"colon negative", "-16:44:55.8", KindDMS, -16.7488333},
		{"colon negative zero degrees", "-00:30:00", KindDMS, -0.5},
		{"degree glyphs", `45°59'48.3"`, KindDMS, 45.99675},
		{"prime glyphs", "-16°44′55.8″", KindDMS, -16.7488333},
		{"hour form", "5h16m43.32s", KindHMS, 79.1805},
		{"decimal", "101.287", KindDegrees, 101.287},
		{"padded", "  12.5 ", KindDegrees, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got.Kind() != tt.wantKind {
				t.Errorf("Parse(%q).Kind() = %v, want %v", tt.input, got.Kind(), tt.wantKind)
			}
			if math.Abs(got.Degrees()-tt.wantDeg) > 1e-4 {
				t.Errorf("Parse(%q).Degrees() = %v, want %v", tt.input, got.Degrees(), tt.wantDeg)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{"", "abc", "12:61:00", "10:00:75", "-5h00m00s", "12:30", "1h2x3s"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", in)
			}
			if !errors.Is(err, ErrMalformedAngle) {
				t.Errorf("error %v should match ErrMalformedAngle", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if pe.Input != in {
				t.Errorf("ParseError.Input = %q, want %q", pe.Input, in)
			}
			if !strings.Contains(err.Error(), "expected") {
				t.Errorf("error %q should name the expected grammar", err)
			}
		})
	}
}

func TestParseDMS(t *testing.T) {
	d, err := ParseDMS("-00:30:00")
	if err != nil {
		t.Fatalf("ParseDMS: %v", err)
	}
	if d.Sign != -1 || d.Deg != 0 || d.Min != 30 {
		t.Errorf("ParseDMS(-00:30:00) = %+v", d)
	}

	d, err = ParseDMS("-0.0013")
	if err != nil {
		t.Fatalf("ParseDMS decimal: %v", err)
	}
	if d.Sign != -1 {
		t.Errorf("decimal sign lost: %+v", d)
	}

	if _, err := ParseDMS("5h00m00s"); !errors.Is(err, ErrMalformedAngle) {
		t.Errorf("ParseDMS of hour form error = %v, want ErrMalformedAngle", err)
	}
}

func TestParseHMS(t *testing.T) {
	tests := []struct {
		input string
		want  HMS
	}{
		{"06:46:10.54", HMS{6, 46, 10.54}},
		{"6h46m10.54s", HMS{6, 46, 10.54}},
		{"0h0m0s", HMS{0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseHMS(tt.input)
		if err != nil {
			t.Fatalf("ParseHMS(%q): %v", tt.input, err)
		}
		if got.Hour != tt.want.Hour || got.Min != tt.want.Min || math.Abs(got.Sec-tt.want.Sec) > 1e-9 {
			t.Errorf("ParseHMS(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}

	h, err := ParseHMS("-15")
	if err != nil {
		t.Fatalf("ParseHMS decimal: %v", err)
	}
	if h.Hour != 23 {
		t.Errorf("ParseHMS(-15) = %+v, want 23h", h)
	}

	for _, bad := range []string{"-06:46:10", "24:00:00", "6h"} {
		if _, err := ParseHMS(bad); !errors.Is(err, ErrMalformedAngle) {
			t.Errorf("ParseHMS(%q) error = %v, want ErrMalformedAngle", bad, err)
		}
	}
}
