package units

import (
	"errors"
	"math"
	"testing"
)

func TestParseAliases(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"canonical mph", "mph", "mph"},
		{"canonical kph", "kph", "kph"},
		{"slash form", "km/h", "kph"},
		{"compact kmh", "kmh", "kph"},
		{"meters per second slash", "m/s", "mps"},
		{"knots short", "kt", "knots"},
		{"uppercase", "MPH", "mph"},
		{"surrounding space", "  mph ", "mph"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
			}
			if u.Code() != tc.want {
				t.Fatalf("Parse(%q) = %q, want %q", tc.in, u.Code(), tc.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, in := range []string{"furlongs", "mach", "", "kmps"} {
		if _, err := Parse(in); !errors.Is(err, ErrUnsupportedUnit) {
			t.Fatalf("Parse(%q) error = %v, want ErrUnsupportedUnit", in, err)
		}
	}
}

func TestConvert(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"identity", 42, "mph", "mph", 42},
		{"mph to kph", 60, "mph", "kph", 96.56064},
		{"kph to mph", 96.56064, "kph", "mph", 60},
		{"mps to kph", 10, "mps", "kph", 36},
		{"knots to mps", 1, "knots", "mps", 0.514444},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Convert(tc.value, MustParse(tc.from), MustParse(tc.to))
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Convert(%v, %s, %s) = %v, want %v", tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	from := MustParse("kph")
	to := MustParse("mph")
	for _, v := range []float64{0, 1, 33.3, 120, 250.5} {
		back := Convert(Convert(v, from, to), to, from)
		if math.Abs(back-v) > 1e-9 {
			t.Fatalf("round trip of %v through mph = %v", v, back)
		}
	}
}

func TestLabels(t *testing.T) {
	cases := map[string]string{
		"mph":   "mph",
		"kph":   "km/h",
		"mps":   "m/s",
		"knots": "kn",
	}
	for code, label := range cases {
		if got := MustParse(code).Label(); got != label {
			t.Fatalf("Label(%s) = %q, want %q", code, got, label)
		}
	}
}

func TestSupported(t *testing.T) {
	codes := Supported()
	if len(codes) != 4 {
		t.Fatalf("Supported() returned %d codes, want 4", len(codes))
	}
	if codes[0] != "mph" {
		t.Fatalf("first supported code = %q, want mph", codes[0])
	}
}
