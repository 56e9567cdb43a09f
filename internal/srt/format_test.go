package srt

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dashcap/internal/telemetry"
	"dashcap/internal/units"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{5, "00:00:05,000"},
		{3723.5, "01:02:03,500"},
		{1.9999, "00:00:02,000"},
		{0.0005, "00:00:00,001"},
		{-3, "00:00:00,000"},
		{7325.042, "02:02:05,042"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.001, 1.5, 59.999, 61.25, 3599.5, 3600, 86399.999} {
		formatted := FormatTimestamp(seconds)
		back, err := ParseTimestamp(formatted)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) returned error: %v", formatted, err)
		}
		if math.Abs(back-seconds) > 0.001 {
			t.Fatalf("round trip of %v via %q = %v, drift beyond 1ms", seconds, formatted, back)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00:05,000", 5},
		{"01:02:03,500", 3723.5},
		{"01:02:03.500", 3723.5},
		{" 00:00:01,250 ", 1.25},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) returned error: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "00:00:00", "1:2", "xx:00:00,000", "00:00:00,abc"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Fatalf("ParseTimestamp(%q) unexpectedly succeeded", in)
		}
	}
}

func TestRenderGoldenDocument(t *testing.T) {
	doc := `{"data":[{"timestamp":0,"speed":30},{"timestamp":5,"speed":45}]}`
	mph := units.MustParse("mph")
	report, err := telemetry.Parse([]byte(doc), telemetry.Options{SourceUnit: mph, TargetUnit: mph})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cues := BuildCues(report.Samples, Options{UnitLabel: mph.Label()})
	text := Render(cues)

	want := "1\n" +
		"00:00:00,000 --> 00:00:05,000\n" +
		"Speed: 30 mph\n" +
		"\n" +
		"2\n" +
		"00:00:05,000 --> 00:00:06,000\n" +
		"Speed: 45 mph\n"
	if text != want {
		t.Fatalf("rendered subtitle mismatch:\n got: %q\nwant: %q", text, want)
	}
	if !strings.Contains(text, "30 mph") || !strings.Contains(text, "45 mph") {
		t.Fatalf("rendered subtitle missing speed captions:\n%s", text)
	}
}

func TestRenderDeterministic(t *testing.T) {
	samples := []telemetry.Sample{
		{Elapsed: 0, Display: "0.000s", Speed: floatPtr(30), Latitude: floatPtr(51.5)},
		{Elapsed: 2, Display: "2.000s"},
		{Elapsed: 4, Display: "4.000s", Longitude: floatPtr(-0.12)},
	}
	cues := BuildCues(samples, Options{UnitLabel: "mph", IncludeTime: true})
	first := Render(cues)
	second := Render(cues)
	if first != second {
		t.Fatal("repeated rendering differs")
	}
	if !strings.HasSuffix(first, "\n") || strings.HasSuffix(first, "\n\n") {
		t.Fatalf("output must end with exactly one newline, got %q", first)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Fatalf("Render(nil) = %q, want empty", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay", "telemetry.srt")
	cues := BuildCues([]telemetry.Sample{sampleAt(0), sampleAt(1)}, Options{})

	if err := WriteFile(path, cues); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != Render(cues) {
		t.Fatalf("file content does not match rendering:\n%s", data)
	}
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.srt")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	cues := BuildCues([]telemetry.Sample{sampleAt(3)}, Options{})
	if err := WriteFile(path, cues); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatal("previous content survived the replace")
	}
}
