package srt

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"dashcap/internal/telemetry"
)

func sampleAt(elapsed float64) telemetry.Sample {
	return telemetry.Sample{
		Kind:    telemetry.KindElapsed,
		Elapsed: elapsed,
		Display: fmt.Sprintf("%.3fs", elapsed),
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestBuildCuesMonotonicTimeline(t *testing.T) {
	samples := []telemetry.Sample{sampleAt(0), sampleAt(2.5), sampleAt(7)}
	cues := BuildCues(samples, Options{TrailingDuration: 1.5})

	if len(cues) != 3 {
		t.Fatalf("got %d cues, want 3", len(cues))
	}
	for i := 0; i < len(cues)-1; i++ {
		if cues[i].End != cues[i+1].Start {
			t.Fatalf("cue %d end = %v, want next start %v", i, cues[i].End, cues[i+1].Start)
		}
	}
	last := cues[len(cues)-1]
	if math.Abs((last.End-last.Start)-1.5) > 1e-9 {
		t.Fatalf("final cue duration = %v, want trailing 1.5", last.End-last.Start)
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Fatalf("cue %d has index %d, want %d", i, cue.Index, i+1)
		}
	}
}

func TestBuildCuesClampsNonMonotonic(t *testing.T) {
	samples := []telemetry.Sample{sampleAt(5), sampleAt(5), sampleAt(3)}
	cues := BuildCues(samples, Options{MinDuration: 0.25})

	if cues[0].End != 5.25 {
		t.Fatalf("stalled cue end = %v, want clamp to 5.25", cues[0].End)
	}
	if cues[1].End != 5.25 {
		t.Fatalf("reversed cue end = %v, want clamp to 5.25", cues[1].End)
	}
	if cues[2].End != 4 {
		t.Fatalf("final cue end = %v, want 3 + default trailing", cues[2].End)
	}
}

func TestBuildCuesDefaultDurations(t *testing.T) {
	cues := BuildCues([]telemetry.Sample{sampleAt(2), sampleAt(2)}, Options{})
	if got := cues[0].End - cues[0].Start; math.Abs(got-DefaultMinCueSeconds) > 1e-9 {
		t.Fatalf("clamped duration = %v, want default floor", got)
	}
	if got := cues[1].End - cues[1].Start; math.Abs(got-DefaultTrailingSeconds) > 1e-9 {
		t.Fatalf("trailing duration = %v, want default", got)
	}
}

func TestCaptionComposition(t *testing.T) {
	sample := telemetry.Sample{
		Elapsed:  1,
		Display:  "1.000s",
		Speed:    floatPtr(62.5),
		Latitude: floatPtr(47.6097),
	}
	cues := BuildCues([]telemetry.Sample{sample}, Options{UnitLabel: "km/h", IncludeTime: true})
	want := []string{"Time: 1.000s", "Speed: 62.5 km/h", "Lat/Lon: 47.6097, n/a"}
	if !reflect.DeepEqual(cues[0].Lines, want) {
		t.Fatalf("caption lines = %q, want %q", cues[0].Lines, want)
	}
}

func TestCaptionFullPosition(t *testing.T) {
	sample := telemetry.Sample{
		Elapsed:   0,
		Speed:     floatPtr(30),
		Latitude:  floatPtr(51.5007),
		Longitude: floatPtr(-0.1246),
	}
	cues := BuildCues([]telemetry.Sample{sample}, Options{UnitLabel: "mph"})
	want := []string{"Speed: 30 mph", "Lat/Lon: 51.5007, -0.1246"}
	if !reflect.DeepEqual(cues[0].Lines, want) {
		t.Fatalf("caption lines = %q, want %q", cues[0].Lines, want)
	}
}

func TestCaptionTrimsConvertedSpeed(t *testing.T) {
	sample := telemetry.Sample{Elapsed: 0, Speed: floatPtr(62.13711922373339)}
	cues := BuildCues([]telemetry.Sample{sample}, Options{UnitLabel: "mph"})
	if got := cues[0].Lines[0]; got != "Speed: 62.137 mph" {
		t.Fatalf("speed line = %q, want rounded to three decimals", got)
	}
}

func TestCaptionEmptySampleKeepsSlot(t *testing.T) {
	cues := BuildCues([]telemetry.Sample{sampleAt(0)}, Options{})
	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1", len(cues))
	}
	if len(cues[0].Lines) != 0 {
		t.Fatalf("empty sample produced lines %q", cues[0].Lines)
	}
	if cues[0].Index != 1 || cues[0].End != DefaultTrailingSeconds {
		t.Fatalf("empty sample cue = %+v, want a normally timed slot", cues[0])
	}
}

func TestCaptionTimeLineOptional(t *testing.T) {
	sample := telemetry.Sample{Elapsed: 0, Display: "0.000s", Speed: floatPtr(10)}
	withTime := BuildCues([]telemetry.Sample{sample}, Options{UnitLabel: "mph", IncludeTime: true})
	withoutTime := BuildCues([]telemetry.Sample{sample}, Options{UnitLabel: "mph"})
	if withTime[0].Lines[0] != "Time: 0.000s" {
		t.Fatalf("time line missing, got %q", withTime[0].Lines)
	}
	if withoutTime[0].Lines[0] != "Speed: 10 mph" {
		t.Fatalf("time line should be absent, got %q", withoutTime[0].Lines)
	}
}

func TestBuildCuesEmptyInput(t *testing.T) {
	if cues := BuildCues(nil, Options{}); len(cues) != 0 {
		t.Fatalf("nil samples produced %d cues", len(cues))
	}
}
