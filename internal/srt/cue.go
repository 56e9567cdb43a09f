package srt

import (
	"math"
	"strconv"

	"dashcap/internal/telemetry"
)

const (
	// DefaultTrailingSeconds keeps the final caption on screen after its
	// sample.
	DefaultTrailingSeconds = 1.0
	// DefaultMinCueSeconds is the duration floor applied when consecutive
	// samples stall or step backwards.
	DefaultMinCueSeconds = 0.1
)

// Options control cue timing and caption text. Non-positive durations fall
// back to the package defaults.
type Options struct {
	TrailingDuration float64
	MinDuration      float64
	// UnitLabel is rendered after speed values.
	UnitLabel string
	// IncludeTime prepends a Time: line carrying the source timestamp.
	IncludeTime bool
}

// Cue is one subtitle entry. Indexes are 1-based and contiguous.
type Cue struct {
	Index int
	Start float64
	End   float64
	Lines []string
}

// BuildCues maps samples onto cues in input order. Each cue ends where the
// next sample starts; equal or decreasing elapsed values get the minimum
// duration instead of a zero or negative one. A sample without any usable
// field still occupies a timed slot so cue numbering tracks sample order.
func BuildCues(samples []telemetry.Sample, opts Options) []Cue {
	trailing := opts.TrailingDuration
	if trailing <= 0 {
		trailing = DefaultTrailingSeconds
	}
	floor := opts.MinDuration
	if floor <= 0 {
		floor = DefaultMinCueSeconds
	}

	cues := make([]Cue, 0, len(samples))
	for i, sample := range samples {
		start := sample.Elapsed
		end := start + trailing
		if i+1 < len(samples) {
			end = samples[i+1].Elapsed
		}
		if end <= start {
			end = start + floor
		}
		cues = append(cues, Cue{
			Index: i + 1,
			Start: start,
			End:   end,
			Lines: captionLines(sample, opts),
		})
	}
	return cues
}

// captionLines composes the caption in fixed field order: time, speed,
// position. A missing half of the coordinate pair renders as n/a.
func captionLines(sample telemetry.Sample, opts Options) []string {
	var lines []string
	if opts.IncludeTime && sample.Display != "" {
		lines = append(lines, "Time: "+sample.Display)
	}
	if sample.Speed != nil {
		line := "Speed: " + formatSpeed(*sample.Speed)
		if opts.UnitLabel != "" {
			line += " " + opts.UnitLabel
		}
		lines = append(lines, line)
	}
	if sample.Latitude != nil || sample.Longitude != nil {
		lines = append(lines, "Lat/Lon: "+formatCoordinate(sample.Latitude)+", "+formatCoordinate(sample.Longitude))
	}
	return lines
}

// formatSpeed rounds to three decimals before trimming digits; unit
// conversion would otherwise leak full float tails into the caption.
func formatSpeed(value float64) string {
	rounded := math.Round(value*1000) / 1000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// formatCoordinate keeps full precision. Rounding a coordinate moves the
// reported position.
func formatCoordinate(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
