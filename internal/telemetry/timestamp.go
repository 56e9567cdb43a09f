package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampKind names how a raw timestamp value was resolved.
type TimestampKind string

const (
	// KindElapsed covers raw numbers and numeric strings, already expressed
	// as seconds on the timeline.
	KindElapsed TimestampKind = "elapsed"
	// KindClock covers H:MM:SS clock strings converted to seconds.
	KindClock TimestampKind = "clock"
	// KindAbsolute covers ISO-8601 datetimes offset against the timeline
	// origin.
	KindAbsolute TimestampKind = "absolute"
)

// resolvedStamp is the outcome of one timestamp resolution. elapsed holds the
// value for relative kinds, instant for KindAbsolute.
type resolvedStamp struct {
	kind    TimestampKind
	elapsed float64
	instant time.Time
	display string
}

// resolveTimestamp dispatches a raw timestamp value through the accepted
// representations in fixed order: JSON number, numeric string, clock string,
// ISO-8601 datetime.
func resolveTimestamp(value any) (resolvedStamp, error) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return resolvedStamp{}, fmt.Errorf("%w: %s", ErrUnparseableTimestamp, v.String())
		}
		return resolvedStamp{kind: KindElapsed, elapsed: f, display: elapsedDisplay(f)}, nil
	case string:
		return resolveTimestampString(v)
	default:
		return resolvedStamp{}, fmt.Errorf("%w: unsupported value type %T", ErrUnparseableTimestamp, value)
	}
}

func resolveTimestampString(raw string) (resolvedStamp, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return resolvedStamp{}, fmt.Errorf("%w: empty string", ErrUnparseableTimestamp)
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return resolvedStamp{kind: KindElapsed, elapsed: f, display: elapsedDisplay(f)}, nil
	}
	if seconds, ok := parseClockString(value); ok {
		return resolvedStamp{kind: KindClock, elapsed: seconds, display: value}, nil
	}
	if instant, ok := parseISODatetime(value); ok {
		return resolvedStamp{kind: KindAbsolute, instant: instant, display: instant.Format(time.RFC3339)}, nil
	}
	return resolvedStamp{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, raw)
}

func elapsedDisplay(seconds float64) string {
	return fmt.Sprintf("%.3fs", seconds)
}

// parseClockString converts H:MM:SS with an optional 1-3 digit fraction
// (period or comma separator) to seconds. Accepting the comma form lets
// rendered subtitle timestamps parse back through the same path.
func parseClockString(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hoursText, minutesText, secondsText := parts[0], parts[1], parts[2]

	fracText := ""
	if i := strings.IndexAny(secondsText, ".,"); i >= 0 {
		fracText = secondsText[i+1:]
		secondsText = secondsText[:i]
		if fracText == "" || len(fracText) > 3 || !allDigits(fracText) {
			return 0, false
		}
	}
	if len(hoursText) == 0 || len(hoursText) > 2 || !allDigits(hoursText) {
		return 0, false
	}
	if len(minutesText) != 2 || !allDigits(minutesText) {
		return 0, false
	}
	if len(secondsText) != 2 || !allDigits(secondsText) {
		return 0, false
	}

	hours, _ := strconv.Atoi(hoursText)
	minutes, _ := strconv.Atoi(minutesText)
	seconds, _ := strconv.Atoi(secondsText)
	if minutes > 59 || seconds > 59 {
		return 0, false
	}
	total := float64(hours*3600 + minutes*60 + seconds)
	if fracText != "" {
		frac, _ := strconv.Atoi(fracText)
		total += float64(frac) / math.Pow10(len(fracText))
	}
	return total, true
}

// Offset-bearing layouts first, then naive layouts pinned to UTC. Both
// families accept a T or space separator and optional fractional seconds.
var (
	isoOffsetLayouts = []string{
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02T15:04:05.999999999Z07",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999Z0700",
		"2006-01-02 15:04:05.999999999Z07",
	}
	isoNaiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
	}
)

func parseISODatetime(value string) (time.Time, bool) {
	for _, layout := range isoOffsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range isoNaiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
