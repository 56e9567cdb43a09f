package srt

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
)

// FormatTimestamp renders elapsed seconds as a zero-padded HH:MM:SS,mmm
// timestamp. The value is rounded to whole milliseconds first so fractions
// just under a second carry into the next second rather than printing a four
// digit millisecond field. Negative offsets clamp to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3600000
	totalMillis -= hours * 3600000
	minutes := totalMillis / 60000
	totalMillis -= minutes * 60000
	secs := totalMillis / 1000
	millis := totalMillis - secs*1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp back to seconds. The period form
// some tools emit is accepted alongside the standard comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// Render serializes cues as SubRip text: index, timing line, caption lines,
// a blank separator between entries, and exactly one trailing newline. The
// output depends only on the cue slice.
func Render(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}
	var b strings.Builder
	for i, cue := range cues {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n", cue.Index, FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		for _, line := range cue.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteFile renders cues to path atomically. A reader of a previous file at
// the same path never observes a half-written subtitle.
func WriteFile(path string, cues []Cue) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create subtitle directory: %w", err)
		}
	}
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("stage subtitle file: %w", err)
	}
	defer pending.Cleanup()
	if _, err := io.WriteString(pending, Render(cues)); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace subtitle file: %w", err)
	}
	return nil
}
