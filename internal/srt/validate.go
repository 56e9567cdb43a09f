package srt

import (
	"fmt"
	"math"
	"os"
	"strings"
)

const (
	// pastEndToleranceSeconds is how far the final cue may outlive the video
	// before validation flags it.
	pastEndToleranceSeconds = 2.0
	// coverageFloorRatio flags subtitle tracks that stop well before the
	// video does.
	coverageFloorRatio = 0.5
)

// CountCues reports how many entries a rendered subtitle file contains.
func CountCues(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read srt: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, nil
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count, nil
}

// bounds returns the earliest start and latest end across all timing lines.
func bounds(path string) (float64, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read srt: %w", err)
	}
	first := math.Inf(1)
	var last float64
	found := false
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		if start, err := ParseTimestamp(parts[0]); err == nil {
			if start < first {
				first = start
			}
			found = true
		}
		if end, err := ParseTimestamp(parts[1]); err == nil && end > last {
			last = end
		}
	}
	if !found {
		return 0, last, nil
	}
	return first, last, nil
}

// Validate inspects a written subtitle file and reports advisory issues:
// empty files, unreadable timing lines, and timing that disagrees with the
// probed video duration. An empty slice means the file looks sound.
func Validate(path string, videoSeconds float64) []string {
	var issues []string

	cues, err := CountCues(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("read_error: %v", err))
		return issues
	}
	if cues == 0 {
		issues = append(issues, "empty_subtitle_file")
		return issues
	}

	first, last, err := bounds(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("timestamp_parse_error: %v", err))
		return issues
	}
	if first == 0 && last == 0 {
		issues = append(issues, "no_valid_timestamps")
		return issues
	}

	if videoSeconds > 0 {
		if delta := last - videoSeconds; delta > pastEndToleranceSeconds {
			issues = append(issues, fmt.Sprintf("subtitle_past_video_end: delta=%.1fs", delta))
		} else if last < videoSeconds*coverageFloorRatio {
			issues = append(issues, fmt.Sprintf("sparse_timeline_coverage: subtitle_end=%.1fs video=%.1fs", last, videoSeconds))
		}
	}
	return issues
}
