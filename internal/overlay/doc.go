// Package overlay orchestrates one telemetry conversion end to end.
//
// A run resolves the recording folder to its video/metadata pair, parses the
// telemetry JSON, emits the SRT track, validates it against the probed video
// duration, and optionally burns the track into a new video. Skipped
// telemetry elements are logged and counted, never fatal; a transcode
// failure is fatal but always leaves the written subtitle file behind.
package overlay
