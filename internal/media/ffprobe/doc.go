// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// dashcap only consults the probe to sanity-check generated subtitles
// against the recording, so the surface is small: Inspect runs the binary,
// Result exposes the container duration and stream counts.
package ffprobe
