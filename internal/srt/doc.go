// Package srt turns telemetry samples into SubRip subtitle cues.
//
// Cue timing follows the sample timeline: each caption holds until the next
// sample arrives, the final one for a configurable trailing duration.
// Rendering is deterministic, so a generated file can be compared byte for
// byte against a golden copy.
package srt
