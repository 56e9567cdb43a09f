// Package history keeps an opt-in SQLite journal of conversion runs.
//
// Each run records the recording folder, the resolved input files, the
// subtitle and optional burned-video outputs, sample counts, and the final
// status. The journal is disabled by default; when enabled it backs the
// `dashcap history` command. Conversions never depend on it succeeding.
package history
