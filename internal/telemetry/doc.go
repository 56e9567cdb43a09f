// Package telemetry extracts timestamped driving samples from recorder JSON.
//
// Recorders disagree on document shape and timestamp encoding, so the parser
// accepts a top-level array or a data/entries/points wrapper object and
// resolves each timestamp through one ordered dispatch: raw seconds, numeric
// string, clock string, ISO-8601 datetime. Elements that cannot be resolved
// are skipped and reported rather than aborting the document; dashcam
// telemetry is routinely partial.
package telemetry
