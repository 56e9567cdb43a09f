// Package units provides speed unit normalization and conversion.
//
// All speed-related handling (alias resolution, caption labels, linear
// conversion between units) is consolidated here so the telemetry parser and
// the CLI agree on which unit names are accepted and how values scale.
package units
