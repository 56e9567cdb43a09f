// Package config loads, normalizes, and validates dashcap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DASHCAP_FFMPEG. The Config type centralizes every knob the CLI and watcher
// need, so output directories, speed units, and caption timing are discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical unit codes, and clear validation errors.
package config
