package preflight

import (
	"path/filepath"

	"dashcap/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Directory checks only run for locations the config actually uses.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary("FFmpeg", cfg.Transcode.FFmpegBinary),
		CheckBinary("FFprobe", cfg.Transcode.FFprobeBinary),
	}

	if cfg.Paths.OutputDir != "" {
		results = append(results,
			CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
			CheckFreeSpace("Output free space", cfg.Paths.OutputDir),
		)
	}
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.History.Path)))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
