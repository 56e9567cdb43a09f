package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSpeed()
	if err := c.normalizeTranscode(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSpeed() {
	c.Speed.SourceUnit = strings.ToLower(strings.TrimSpace(c.Speed.SourceUnit))
	if c.Speed.SourceUnit == "" {
		c.Speed.SourceUnit = defaultSourceUnit
	}
	c.Speed.DisplayUnit = strings.ToLower(strings.TrimSpace(c.Speed.DisplayUnit))
	if c.Speed.DisplayUnit == "" {
		c.Speed.DisplayUnit = defaultDisplayUnit
	}
}

// normalizeTranscode applies environment overrides and expands binary paths.
// Environment variables win over file values so a packaged ffmpeg can be
// swapped in without editing the config.
func (c *Config) normalizeTranscode() error {
	if value, ok := os.LookupEnv("DASHCAP_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Transcode.FFmpegBinary = value
	}
	if value, ok := os.LookupEnv("DASHCAP_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Transcode.FFprobeBinary = value
	}

	c.Transcode.FFmpegBinary = strings.TrimSpace(c.Transcode.FFmpegBinary)
	if c.Transcode.FFmpegBinary == "" {
		c.Transcode.FFmpegBinary = defaultFFmpegBinary
	}
	c.Transcode.FFprobeBinary = strings.TrimSpace(c.Transcode.FFprobeBinary)
	if c.Transcode.FFprobeBinary == "" {
		c.Transcode.FFprobeBinary = defaultFFprobeBinary
	}

	// Bare names stay bare for PATH lookup; only explicit home-relative
	// paths get expanded.
	var err error
	if strings.HasPrefix(c.Transcode.FFmpegBinary, "~") {
		if c.Transcode.FFmpegBinary, err = expandPath(c.Transcode.FFmpegBinary); err != nil {
			return fmt.Errorf("transcode.ffmpeg_binary: %w", err)
		}
	}
	if strings.HasPrefix(c.Transcode.FFprobeBinary, "~") {
		if c.Transcode.FFprobeBinary, err = expandPath(c.Transcode.FFprobeBinary); err != nil {
			return fmt.Errorf("transcode.ffprobe_binary: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
