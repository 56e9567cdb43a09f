package config

import (
	"errors"
	"fmt"
	"strings"

	"dashcap/internal/units"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSpeed(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSpeed() error {
	if _, err := units.Parse(c.Speed.SourceUnit); err != nil {
		return fmt.Errorf("speed.source_unit: %w", err)
	}
	if _, err := units.Parse(c.Speed.DisplayUnit); err != nil {
		return fmt.Errorf("speed.display_unit: %w", err)
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if c.Captions.TrailingSeconds <= 0 {
		return errors.New("captions.trailing_seconds must be positive")
	}
	if c.Captions.MinCueSeconds <= 0 {
		return errors.New("captions.min_cue_seconds must be positive")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if strings.TrimSpace(c.Transcode.FFmpegBinary) == "" {
		return errors.New("transcode.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.Transcode.FFprobeBinary) == "" {
		return errors.New("transcode.ffprobe_binary must be set")
	}
	if c.Transcode.TimeoutSeconds <= 0 {
		return errors.New("transcode.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.SettleSeconds < 0 {
		return errors.New("watch.settle_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
