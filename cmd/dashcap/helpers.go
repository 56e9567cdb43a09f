package main

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dashcap/internal/config"
	"dashcap/internal/history"
	"dashcap/internal/logging"
	"dashcap/internal/overlay"
	"dashcap/internal/services/ffmpeg"
)

// countPrinter renders element counts with thousands separators.
var countPrinter = message.NewPrinter(language.English)

// newCommandLogger builds the structured logger for commands that run
// conversions. stream picks stdout or stderr for the console copy; a file
// copy always lands in the log directory.
func newCommandLogger(cfg *config.Config, stream string) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{stream, filepath.Join(cfg.Paths.LogDir, "dashcap.log")},
	})
}

// newConversionService wires the overlay service, opening the history
// journal when enabled. The returned cleanup closes the journal.
func newConversionService(cfg *config.Config, logger *slog.Logger) (*overlay.Service, func(), error) {
	if !cfg.History.Enabled {
		return overlay.New(cfg, logger), func() {}, nil
	}
	journal, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	svc := overlay.NewWithDependencies(cfg, logger,
		ffmpeg.NewBurner(logger, cfg.Transcode.FFmpegBinary),
		overlay.NewProber(cfg.Transcode.FFprobeBinary),
		journal)
	return svc, func() { _ = journal.Close() }, nil
}

// formatSpeedValue matches the caption rendering: round to three decimals,
// then trim trailing digits.
func formatSpeedValue(value float64) string {
	rounded := math.Round(value*1000) / 1000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func formatOptionalCoordinate(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
