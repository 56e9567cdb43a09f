// Package ffmpeg invokes the ffmpeg binary to burn subtitle tracks into a
// new video copy.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"log/slog"

	"dashcap/internal/logging"
	"dashcap/internal/services"
)

// commandRunner executes an external command. Implementations fold the
// command's combined output into the returned error.
type commandRunner func(ctx context.Context, name string, args ...string) error

// Request describes the inputs for one subtitle burn.
type Request struct {
	VideoPath    string
	SubtitlePath string
	OutputPath   string
}

// Result reports the produced video.
type Result struct {
	OutputPath string
}

// Burner renders a subtitle file into a video through the ffmpeg subtitles
// filter, copying the audio stream untouched.
type Burner struct {
	logger *slog.Logger
	binary string
	run    commandRunner
}

// NewBurner constructs a Burner around the given ffmpeg binary name. An
// empty name falls back to "ffmpeg" on PATH.
func NewBurner(logger *slog.Logger, binary string) *Burner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Burner{
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		binary: binary,
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (b *Burner) WithCommandRunner(r commandRunner) {
	if b != nil && r != nil {
		b.run = r
	}
}

// Burn writes a new video at req.OutputPath with the subtitles rendered in.
// The subtitle file is left in place whether or not the transcode succeeds;
// a partial output from a failed run is removed.
func (b *Burner) Burn(ctx context.Context, req Request) (Result, error) {
	if b == nil {
		return Result{}, fmt.Errorf("burner not initialized")
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		return Result{}, fmt.Errorf("video path is required")
	}
	if strings.TrimSpace(req.SubtitlePath) == "" {
		return Result{}, fmt.Errorf("subtitle path is required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return Result{}, fmt.Errorf("output path is required")
	}

	if _, err := os.Stat(req.VideoPath); err != nil {
		return Result{}, fmt.Errorf("source video not found: %w", err)
	}
	if _, err := os.Stat(req.SubtitlePath); err != nil {
		return Result{}, fmt.Errorf("subtitle file not found: %w", err)
	}
	if dir := filepath.Dir(req.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	args := buildBurnArgs(req)
	if b.logger != nil {
		b.logger.Debug("executing ffmpeg",
			logging.String("video_path", req.VideoPath),
			logging.String("subtitle_path", req.SubtitlePath),
			logging.String("output_path", req.OutputPath),
		)
	}

	if err := b.run(ctx, b.binary, args...); err != nil {
		_ = os.Remove(req.OutputPath)
		return Result{}, services.Wrap(services.ErrExternalTool, "ffmpeg", "burn subtitles", "transcode failed", err)
	}
	if _, err := os.Stat(req.OutputPath); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "ffmpeg", "burn subtitles", "no output file produced", err)
	}

	if b.logger != nil {
		b.logger.Info("subtitles burned into video",
			logging.String(logging.FieldEventType, "subtitle_burn_complete"),
			logging.String("output_path", req.OutputPath),
		)
	}
	return Result{OutputPath: req.OutputPath}, nil
}

// buildBurnArgs constructs the ffmpeg invocation: overwrite the target, read
// the source, render the subtitle filter, copy audio untouched.
func buildBurnArgs(req Request) []string {
	return []string{
		"-y",
		"-i", req.VideoPath,
		"-vf", "subtitles=" + subtitleFilterPath(req.SubtitlePath),
		"-c:a", "copy",
		req.OutputPath,
	}
}

// subtitleFilterPath escapes the characters the ffmpeg filtergraph parser
// treats specially inside the subtitles= argument.
func subtitleFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
		`[`, `\[`,
		`]`, `\]`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return replacer.Replace(path)
}

// defaultCommandRunner executes ffmpeg, folding output into the error.
func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
