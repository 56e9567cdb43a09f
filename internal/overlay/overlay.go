package overlay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"dashcap/internal/config"
	"dashcap/internal/history"
	"dashcap/internal/logging"
	"dashcap/internal/media/ffprobe"
	"dashcap/internal/recording"
	"dashcap/internal/services"
	"dashcap/internal/services/ffmpeg"
	"dashcap/internal/srt"
	"dashcap/internal/telemetry"
	"dashcap/internal/units"
)

// Burner produces a subtitled video from a recording and its SRT track.
type Burner interface {
	Burn(ctx context.Context, req ffmpeg.Request) (ffmpeg.Result, error)
}

// Prober reports media details used for advisory subtitle validation.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Journal records completed runs when history is enabled.
type Journal interface {
	Record(ctx context.Context, run history.Run) (history.Run, error)
}

// Request describes one conversion run.
type Request struct {
	Folder      string
	SRTOutput   string
	OutputVideo string
	SRTOnly     bool
	SourceUnit  string
	TargetUnit  string
}

// Result summarizes a completed conversion run.
type Result struct {
	RunID           string
	VideoPath       string
	MetadataPath    string
	SubtitlePath    string
	OutputVideoPath string
	SampleCount     int
	SkippedCount    int
	Issues          []string
}

// Service coordinates the conversion pipeline.
type Service struct {
	cfg     *config.Config
	logger  *slog.Logger
	burner  Burner
	prober  Prober
	journal Journal
}

// New constructs the service with the default ffmpeg/ffprobe collaborators
// and no journal.
func New(cfg *config.Config, logger *slog.Logger) *Service {
	burner := ffmpeg.NewBurner(logger, cfg.Transcode.FFmpegBinary)
	prober := binaryProber{binary: cfg.Transcode.FFprobeBinary}
	return NewWithDependencies(cfg, logger, burner, prober, nil)
}

// NewWithDependencies allows injecting collaborators (used in tests and by
// the CLI when history is enabled).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, burner Burner, prober Prober, journal Journal) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "overlay"),
		burner:  burner,
		prober:  prober,
		journal: journal,
	}
}

// Process runs one conversion. The subtitle file is written before any
// transcode starts and survives transcode failures.
func (s *Service) Process(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithFolder(ctx, req.Folder)
	logger := logging.WithContext(ctx, s.logger)

	source, target, err := s.resolveUnits(req)
	if err != nil {
		return nil, err
	}

	pair, err := recording.Resolve(req.Folder)
	if err != nil {
		return nil, fmt.Errorf("resolve recording: %w", err)
	}

	result := &Result{
		RunID:        runID,
		VideoPath:    pair.VideoPath,
		MetadataPath: pair.MetadataPath,
	}
	logger.Info(
		"conversion started",
		logging.String("video", pair.VideoPath),
		logging.String("metadata", pair.MetadataPath),
	)

	raw, err := os.ReadFile(pair.MetadataPath)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	report, err := telemetry.Parse(raw, telemetry.Options{SourceUnit: source, TargetUnit: target})
	if err != nil {
		return nil, err
	}
	result.SampleCount = len(report.Samples)
	result.SkippedCount = len(report.Skipped)

	for _, diag := range report.Skipped {
		logger.Warn(
			"telemetry element skipped",
			logging.String(logging.FieldEventType, "telemetry_element_skipped"),
			logging.Int("element_index", diag.Index),
			logging.Error(diag.Err),
		)
	}
	logger.Info(
		"telemetry parsed",
		logging.Int("total", report.Total),
		logging.Int("sample_count", result.SampleCount),
		logging.Int("skipped_count", result.SkippedCount),
	)

	cues := srt.BuildCues(report.Samples, srt.Options{
		TrailingDuration: s.cfg.Captions.TrailingSeconds,
		MinDuration:      s.cfg.Captions.MinCueSeconds,
		UnitLabel:        target.Label(),
		IncludeTime:      s.cfg.Captions.IncludeTime,
	})
	result.SubtitlePath = s.subtitlePath(req, pair)
	if err := srt.WriteFile(result.SubtitlePath, cues); err != nil {
		return nil, fmt.Errorf("write subtitles: %w", err)
	}
	logger.Info(
		"subtitles written",
		logging.String("path", result.SubtitlePath),
		logging.Int("cue_count", len(cues)),
	)

	s.validateSubtitles(ctx, pair.VideoPath, result)

	if burnTarget := s.outputVideoPath(req, pair); burnTarget != "" {
		if err := s.burn(ctx, pair, result, burnTarget); err != nil {
			s.recordRun(ctx, result, history.StatusFailed, err)
			return nil, err
		}
	}

	s.recordRun(ctx, result, history.StatusCompleted, nil)
	logger.Info(
		"conversion completed",
		logging.String(logging.FieldEventType, "conversion_complete"),
		logging.String("subtitle", result.SubtitlePath),
		logging.String("output_video", result.OutputVideoPath),
	)
	return result, nil
}

func (s *Service) resolveUnits(req Request) (units.Unit, units.Unit, error) {
	sourceName := strings.TrimSpace(req.SourceUnit)
	if sourceName == "" {
		sourceName = s.cfg.Speed.SourceUnit
	}
	targetName := strings.TrimSpace(req.TargetUnit)
	if targetName == "" {
		targetName = s.cfg.Speed.DisplayUnit
	}

	source, err := units.Parse(sourceName)
	if err != nil {
		return units.Unit{}, units.Unit{}, services.Wrap(services.ErrConfiguration, "overlay", "parse source unit", "", err)
	}
	target, err := units.Parse(targetName)
	if err != nil {
		return units.Unit{}, units.Unit{}, services.Wrap(services.ErrConfiguration, "overlay", "parse display unit", "", err)
	}
	return source, target, nil
}

// validateSubtitles probes the video and checks the written track against its
// duration. Failures here are advisory; telemetry gaps and odd recordings are
// expected in the wild.
func (s *Service) validateSubtitles(ctx context.Context, videoPath string, result *Result) {
	if s.prober == nil {
		return
	}
	logger := logging.WithContext(ctx, s.logger)

	media, err := s.prober.Inspect(ctx, videoPath)
	if err != nil {
		logger.Warn(
			"video probe failed",
			logging.String(logging.FieldEventType, "probe_failed"),
			logging.Error(err),
		)
		return
	}

	issues := srt.Validate(result.SubtitlePath, media.DurationSeconds())
	for _, issue := range issues {
		logger.Warn(
			"subtitle validation issue",
			logging.String(logging.FieldEventType, "subtitle_validation_issue"),
			logging.String("issue", issue),
		)
	}
	result.Issues = issues
}

func (s *Service) burn(ctx context.Context, pair recording.Pair, result *Result, target string) error {
	burnCtx := ctx
	if timeout := s.cfg.Transcode.TimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		burnCtx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	burnResult, err := s.burner.Burn(burnCtx, ffmpeg.Request{
		VideoPath:    pair.VideoPath,
		SubtitlePath: result.SubtitlePath,
		OutputPath:   target,
	})
	if err != nil {
		return err
	}
	result.OutputVideoPath = burnResult.OutputPath
	return nil
}

// recordRun journals the outcome when a journal is attached. Conversions
// never fail because the journal does.
func (s *Service) recordRun(ctx context.Context, result *Result, status string, runErr error) {
	if s.journal == nil {
		return
	}
	folder, _ := services.FolderFromContext(ctx)
	run := history.Run{
		ID:           result.RunID,
		Folder:       folder,
		VideoPath:    result.VideoPath,
		MetadataPath: result.MetadataPath,
		SubtitlePath: result.SubtitlePath,
		OutputPath:   result.OutputVideoPath,
		SampleCount:  result.SampleCount,
		SkippedCount: result.SkippedCount,
		Status:       status,
	}
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	}
	if _, err := s.journal.Record(ctx, run); err != nil {
		logging.WithContext(ctx, s.logger).Warn(
			"history record failed",
			logging.String(logging.FieldEventType, "history_record_failed"),
			logging.Error(err),
		)
	}
}

func (s *Service) subtitlePath(req Request, pair recording.Pair) string {
	if explicit := strings.TrimSpace(req.SRTOutput); explicit != "" {
		return explicit
	}
	base := videoStem(pair.VideoPath) + ".srt"
	return filepath.Join(s.outputDir(pair), base)
}

// outputVideoPath returns the burn destination, or empty when this run only
// emits subtitles.
func (s *Service) outputVideoPath(req Request, pair recording.Pair) string {
	if req.SRTOnly {
		return ""
	}
	if explicit := strings.TrimSpace(req.OutputVideo); explicit != "" {
		return explicit
	}
	if !s.cfg.Transcode.BurnDefault {
		return ""
	}
	ext := filepath.Ext(pair.VideoPath)
	return filepath.Join(s.outputDir(pair), videoStem(pair.VideoPath)+"_overlay"+ext)
}

func (s *Service) outputDir(pair recording.Pair) string {
	if dir := strings.TrimSpace(s.cfg.Paths.OutputDir); dir != "" {
		return dir
	}
	return filepath.Dir(pair.VideoPath)
}

func videoStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type binaryProber struct {
	binary string
}

// NewProber returns a Prober backed by the given ffprobe binary.
func NewProber(binary string) Prober {
	return binaryProber{binary: binary}
}

func (p binaryProber) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.binary, path)
}
