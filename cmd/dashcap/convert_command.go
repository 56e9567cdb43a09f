package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashcap/internal/overlay"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		srtOutput   string
		outputVideo string
		srtOnly     bool
		sourceUnit  string
		speedUnit   string
	)

	cmd := &cobra.Command{
		Use:   "convert <folder>",
		Short: "Convert one recording folder into SRT subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := newCommandLogger(cfg, "stderr")
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			svc, cleanup, err := newConversionService(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := svc.Process(cmd.Context(), overlay.Request{
				Folder:      args[0],
				SRTOutput:   srtOutput,
				OutputVideo: outputVideo,
				SRTOnly:     srtOnly,
				SourceUnit:  sourceUnit,
				TargetUnit:  speedUnit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			countPrinter.Fprintf(out, "Converted %d of %d telemetry elements\n",
				result.SampleCount, result.SampleCount+result.SkippedCount)
			if result.SkippedCount > 0 {
				countPrinter.Fprintf(out, "Skipped %d malformed elements; see the log for details\n",
					result.SkippedCount)
			}
			fmt.Fprintf(out, "Subtitles: %s\n", result.SubtitlePath)
			if result.OutputVideoPath != "" {
				fmt.Fprintf(out, "Overlay video: %s\n", result.OutputVideoPath)
			}
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "Validation: %s\n", issue)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&srtOutput, "srt-output", "", "Write subtitles to this path")
	cmd.Flags().StringVar(&outputVideo, "output-video", "", "Burn subtitles into this video file")
	cmd.Flags().BoolVar(&srtOnly, "srt-only", false, "Skip burning even when burn_default is set")
	cmd.Flags().StringVar(&sourceUnit, "source-unit", "", "Unit recorded in the telemetry (mph or kph)")
	cmd.Flags().StringVar(&speedUnit, "speed-unit", "", "Unit shown in captions (mph or kph)")
	return cmd
}
