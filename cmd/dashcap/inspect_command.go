package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"dashcap/internal/recording"
	"dashcap/internal/telemetry"
	"dashcap/internal/units"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <folder>",
		Short: "Parse a recording folder and show its telemetry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := units.Parse(cfg.Speed.SourceUnit)
			if err != nil {
				return fmt.Errorf("speed.source_unit: %w", err)
			}
			target, err := units.Parse(cfg.Speed.DisplayUnit)
			if err != nil {
				return fmt.Errorf("speed.display_unit: %w", err)
			}

			pair, err := recording.Resolve(args[0])
			if err != nil {
				return fmt.Errorf("resolve recording: %w", err)
			}
			raw, err := os.ReadFile(pair.MetadataPath)
			if err != nil {
				return fmt.Errorf("read metadata: %w", err)
			}
			report, err := telemetry.Parse(raw, telemetry.Options{SourceUnit: source, TargetUnit: target})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video:    %s\n", pair.VideoPath)
			fmt.Fprintf(out, "Metadata: %s\n", pair.MetadataPath)

			samples := report.Samples
			truncated := 0
			if limit > 0 && len(samples) > limit {
				truncated = len(samples) - limit
				samples = samples[:limit]
			}

			if len(samples) > 0 {
				rows := make([][]string, 0, len(samples))
				for i, sample := range samples {
					display := sample.Display
					if display == "" {
						display = "n/a"
					}
					speed := "n/a"
					if sample.Speed != nil {
						speed = formatSpeedValue(*sample.Speed)
					}
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						strconv.FormatFloat(sample.Elapsed, 'f', 3, 64) + "s",
						display,
						speed,
						formatOptionalCoordinate(sample.Latitude),
						formatOptionalCoordinate(sample.Longitude),
					})
				}
				headers := []string{"#", "Elapsed", "Time", "Speed (" + target.Label() + ")", "Latitude", "Longitude"}
				aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns, shouldColorize(out)))
			}
			if truncated > 0 {
				countPrinter.Fprintf(out, "(+%d more samples)\n", truncated)
			}

			for _, diag := range report.Skipped {
				fmt.Fprintf(out, "Skipped element %d: %v\n", diag.Index, diag.Err)
			}
			countPrinter.Fprintf(out, "%d elements: %d parsed, %d skipped\n",
				report.Total, len(report.Samples), len(report.Skipped))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many samples (0 shows all)")
	return cmd
}
