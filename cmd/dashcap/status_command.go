package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashcap/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check binaries, directories, and free space",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configKind := statusOK
			configDetail := ctx.configPath
			if !ctx.configExists {
				configKind = statusInfo
				configDetail = ctx.configPath + " (not found, defaults in use)"
			}
			fmt.Fprintln(out, renderStatusLine("Config file", configKind, configDetail, colorize))

			outputDir := cfg.Paths.OutputDir
			if outputDir == "" {
				outputDir = "alongside each recording"
			}
			fmt.Fprintln(out, renderStatusLine("Output directory", statusInfo, outputDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Log directory", statusInfo, cfg.Paths.LogDir, colorize))

			historyKind, historyDetail := statusInfo, "disabled"
			if cfg.History.Enabled {
				historyKind, historyDetail = statusOK, cfg.History.Path
			}
			fmt.Fprintln(out, renderStatusLine("History", historyKind, historyDetail, colorize))
			fmt.Fprintln(out, renderStatusLine("Watch settle", statusInfo,
				fmt.Sprintf("%ds", cfg.Watch.SettleSeconds), colorize))

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cfg)
			for _, result := range results {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			if preflight.AllPassed(results) {
				fmt.Fprintln(out, "All checks passed.")
			} else {
				fmt.Fprintln(out, "Some checks failed.")
			}
			return nil
		},
	}
}
