package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dashcap/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <root>",
		Short: "Watch a drop directory and convert new recording folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := newCommandLogger(cfg, "stdout")
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			svc, cleanup, err := newConversionService(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			watcher, err := watch.New(cfg, args[0], svc, logger)
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return watcher.Run(signalCtx)
		},
	}
}
