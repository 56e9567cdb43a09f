package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// buildVersion is stamped at release time via -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the dashcap version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "dashcap %s (%s/%s)\n", buildVersion, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
