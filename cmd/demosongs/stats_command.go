package main

import (
	"github.com/spf13/cobra"

	"demosongs/internal/config"
	"demosongs/internal/harvest"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report extraction strategy and filter counts without writing output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(offline, func(runner *harvest.Runner, _ *config.Config) error {
				summary, err := runner.Run(cmd.Context(), harvest.Options{Offline: offline, DryRun: true})
				if err != nil {
					return err
				}
				renderReport(cmd.OutOrStdout(), summary)
				renderTables(cmd.OutOrStdout(), runner.Tables())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Use cached descriptions instead of the YouTube API")
	return cmd
}
