package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"demosongs/internal/config"
	"demosongs/internal/harvest"
	"demosongs/internal/output"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var offline bool
	var dir string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write each description into good/bad buckets for inspection",
		Long: "Write each description to <dir>/<good|bad>/<pieces>/<index>.txt, where good means a\n" +
			"song list identifier is present and pieces is the hyphen-line split count.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(offline, func(runner *harvest.Runner, cfg *config.Config) error {
				target := cfg.Paths.DebugDir
				if trimmed := strings.TrimSpace(dir); trimmed != "" {
					expanded, err := config.ExpandPath(trimmed)
					if err != nil {
						return fmt.Errorf("resolve dump directory: %w", err)
					}
					target = expanded
				}

				batch, err := runner.Collect(cmd.Context(), offline)
				if err != nil {
					return err
				}
				written, err := output.DumpDescriptions(target, runner.Tables(), batch.Descriptions())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dumped %d descriptions to %s\n", written, target)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Use cached descriptions instead of the YouTube API")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Dump directory (defaults to paths.debug_dir)")
	return cmd
}
