package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"demosongs/internal/config"
	"demosongs/internal/harvest"
)

// dumpToConfiguredDir is the --dump value used when the flag has no argument.
const dumpToConfiguredDir = "-"

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var offline bool
	var outputPath string
	var dumpDir string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Fetch sound demo descriptions and write the songs file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(offline, func(runner *harvest.Runner, cfg *config.Config) error {
				opts := harvest.Options{
					Offline:    offline,
					OutputPath: strings.TrimSpace(outputPath),
					DumpDir:    resolveDumpDir(cfg, dumpDir),
				}
				if opts.OutputPath != "" {
					expanded, err := config.ExpandPath(opts.OutputPath)
					if err != nil {
						return fmt.Errorf("resolve output path: %w", err)
					}
					opts.OutputPath = expanded
				}

				summary, err := runner.Run(cmd.Context(), opts)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %d titles to %s\n", len(summary.Titles), summary.OutputPath)
				renderReport(out, summary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Use cached descriptions instead of the YouTube API")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Songs file path (defaults to paths.output_file)")
	cmd.Flags().StringVar(&dumpDir, "dump", "", "Also dump descriptions to DIR; without a value uses paths.debug_dir")
	cmd.Flags().Lookup("dump").NoOptDefVal = dumpToConfiguredDir
	return cmd
}

func resolveDumpDir(cfg *config.Config, value string) string {
	switch strings.TrimSpace(value) {
	case "":
		return ""
	case dumpToConfiguredDir:
		return cfg.Paths.DebugDir
	default:
		expanded, err := config.ExpandPath(strings.TrimSpace(value))
		if err != nil {
			return strings.TrimSpace(value)
		}
		return expanded
	}
}
