package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags globalFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "demosongs",
		Short:         "Extract song titles from keyboard sound demo descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Override logging.format (console, json)")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
