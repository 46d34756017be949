package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the description cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show what the description cache holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer closeStore()
			if store == nil {
				return errors.New("description cache is disabled (cache.enabled = false)")
			}

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			renderCacheStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer closeStore()
			if store == nil {
				return errors.New("description cache is disabled (cache.enabled = false)")
			}

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached descriptions from %s\n", removed, store.Path())
			return nil
		},
	}
}
