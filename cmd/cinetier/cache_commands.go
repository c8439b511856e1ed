package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cinetier/internal/film"
	"cinetier/internal/pipeline"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the film cache",
	}

	cacheCmd.AddCommand(newCacheGetCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <tmdb-id>",
		Short: "Show a cached film without contacting TMDB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid TMDB id %q", args[0])
			}
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				f, ok := stack.Cache.Get(cmd.Context(), id)
				if !ok {
					return fmt.Errorf("film %d is not cached", id)
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, f)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFilms([]*film.Film{f}))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached film",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				if err := stack.Cache.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared film cache (backend: %s)\n", cfg.Cache.Backend)
				return nil
			})
		},
	}
}
