package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cinetier/internal/pipeline"
	"cinetier/internal/ranking"
	"cinetier/internal/services"
)

func newRankCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <username>",
		Short: "Rank a Letterboxd profile by its four favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				result, err := stack.Service.RankByProfile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, result)
				}
				renderProfileRanking(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <tmdb-id> <tmdb-id> <tmdb-id> <tmdb-id>",
		Short: "Rank four films given by TMDB id",
		Args:  cobra.ExactArgs(pipeline.FilmsPerRanking),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseFilmIDs(args)
			if err != nil {
				return err
			}
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				result, err := stack.Service.RankByFilmIDs(cmd.Context(), ids)
				if err != nil {
					return err
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, result)
				}
				renderRanking(cmd.OutOrStdout(), "", result)
				return nil
			})
		},
	}
}

func parseFilmIDs(args []string) ([pipeline.FilmsPerRanking]int64, error) {
	var ids [pipeline.FilmsPerRanking]int64
	if len(args) != len(ids) {
		return ids, fmt.Errorf("exactly %d film ids required, got %d", len(ids), len(args))
	}
	for i, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return ids, fmt.Errorf("invalid TMDB id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Show which TMDB film a title and year resolve to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.TMDBConfigured() {
				return services.Wrap(services.ErrConfiguration, "cli", "resolve", "tmdb api key not configured (set TMDB_API_KEY or [tmdb] api_key)", nil)
			}
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				match, err := stack.Resolver.Resolve(cmd.Context(), strings.Join(args, " "), year)
				if err != nil {
					return err
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, match)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMatch(match))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Release year to constrain the match")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search TMDB films with their directors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				hits, err := stack.Service.SearchFilms(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if ctx.jsonOutput(cmd) {
					return writeJSON(cmd, hits)
				}
				if len(hits) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No films found")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSearchHits(hits))
				return nil
			})
		},
	}
}

func newTiersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "tiers",
		Short:       "List the ten taste tiers",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tiers := ranking.Tiers()
			if ctx.jsonOutput(cmd) {
				return writeJSON(cmd, tiers)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTiers(tiers))
			return nil
		},
	}
}
