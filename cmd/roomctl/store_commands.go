package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/reflective-room/internal/app"
	"github.com/noah-isme/reflective-room/internal/models"
	"github.com/noah-isme/reflective-room/internal/service"
	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite the submissions sheet to the canonical column layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *app.Store) error {
				migrated, err := store.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				if migrated {
					fmt.Fprintln(cmd.OutOrStdout(), "Submissions migrated to the canonical layout")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Submissions already use the canonical layout")
				}
				return nil
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show submission counts and score totals per author",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *app.Store) error {
				board, err := service.NewStatsService(store.Submissions).Leaderboard(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Submissions: %d\n", board.Total)
				if board.Total == 0 {
					return nil
				}
				fmt.Fprintln(out, "Most poems:")
				fmt.Fprintln(out, renderTable([]string{"Author", "Poems"}, aggregateRows(board.Counts, false), []columnAlignment{alignLeft, alignRight}))
				fmt.Fprintln(out, "Highest scores:")
				fmt.Fprintln(out, renderTable([]string{"Author", "Score"}, aggregateRows(board.Scores, true), []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func aggregateRows(aggs []models.AuthorAggregate, scores bool) [][]string {
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		value := agg.Count
		if scores {
			value = agg.ScoreSum
		}
		rows = append(rows, []string{agg.Author, strconv.Itoa(value)})
	}
	return rows
}

func newFeaturedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Print the currently featured poem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(store *app.Store) error {
				admin := service.NewAdminService(store.Submissions, nil, ctx.logger, service.AdminConfig{})
				featured, err := admin.Featured(cmd.Context())
				out := cmd.OutOrStdout()
				if err != nil {
					if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
						fmt.Fprintln(out, "No poem is featured")
						return nil
					}
					return err
				}
				fmt.Fprintf(out, "Row %d by %s\n", featured.Row, featured.Byline())
				if featured.Title != "" {
					fmt.Fprintln(out, featured.Title)
				}
				fmt.Fprintln(out, featured.Poem)
				return nil
			})
		},
	}
}
