package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var asJSON bool
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics of the word bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				cards, err := c.Repository.FindAll(ctx)
				if err != nil {
					return fmt.Errorf("repository.FindAll() > %w", err)
				}
				stats := statistics.Calculate(cards, c.Scheduler.Now())
				if asJSON {
					return writeJSON(cmd, stats)
				}
				printStatistics(cmd, stats)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return command
}

func printStatistics(cmd *cobra.Command, stats statistics.Statistics) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Words: %d (", stats.Total)
	for i, state := range []review.ReviewState{review.StateNew, review.StateLearning, review.StateReview} {
		if i > 0 {
			fmt.Fprint(out, ", ")
		}
		fmt.Fprintf(out, "%s %d", state, stats.ByState[state.String()])
	}
	fmt.Fprintln(out, ")")
	fmt.Fprintf(out, "Due now: %d, within a week: %d\n", stats.DueNow, stats.DueWithinWeek)
	fmt.Fprintf(out, "Reviews: %d, lapses: %d, retention: %.1f%%\n", stats.TotalReps, stats.TotalLapses, stats.RetentionRate*100)
	fmt.Fprintf(out, "Average difficulty: %.2f, average stability: %.2f\n", stats.AvgDifficulty, stats.AvgStability)
	if stats.NextDueAt != nil {
		fmt.Fprintf(out, "Next due: %s on %s\n", stats.NextDueWord, stats.NextDueAt.Format(time.DateOnly))
	}
	for _, period := range stats.Periods {
		fmt.Fprintf(out, "  %s: reviewed %d, lapsed %d\n", period.Period, period.Reviewed, period.Lapsed)
	}
}
