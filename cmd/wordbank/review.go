package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/cli"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

func newReviewCommand() *cobra.Command {
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Review commands for the due words",
	}
	reviewCommand.AddCommand(
		newReviewDueCommand(),
		newReviewRateCommand(),
		newReviewSessionCommand(),
		newReviewPreviewCommand(),
	)
	return reviewCommand
}

func newReviewDueCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "due",
		Short: "List the words due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				cards, err := wordbank.NewGetDueReviewCardsUseCase(c.Repository, c.Scheduler.Now).DueCards(ctx, limit)
				if err != nil {
					return err
				}
				if len(cards) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No words are due for review.")
					return nil
				}
				return printCards(cmd, cards)
			})
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of words; 0 lists all")
	return command
}

func newReviewRateCommand() *cobra.Command {
	var rating review.ReviewRating
	command := &cobra.Command{
		Use:   "rate <word>",
		Short: "Record how well a word was remembered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				card, err := wordbank.NewReviewWordUseCase(c.Repository, c.Scheduler, c.Logger).Review(ctx, args[0], rating)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: next review on %s (in %d day(s))\n",
					card.Word.Text, card.Metadata.DueAt.Format(time.DateOnly), card.Metadata.ScheduledDays)
				return nil
			})
		},
	}
	command.Flags().Var(&rating, "rating", "again, hard, good or easy (or 1-4)")
	_ = command.MarkFlagRequired("rating")
	return command
}

func newReviewSessionCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "session",
		Short: "Review the due words interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				session := cli.NewReviewSession(
					wordbank.NewGetDueReviewCardsUseCase(c.Repository, c.Scheduler.Now),
					wordbank.NewReviewWordUseCase(c.Repository, c.Scheduler, c.Logger),
					c.Scheduler,
					limit,
					os.Stdin,
					cmd.OutOrStdout(),
					c.Logger,
				)
				_, err := session.Run(ctx)
				return err
			})
		},
	}
	command.Flags().IntVar(&limit, "limit", 20, "maximum number of words in the session; 0 reviews all")
	return command
}

func newReviewPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <word>",
		Short: "Show when a word would be due again for each rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				word := review.NormalizeWord(args[0])
				card, err := c.Repository.GetReviewCard(ctx, word)
				if err != nil {
					return fmt.Errorf("repository.GetReviewCard(%s) > %w", word, err)
				}
				if card == nil {
					return fmt.Errorf("%w: %s", wordbank.ErrWordNotFound, word)
				}

				preview := c.Scheduler.Preview(card.Metadata, c.Scheduler.Now())
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "RATING\tDUE\tDAYS\tSTABILITY\tDIFFICULTY")
				for _, rating := range review.AllRatings {
					m := preview[rating]
					fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n", rating, m.DueAt.Format(time.DateOnly), m.ScheduledDays, m.Stability, m.Difficulty)
				}
				return w.Flush()
			})
		},
	}
}

func printCards(cmd *cobra.Command, cards []review.ReviewCard) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORD\tDUE\tSTATE\tREPS\tLAPSES")
	for _, card := range cards {
		m := card.Metadata
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", card.Word.Text, m.DueAt.Format(time.DateOnly), m.State, m.Reps, m.Lapses)
	}
	return w.Flush()
}
