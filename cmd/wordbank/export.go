package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/reviewsheet"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

func newExportCommand() *cobra.Command {
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export words to files",
	}
	exportCommand.AddCommand(newExportSheetCommand())
	return exportCommand
}

func newExportSheetCommand() *cobra.Command {
	var (
		withPDF bool
		all     bool
		limit   int
		name    string
	)
	command := &cobra.Command{
		Use:   "sheet",
		Short: "Write the due words to a Markdown review sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				now := c.Scheduler.Now()
				var (
					cards []review.ReviewCard
					err   error
					title = "Words due for review"
				)
				if all {
					title = "All words"
					cards, err = c.Repository.FindAll(ctx)
				} else {
					cards, err = wordbank.NewGetDueReviewCardsUseCase(c.Repository, c.Scheduler.Now).DueCards(ctx, limit)
				}
				if err != nil {
					return err
				}
				if len(cards) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No words to export.")
					return nil
				}

				if name == "" {
					name = "review-" + now.Format("2006-01-02")
				}
				writer := reviewsheet.NewWriter(c.Config.Outputs.ReviewSheetDirectory, c.Config.Templates.ReviewSheetTemplate, c.Logger)
				paths, err := writer.WriteFile(name, reviewsheet.NewSheet(title, cards, now), withPDF)
				for _, path := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}
				if err != nil {
					return fmt.Errorf("writer.WriteFile(%s) > %w", name, err)
				}
				return nil
			})
		},
	}
	command.Flags().BoolVar(&withPDF, "pdf", false, "also convert the sheet to PDF")
	command.Flags().BoolVar(&all, "all", false, "export every word instead of the due ones")
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of due words; 0 exports all")
	command.Flags().StringVar(&name, "name", "", "file name without extension (default review-<date>)")
	return command
}
