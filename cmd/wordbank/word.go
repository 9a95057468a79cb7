package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

func newWordCommand() *cobra.Command {
	wordCommand := &cobra.Command{
		Use:   "word",
		Short: "Manage the words of the word bank",
	}
	wordCommand.AddCommand(
		newWordAddCommand(),
		newWordRemoveCommand(),
		newWordShowCommand(),
	)
	return wordCommand
}

func newWordAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <word>...",
		Short: "Look words up in the dictionary and add them to the word bank",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				uc := wordbank.NewAddWordUseCase(c.Repository, c.Lookuper, c.Scheduler, c.Logger)
				if len(args) == 1 {
					card, err := uc.Add(ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d definition(s))\n", card.Word.Text, len(card.Word.Definitions))
					return nil
				}

				cards, err := uc.AddAll(ctx, args)
				for _, card := range cards {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d definition(s))\n", card.Word.Text, len(card.Word.Definitions))
				}
				return err
			})
		},
	}
}

func newWordRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <word>",
		Short: "Remove a word and its review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				if err := wordbank.NewRemoveWordUseCase(c.Repository).Remove(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", review.NormalizeWord(args[0]))
				return nil
			})
		},
	}
}

func newWordShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <word>",
		Short: "Print the card of a word as JSON",
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
				return writeJSON(cmd, card)
			})
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	return nil
}
