package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/review"
)

func newDictionaryCommand() *cobra.Command {
	dictionaryCommand := &cobra.Command{
		Use:   "dictionary",
		Short: "Dictionary commands",
	}
	dictionaryCommand.AddCommand(newDictionaryLookupCommand())
	return dictionaryCommand
}

func newDictionaryLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look a word up in the configured dictionary without adding it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				word := review.NormalizeWord(args[0])
				entry, err := c.Lookuper.Lookup(ctx, word)
				if err != nil {
					return fmt.Errorf("lookuper.Lookup(%s) > %w", word, err)
				}
				return writeJSON(cmd, entry)
			})
		},
	}
}
