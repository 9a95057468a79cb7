package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/datasync"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

func newSyncCommand() *cobra.Command {
	syncCommand := &cobra.Command{
		Use:   "sync",
		Short: "Copy words between a YAML file and the configured storage",
	}
	syncCommand.AddCommand(
		newSyncImportCommand(),
		newSyncExportCommand(),
	)
	return syncCommand
}

func newSyncImportCommand() *cobra.Command {
	var opts datasync.ImportOptions
	command := &cobra.Command{
		Use:   "import <yaml-file>",
		Short: "Import the words of a YAML file into the configured storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				source := wordbank.NewYAMLRepository(args[0])
				result, err := datasync.NewImporter(source, c.Repository, cmd.OutOrStdout()).Import(ctx, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}
				prefix := ""
				if opts.DryRun {
					prefix = "[dry run] "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%snew: %d, updated: %d, unchanged: %d, skipped: %d\n",
					prefix, result.New, result.Updated, result.Unchanged, result.Skipped)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show what would change without writing")
	command.Flags().BoolVar(&opts.UpdateExisting, "update-existing", false, "replace words that are already stored")
	return command
}

func newSyncExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <yaml-file>",
		Short: "Export every word of the configured storage to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithComponents(cmd, func(ctx context.Context, c *bootstrap.Components) error {
				result, err := datasync.Export(ctx, c.Repository, args[0], cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("datasync.Export() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "new: %d, updated: %d, unchanged: %d\n", result.New, result.Updated, result.Unchanged)
				return nil
			})
		},
	}
}
