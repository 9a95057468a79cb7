package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/database"
)

func newDBCommand() *cobra.Command {
	dbCommand := &cobra.Command{
		Use:   "db",
		Short: "Database schema commands for the mysql and sqlite storage drivers",
	}
	dbCommand.AddCommand(
		newDBMigrateCommand(),
		newDBStatusCommand(),
	)
	return dbCommand
}

func newDBMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Storage)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(cmd.Context(), db, slog.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
			return nil
		},
	}
}

func newDBStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Storage)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			statuses, err := database.Status(cmd.Context(), db)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tMIGRATION\tAPPLIED AT")
			for _, s := range statuses {
				appliedAt := "pending"
				if s.Applied {
					appliedAt = s.AppliedAt.Format(time.DateTime)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, s.Path, appliedAt)
			}
			return w.Flush()
		},
	}
}
