package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/config"
)

var (
	configFile string
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.ExecuteContext(context.Background()); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "wordbank",
		Short:         "Spaced-repetition word bank",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newWordCommand(),
		newReviewCommand(),
		newStatsCommand(),
		newExportCommand(),
		newDictionaryCommand(),
		newDBCommand(),
		newSyncCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// runWithComponents loads the configuration, opens the configured storage and dictionary
// and calls fn. Everything opened is closed once fn returns.
func runWithComponents(cmd *cobra.Command, fn func(ctx context.Context, components *bootstrap.Components) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := slog.Default()
	app := bootstrap.New(logger)
	return app.Run(ctx, func(ctx context.Context) error {
		components, err := bootstrap.NewComponents(ctx, app, cfg, logger)
		if err != nil {
			return fmt.Errorf("bootstrap.NewComponents() > %w", err)
		}
		return fn(ctx, components)
	})
}
