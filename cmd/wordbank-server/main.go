package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/at-ishikawa/wordbank/internal/bootstrap"
	"github.com/at-ishikawa/wordbank/internal/config"
	"github.com/at-ishikawa/wordbank/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	app := bootstrap.New(logger)
	return app.Run(context.Background(), func(ctx context.Context) error {
		components, err := bootstrap.NewComponents(ctx, app, cfg, logger)
		if err != nil {
			return fmt.Errorf("bootstrap.NewComponents() > %w", err)
		}

		handler, err := server.NewHandler(components.Repository, components.Lookuper, components.Scheduler, logger)
		if err != nil {
			return fmt.Errorf("server.NewHandler() > %w", err)
		}
		srv := server.NewServer(fmt.Sprintf(":%d", cfg.Server.Port), server.NewRouter(handler, cfg.Server.CORS))
		return server.ListenAndServe(ctx, srv, logger)
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("WORDBANK_CONFIG")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q) > %w", configFile, err)
	}
	return cfg, nil
}
