package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wordbank/internal/config"
	"github.com/at-ishikawa/wordbank/internal/database"
	"github.com/at-ishikawa/wordbank/internal/dictionary"
	"github.com/at-ishikawa/wordbank/internal/dictionary/freedictionary"
	"github.com/at-ishikawa/wordbank/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

// Components are the collaborators shared by the commands and the server.
type Components struct {
	Config     *config.Config
	Repository wordbank.Repository
	Lookuper   wordbank.Lookuper
	Scheduler  *review.Scheduler
	Logger     *slog.Logger
}

// NewComponents opens the storage and the dictionary configured in cfg. Their close
// functions are registered on app.
func NewComponents(ctx context.Context, app *App, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}
	repo, closeRepo, err := OpenRepository(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("OpenRepository() > %w", err)
	}
	app.OnShutdown("storage", func(context.Context) error {
		return closeRepo()
	})

	lookuper, closeLookuper, err := NewLookuper(cfg.Dictionaries, logger)
	if err != nil {
		return nil, fmt.Errorf("NewLookuper() > %w", err)
	}
	app.OnShutdown("dictionary", func(context.Context) error {
		return closeLookuper()
	})

	if err := cfg.Scheduler.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Scheduler.Validate() > %w", err)
	}

	return &Components{
		Config:     cfg,
		Repository: repo,
		Lookuper:   lookuper,
		Scheduler:  review.NewScheduler(cfg.Scheduler),
		Logger:     logger,
	}, nil
}

// OpenRepository returns the word bank store of cfg.Driver. Database stores are migrated
// to the latest schema before they are returned.
func OpenRepository(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (wordbank.Repository, func() error, error) {
	if cfg.Driver == config.StorageDriverYAML || cfg.Driver == "" {
		logger.Debug("using yaml storage", slog.String("path", cfg.YAMLPath))
		return wordbank.NewYAMLRepository(cfg.YAMLPath), func() error { return nil }, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	logger.Debug("using database storage", slog.String("driver", cfg.Driver))
	return wordbank.NewDBRepository(db), db.Close, nil
}

// NewLookuper returns the dictionary client of cfg.API.
func NewLookuper(cfg config.DictionariesConfig, logger *slog.Logger) (wordbank.Lookuper, func() error, error) {
	retry := dictionary.RetryConfig{Attempts: cfg.RetryAttempts}
	switch cfg.API {
	case config.DictionaryRapidAPI, "":
		client := rapidapi.NewClient(rapidapi.Config{
			Host:           cfg.RapidAPI.Host,
			Key:            cfg.RapidAPI.Key,
			CacheDirectory: cfg.RapidAPI.CacheDirectory,
		}, retry, logger)
		return client, func() error { return nil }, nil
	case config.DictionaryFreeDictionary:
		client := freedictionary.NewClient(cfg.FreeDictionary.BaseURL, retry, logger)
		return client, client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown dictionary api: %q", cfg.API)
}
