// Package database provides database connection management and schema migrations.
package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/wordbank/internal/config"
	"github.com/at-ishikawa/wordbank/schemas"
)

// Open opens a MySQL or SQLite connection depending on cfg.Driver.
func Open(cfg config.StorageConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.StorageDriverMySQL:
		return openMySQL(cfg.MySQL)
	case config.StorageDriverSQLite:
		return openSQLite(cfg.SQLitePath)
	}
	return nil, fmt.Errorf("storage driver %q is not backed by a database", cfg.Driver)
}

func openMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}

	db, err := sqlx.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(mysql) > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	return db, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(sqlite) > %w", err)
	}
	return db, nil
}

func migrationDialect(driverName string) (goose.Dialect, string, error) {
	switch driverName {
	case "mysql":
		return goose.DialectMySQL, "migrations/mysql", nil
	case "sqlite":
		return goose.DialectSQLite3, "migrations/sqlite", nil
	}
	return "", "", fmt.Errorf("no migrations for driver %q", driverName)
}

func newMigrationProvider(db *sqlx.DB) (*goose.Provider, error) {
	dialect, dir, err := migrationDialect(db.DriverName())
	if err != nil {
		return nil, err
	}
	fsys, err := fs.Sub(schemas.Migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("fs.Sub(%s) > %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose.NewProvider() > %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration of the database's dialect.
func Migrate(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	provider, err := newMigrationProvider(db)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("provider.Up() > %w", err)
	}
	for _, result := range results {
		logger.Info("applied migration",
			slog.Int64("version", result.Source.Version),
			slog.String("path", result.Source.Path),
			slog.Duration("duration", result.Duration),
		)
	}
	if len(results) == 0 {
		logger.Debug("database schema is up to date")
	}
	return nil
}

// MigrationStatus is the state of one migration file.
type MigrationStatus struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

// Status lists the migrations of the database's dialect and whether they were applied.
func Status(ctx context.Context, db *sqlx.DB) ([]MigrationStatus, error) {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return nil, err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider.Status() > %w", err)
	}
	result := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, MigrationStatus{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return result, nil
}
