// Package bootstrap wires the word bank components from a configuration and runs
// long-lived processes until they are interrupted.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// App runs a process and releases what it opened, in reverse order, when the process ends.
type App struct {
	mu              sync.Mutex
	closers         []closer
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

type closer struct {
	name string
	fn   func(ctx context.Context) error
}

// New creates an App. A nil logger uses slog.Default().
func New(logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger.With(slog.String("component", "bootstrap")),
	}
}

// OnShutdown registers fn to be called when Run returns. Safe to call from inside Run.
func (a *App) OnShutdown(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Run calls run with a context cancelled on SIGINT or SIGTERM. Once run returns, the
// shutdown hooks run last-registered first and their errors are joined to the error of run.
// After a signal, run is given the shutdown timeout to return.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down", slog.Any("cause", context.Cause(ctx)))
		select {
		case runErr = <-errCh:
		case <-time.After(a.shutdownTimeout):
			a.logger.Warn("process did not stop in time", slog.Duration("timeout", a.shutdownTimeout))
		}
	case runErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer shutdownCancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(ctx); err != nil {
			a.logger.Error("shutdown hook failed", slog.String("name", c.name), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		a.logger.Debug("shutdown hook done", slog.String("name", c.name))
	}
	return errors.Join(errs...)
}
