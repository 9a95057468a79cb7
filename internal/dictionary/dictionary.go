// Package dictionary holds what the dictionary providers share: the not-found error,
// the retry policy around API calls and the on-disk response cache.
// Providers live in the subpackages and turn their entries into review.Word.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/avast/retry-go"
)

var ErrWordNotFound = errors.New("dictionary: word not found")

// StatusError is returned when a dictionary API answers with an unexpected status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

// IsRetryableError reports whether a failed lookup may succeed when tried again.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrWordNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
	}

	// truncated bodies
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// RetryConfig controls how often a lookup is attempted.
type RetryConfig struct {
	// Attempts counts the first call. Zero means a single attempt.
	Attempts uint
	// Delay is the base of the exponential backoff; zero keeps the retry-go default.
	Delay time.Duration
}

// Retry calls fn until it succeeds, fails with an error IsRetryableError rejects,
// or the attempts run out. The error of the last call is returned.
func Retry(ctx context.Context, cfg RetryConfig, logger *slog.Logger, fn func() error) error {
	if logger == nil {
		logger = slog.Default()
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 1
	}

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.Info("dictionary lookup failed, retrying", slog.Uint64("attempt", uint64(n+1)), slog.Any("error", err))
		}),
	}
	if cfg.Delay > 0 {
		opts = append(opts, retry.Delay(cfg.Delay))
	}

	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !IsRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		opts...,
	)
}
