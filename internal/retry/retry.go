package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Config holds the configuration for retry logic
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultConfig returns a sensible default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		BaseDelay:       200 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// ErrorChecker decides whether err should trigger another attempt
type ErrorChecker func(err error) bool

// Options configures retry behavior
type Options struct {
	Config       Config
	ErrorChecker ErrorChecker
	Logger       *slog.Logger
	Operation    string
}

// calculateDelay computes the delay for the given attempt using exponential backoff
func (c Config) calculateDelay(attempt int) time.Duration {
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(c.BackoffMultiple, float64(attempt)))
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Do runs fn until it succeeds, returns a non-retryable error, or the retries run out.
// A nil ErrorChecker retries every error.
func Do[T any](ctx context.Context, opts Options, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error
	attempts := opts.Config.MaxRetries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		// Add delay before retry (but not on first attempt)
		if attempt > 0 {
			delay := opts.Config.calculateDelay(attempt - 1)
			opts.log("retrying", slog.Int("attempt", attempt+1), slog.Int("max_attempts", attempts), slog.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			if attempt > 0 {
				opts.log("succeeded after retry", slog.Int("attempt", attempt+1))
			}
			return result, nil
		}
		lastErr = err

		if opts.ErrorChecker != nil && !opts.ErrorChecker(err) {
			return zero, err
		}
		opts.log("attempt failed", slog.Int("attempt", attempt+1), slog.Any("error", err))
	}

	return zero, &RetryExhaustedError{
		Operation:   opts.Operation,
		MaxAttempts: attempts,
		LastErr:     lastErr,
	}
}

// log writes a debug entry when a logger is configured
func (o Options) log(msg string, attrs ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debug(msg, append([]any{slog.String("operation", o.Operation)}, attrs...)...)
}

// RetryExhaustedError represents an error when all retry attempts have been exhausted
type RetryExhaustedError struct {
	Operation   string
	MaxAttempts int
	LastErr     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retry attempts exhausted for %s after %d attempts: %v", e.Operation, e.MaxAttempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.LastErr
}
