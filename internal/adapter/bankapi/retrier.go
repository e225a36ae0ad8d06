package bankapi

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/metrics"
)

// Retrier retries transient transport failures with exponential backoff.
// It is only ever applied to the idempotent GET operations; retrying the
// transfer POST could double-spend since no idempotency key is on the wire.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewRetrier creates a Retrier with default settings. metrics may be nil.
func NewRetrier(logger zerolog.Logger, m *metrics.Metrics) *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          logger,
		metrics:         m,
	}
}

// Retry executes an operation with exponential backoff on transport errors.
// A context cancellation or elapsed deadline is permanent: the per-call
// timeout budget is already spent.
func (r *Retrier) Retry(ctx context.Context, op string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Str("operation", op).
			Int("retry", retryCount).
			Msg("transient transport error, retrying")

		if r.metrics != nil {
			r.metrics.ClientRetries.WithLabelValues(op).Inc()
		}

		return err
	}, backoff.WithContext(b, ctx))
}
