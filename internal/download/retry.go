package download

import (
	"context"
	"log"
	"time"
)

// RetryFetcher retries transient failures of the wrapped fetcher with a
// fixed backoff. No-result and undersized results are final.
type RetryFetcher struct {
	next    Fetcher
	retries int
	backoff time.Duration
	logger  *log.Logger
}

// NewRetryFetcher wraps next; with retries <= 0 it returns next unchanged
func NewRetryFetcher(next Fetcher, retries int, backoff time.Duration, logger *log.Logger) Fetcher {
	if retries <= 0 {
		return next
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RetryFetcher{next: next, retries: retries, backoff: backoff, logger: logger}
}

// Fetch attempts the fetch up to retries+1 times
func (r *RetryFetcher) Fetch(ctx context.Context, req Request) (*Result, error) {
	var lastErr error

	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			if err := wait(ctx, r.backoff); err != nil {
				return nil, err
			}
			r.logger.Printf("Retrying %q, attempt %d", req.Target(), attempt+1)
		}

		res, err := r.next.Fetch(ctx, req)
		if err == nil {
			return res, nil
		}

		lastErr = err
		r.logger.Printf("Fetch attempt %d failed for %q: %v", attempt+1, req.Target(), err)

		if ctx.Err() != nil || !isRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
