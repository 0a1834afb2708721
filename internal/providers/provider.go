// Package providers implements the fare provider capability: fetch the
// cheapest one-way fare for an (origin, destination, date) triple.
// Providers own their retry/backoff and rate limiting; callers see
// either a fare, an absence, or an error after retries are exhausted.
package providers

import (
	"context"
	"time"

	"github.com/flown/flown/internal/models"
)

// FareProvider is the single capability the search core depends on.
// A nil segment with a nil error means no fare was found.
type FareProvider interface {
	Name() string
	FetchCheapestOneWay(ctx context.Context, origin, destination string, date time.Time) (*models.FareSegment, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

const maxRetries = 3

var retryDelays = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
}

// fetchWithRetry runs fn up to maxRetries times with the fixed delay
// schedule between attempts.
func fetchWithRetry(ctx context.Context, name string, fn func() (*models.FareSegment, error)) (*models.FareSegment, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(retryDelays) {
				delayIdx = len(retryDelays) - 1
			}
			select {
			case <-time.After(retryDelays[delayIdx]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		seg, err := fn()
		if err == nil {
			return seg, nil
		}
		lastErr = err
	}

	return nil, NewProviderError(name, lastErr)
}

// splitFareEvenly divides one offer total across n legs. This is the
// documented even-split approximation for multi-leg offers, not a
// faithful per-leg price: the remainder lands on the first leg.
func splitFareEvenly(total, n int) []int {
	if n <= 0 {
		return nil
	}
	per := total / n
	prices := make([]int, n)
	for i := range prices {
		prices[i] = per
	}
	prices[0] += total - per*n
	return prices
}
