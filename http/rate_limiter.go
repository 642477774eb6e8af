package http

import (
	"context"
	"fmt"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	rateLimitPrefix = "mortgage_rl"
	cleanupInterval = 30 * time.Minute
)

// RateLimiter limits requests per client key over a fixed window.
type RateLimiter struct {
	limiter *limiter.Limiter
}

// NewRateLimiter builds an in-memory limiter from a formatted rate such as "60-M".
func NewRateLimiter(formatted string) (*RateLimiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", formatted, err)
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          rateLimitPrefix,
		CleanUpInterval: cleanupInterval,
	})

	return &RateLimiter{limiter: limiter.New(store, rate)}, nil
}

// Allow consumes one request for key and reports the window state.
func (r *RateLimiter) Allow(ctx context.Context, key string) (limiter.Context, error) {
	return r.limiter.Get(ctx, key)
}
