// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit gates backend API calls with a token bucket.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket rate limiter configured from a textual
// limit such as "60/minute".
type Limiter struct {
	limiter *rate.Limiter
}

// periods maps limit period names to their duration.
var periods = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
}

// Parse builds a Limiter from a limit string "N/second", "N/minute", or
// "N/hour". An empty string yields an effectively unlimited limiter.
func Parse(limit string) (*Limiter, error) {
	if strings.TrimSpace(limit) == "" {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}, nil
	}

	count, period, ok := strings.Cut(limit, "/")
	if !ok {
		return nil, fmt.Errorf("invalid rate limit %q: want \"N/period\"", limit)
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid rate limit %q: count must be a positive integer", limit)
	}

	d, ok := periods[strings.TrimSpace(strings.ToLower(period))]
	if !ok {
		return nil, fmt.Errorf("invalid rate limit %q: period must be second, minute, or hour", limit)
	}

	// n events per period, with bursts up to n.
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(float64(n)/d.Seconds()), n)}, nil
}

// Wait blocks until a call is allowed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a call is allowed right now without blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
