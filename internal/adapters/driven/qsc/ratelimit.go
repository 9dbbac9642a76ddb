package qsc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// ErrBackingOff is returned by Wait when the server-requested back-off
// outlasts the caller's deadline.
var ErrBackingOff = errors.New("backing off after retry-after")

// RateLimiter throttles outgoing requests.
// It combines a proactive token bucket with a reactive back-off taken from
// Retry-After on 429 and 503 responses.
type RateLimiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter // nil disables proactive throttling
	retryAfter time.Time     // no requests before this instant
	maxBackoff time.Duration // caps a single Retry-After hint; 0 means uncapped
	now        func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive rate disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	r := &RateLimiter{now: time.Now}
	if perSecond > 0 {
		r.bucket = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return r
}

// SetMaxBackoff caps how far ahead a single Retry-After hint may push the
// next request.
func (r *RateLimiter) SetMaxBackoff(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxBackoff = d
}

// Wait blocks until it's safe to make a request.
// A back-off that ends after ctx's deadline fails immediately with
// ErrBackingOff instead of sleeping into the deadline.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.bucket != nil {
		if err := r.bucket.Wait(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	until := r.retryAfter
	now := r.now()
	r.mu.Unlock()

	if !now.Before(until) {
		return nil
	}
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(until) {
		return fmt.Errorf("%w for %s: %w", ErrBackingOff, until.Sub(now).Round(time.Millisecond), context.DeadlineExceeded)
	}
	timer := time.NewTimer(until.Sub(now))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Observe records back-off hints from a response.
func (r *RateLimiter) Observe(resp *http.Response) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}
	header := resp.Header.Get(HeaderRetryAfter)
	if header == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var until time.Time
	if seconds, err := strconv.Atoi(header); err == nil {
		until = now.Add(time.Duration(seconds) * time.Second)
	} else if at, err := http.ParseTime(header); err == nil {
		until = at
	} else {
		return
	}
	if r.maxBackoff > 0 && until.Sub(now) > r.maxBackoff {
		until = now.Add(r.maxBackoff)
	}
	if until.After(r.retryAfter) {
		r.retryAfter = until
	}
}

// RetryAfter returns the instant before which no request is sent.
func (r *RateLimiter) RetryAfter() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAfter
}
