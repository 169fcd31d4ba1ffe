package mailer

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMaxConcurrent is the default maximum concurrent SMTP deliveries
	DefaultMaxConcurrent = 2
	// DefaultMinDelay is the minimum delay between deliveries (helps avoid spam filters)
	DefaultMinDelay = 30 * time.Second
)

// RateLimiter paces outgoing email deliveries. It uses a semaphore to limit
// concurrent sends and a minimum delay between sends so bulk outreach does
// not trip provider spam filters.
type RateLimiter struct {
	semaphore     chan struct{}
	maxConcurrent int
	minDelay      time.Duration
	lastRequest   time.Time
	mu            sync.Mutex
}

// NewRateLimiter creates a rate limiter with the given limits. Non-positive
// maxConcurrent falls back to DefaultMaxConcurrent; a negative minDelay
// falls back to DefaultMinDelay.
func NewRateLimiter(maxConcurrent int, minDelay time.Duration) *RateLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if minDelay < 0 {
		minDelay = DefaultMinDelay
	}

	return &RateLimiter{
		semaphore:     make(chan struct{}, maxConcurrent),
		maxConcurrent: maxConcurrent,
		minDelay:      minDelay,
	}
}

// Acquire acquires a delivery slot.
// It blocks until a slot is available or the context is cancelled.
// Returns a release function that MUST be called when the delivery is complete.
func (r *RateLimiter) Acquire(ctx context.Context) (release func(), err error) {
	select {
	case r.semaphore <- struct{}{}:
		// Got a slot
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Apply minimum delay between deliveries
	r.mu.Lock()
	if r.minDelay > 0 {
		elapsed := time.Since(r.lastRequest)
		if elapsed < r.minDelay {
			sleepTime := r.minDelay - elapsed
			r.mu.Unlock()

			select {
			case <-time.After(sleepTime):
			case <-ctx.Done():
				// Release semaphore on cancellation
				<-r.semaphore
				return nil, ctx.Err()
			}

			r.mu.Lock()
		}
	}
	r.lastRequest = time.Now()
	r.mu.Unlock()

	return func() {
		<-r.semaphore
	}, nil
}

// TryAcquire tries to acquire a slot without blocking.
// Returns false if no slot is available.
func (r *RateLimiter) TryAcquire() (release func(), ok bool) {
	select {
	case r.semaphore <- struct{}{}:
		return func() { <-r.semaphore }, true
	default:
		return nil, false
	}
}

// CurrentUsage returns the number of slots currently in use.
func (r *RateLimiter) CurrentUsage() int {
	return len(r.semaphore)
}

// MaxConcurrent returns the maximum concurrent deliveries allowed.
func (r *RateLimiter) MaxConcurrent() int {
	return r.maxConcurrent
}
