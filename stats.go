package wpbridge

import (
	"sync"
	"time"
)

// Stats is a snapshot of a client's cumulative request counters. Counters
// only ever increase; ResetStats is the single way to zero them.
type Stats struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	RateLimitHits      int64
	AuthFailures       int64
	Errors             int64

	// AverageResponseTime is the running mean over successful requests.
	AverageResponseTime time.Duration
}

// statsRecorder owns the counters. The executor is its only writer. A single
// mutex guards everything because the mean update needs the success count and
// the average to move together.
type statsRecorder struct {
	mu sync.Mutex
	s  Stats
}

func (r *statsRecorder) recordStart() {
	r.mu.Lock()
	r.s.TotalRequests++
	r.mu.Unlock()
}

func (r *statsRecorder) recordSuccess(elapsed time.Duration) {
	r.mu.Lock()
	r.s.SuccessfulRequests++
	n := r.s.SuccessfulRequests
	r.s.AverageResponseTime += (elapsed - r.s.AverageResponseTime) / time.Duration(n)
	r.mu.Unlock()
}

func (r *statsRecorder) recordFailure() {
	r.mu.Lock()
	r.s.FailedRequests++
	r.s.Errors++
	r.mu.Unlock()
}

func (r *statsRecorder) recordRateLimitHit() {
	r.mu.Lock()
	r.s.RateLimitHits++
	r.mu.Unlock()
}

func (r *statsRecorder) recordAuthFailure() {
	r.mu.Lock()
	r.s.AuthFailures++
	r.mu.Unlock()
}

func (r *statsRecorder) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s
}

func (r *statsRecorder) reset() {
	r.mu.Lock()
	r.s = Stats{}
	r.mu.Unlock()
}
