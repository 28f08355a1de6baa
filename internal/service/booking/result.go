package booking

import (
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
)

// Failure is a booking request that could not be satisfied, with the reason.
type Failure struct {
	Request domain.BookingRequest
	Err     error
}

// Aggregator collects per-request outcomes from any number of goroutines.
type Aggregator struct {
	mu        sync.Mutex
	successes []domain.Booking
	failures  []Failure
}

func NewAggregator(expected int) *Aggregator {
	return &Aggregator{
		successes: make([]domain.Booking, 0, expected),
	}
}

func (a *Aggregator) RecordSuccess(b domain.Booking) {
	a.mu.Lock()
	a.successes = append(a.successes, b)
	a.mu.Unlock()
}

func (a *Aggregator) RecordFailure(req domain.BookingRequest, err error) {
	a.mu.Lock()
	a.failures = append(a.failures, Failure{Request: req, Err: err})
	a.mu.Unlock()
}

// Finalize freezes the collected outcomes into a BatchResult. The
// aggregator must not be used afterwards.
func (a *Aggregator) Finalize(elapsed time.Duration) *BatchResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return &BatchResult{
		successes: a.successes,
		failures:  a.failures,
		duration:  elapsed,
	}
}

// BatchResult is the immutable outcome of one batch run.
type BatchResult struct {
	successes []domain.Booking
	failures  []Failure
	duration  time.Duration
}

func (r *BatchResult) Successes() []domain.Booking {
	out := make([]domain.Booking, len(r.successes))
	copy(out, r.successes)
	return out
}

func (r *BatchResult) Failures() []Failure {
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

func (r *BatchResult) Duration() time.Duration {
	return r.duration
}

func (r *BatchResult) SuccessCount() int {
	return len(r.successes)
}

func (r *BatchResult) FailureCount() int {
	return len(r.failures)
}

func (r *BatchResult) Total() int {
	return len(r.successes) + len(r.failures)
}

// SuccessRate is successes/total, or 0 for an empty batch.
func (r *BatchResult) SuccessRate() float64 {
	total := r.Total()
	if total == 0 {
		return 0.0
	}
	return float64(len(r.successes)) / float64(total)
}

// FailuresByCode counts failures per domain error code.
func (r *BatchResult) FailuresByCode() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.failures {
		counts[domain.ErrorCode(f.Err)]++
	}
	return counts
}

func (r *BatchResult) String() string {
	return fmt.Sprintf("BatchResult{successes=%d, failures=%d, duration=%dms, successRate=%.2f%%}",
		len(r.successes), len(r.failures), r.duration.Milliseconds(), r.SuccessRate()*100)
}
