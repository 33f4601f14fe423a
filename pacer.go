// pacer.go
// --------
// Pacing enforces a minimum gap between the start times of successive
// requests from one client instance. Each caller reserves its own start slot
// under the mutex (advancing the last-start marker by its computed wait), so
// concurrent callers on the same client serialize their starts instead of
// both reading a stale timestamp.
package wpbridge

import (
	"context"
	"sync"
	"time"
)

type pacer struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastStart   time.Time
}

func newPacer(requestsPerMinute int) *pacer {
	p := &pacer{}
	if requestsPerMinute > 0 {
		p.minInterval = time.Minute / time.Duration(requestsPerMinute)
	}
	return p
}

// wait blocks until this caller's reserved start slot arrives, or until ctx
// is done.
func (p *pacer) wait(ctx context.Context) error {
	if p.minInterval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	start := now
	if !p.lastStart.IsZero() {
		if earliest := p.lastStart.Add(p.minInterval); earliest.After(now) {
			start = earliest
		}
	}
	p.lastStart = start
	p.mu.Unlock()

	delay := time.Until(start)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
