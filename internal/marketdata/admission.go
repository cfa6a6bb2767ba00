package marketdata

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/conflux/internal/models"
)

// Free-tier provider budget: short bursts are throttled by the minute window,
// the day window is a hard stop.
const (
	DefaultMinuteLimit = 5
	DefaultDayLimit    = 25

	// admissionBuffer pads minute-window waits so the provider clock and ours
	// never disagree by a few milliseconds.
	admissionBuffer = 50 * time.Millisecond
)

// AdmissionController gates outbound provider calls behind a sliding-window
// budget. The check-and-log critical section is serialized by the mutex, but
// a caller waiting on the minute window sleeps outside the lock so Status and
// other callers are never blocked behind it.
type AdmissionController struct {
	mu          sync.Mutex
	callLog     []time.Time
	minuteLimit int
	dayLimit    int
	now         func() time.Time
}

// NewAdmissionController creates a controller with the given window limits
func NewAdmissionController(minuteLimit, dayLimit int) *AdmissionController {
	if minuteLimit <= 0 {
		minuteLimit = DefaultMinuteLimit
	}
	if dayLimit <= 0 {
		dayLimit = DefaultDayLimit
	}
	return &AdmissionController{
		minuteLimit: minuteLimit,
		dayLimit:    dayLimit,
		now:         time.Now,
	}
}

// Acquire claims one call slot. Returns false when the daily budget is
// exhausted so the caller can fall back instead of waiting hours. When only
// the minute window is full, Acquire blocks until a slot frees or the context
// is cancelled.
func (a *AdmissionController) Acquire(ctx context.Context) (bool, error) {
	for {
		a.mu.Lock()
		a.prune()

		if len(a.callLog) >= a.dayLimit {
			a.mu.Unlock()
			return false, nil
		}

		wait := minuteWait(a.callLog, a.now(), a.minuteLimit)
		if wait <= 0 {
			a.callLog = append(a.callLog, a.now())
			a.mu.Unlock()
			return true, nil
		}
		a.mu.Unlock()

		// Sleep outside the lock, then re-check: another caller may have
		// claimed the freed slot first.
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		}
		timer.Stop()
	}
}

// minuteWait computes how long a caller must wait before the minute window
// frees a slot. Pure function of (log, now) so the timing is testable without
// sleeping. Zero or negative means a slot is free now.
func minuteWait(callLog []time.Time, now time.Time, minuteLimit int) time.Duration {
	cutoff := now.Add(-time.Minute)
	recent := 0
	for i := len(callLog) - 1; i >= 0; i-- {
		if callLog[i].Before(cutoff) {
			break
		}
		recent++
	}
	if recent < minuteLimit {
		return 0
	}
	oldestInWindow := callLog[len(callLog)-minuteLimit]
	return oldestInWindow.Add(time.Minute).Sub(now) + admissionBuffer
}

// Status reports current window usage
func (a *AdmissionController) Status() models.RateLimitStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.prune()
	return models.RateLimitStatus{
		CallsLastMinute: a.callsInLastMinute(),
		CallsLastDay:    len(a.callLog),
		MinuteLimit:     a.minuteLimit,
		DayLimit:        a.dayLimit,
	}
}

// prune drops entries older than the day window. Callers must hold the lock.
func (a *AdmissionController) prune() {
	cutoff := a.now().Add(-24 * time.Hour)
	idx := 0
	for idx < len(a.callLog) && a.callLog[idx].Before(cutoff) {
		idx++
	}
	a.callLog = a.callLog[idx:]
}

func (a *AdmissionController) callsInLastMinute() int {
	cutoff := a.now().Add(-time.Minute)
	count := 0
	for i := len(a.callLog) - 1; i >= 0; i-- {
		if a.callLog[i].Before(cutoff) {
			break
		}
		count++
	}
	return count
}
