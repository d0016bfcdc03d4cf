package crawler

import (
	"sync"
	"time"
)

// AttemptResult records the outcome of one page fetch.
type AttemptResult struct {
	Timestamp  time.Time
	URL        string
	Error      string
	Duration   time.Duration
	StatusCode int
	Headlines  int
	Success    bool
}

// AttemptSummary aggregates an AttemptLog.
type AttemptSummary struct {
	Total     int
	Succeeded int
	Empty     int
	Failed    int
	Duration  time.Duration
}

// AttemptLog keeps every fetch attempt made by an Adapter.
type AttemptLog struct {
	attempts []AttemptResult
	mu       sync.Mutex
}

// NewAttemptLog creates an empty log.
func NewAttemptLog() *AttemptLog {
	return &AttemptLog{}
}

// Record appends one attempt.
func (l *AttemptLog) Record(a AttemptResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts = append(l.attempts, a)
}

// Attempts returns a copy of all recorded attempts in order.
func (l *AttemptLog) Attempts() []AttemptResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]AttemptResult(nil), l.attempts...)
}

// Summary counts successful, empty and failed attempts.
// A successful fetch that yielded no headlines counts as empty.
func (l *AttemptLog) Summary() AttemptSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s AttemptSummary

	for _, a := range l.attempts {
		s.Total++
		s.Duration += a.Duration

		switch {
		case !a.Success:
			s.Failed++
		case a.Headlines == 0:
			s.Empty++
		default:
			s.Succeeded++
		}
	}

	return s
}
