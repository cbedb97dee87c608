package check

import (
	"time"
)

// AttemptRecorder records the times of the last N attempts and counts all of
// them.
type AttemptRecorder struct {
	MaxRecordCount int
	Attempts       int
	LastAttempts   []time.Time
	first          time.Time
}

// NewAttemptRecorder returns a new AttemptRecorder.
func NewAttemptRecorder(maxRecordCount int) *AttemptRecorder {
	return &AttemptRecorder{
		MaxRecordCount: maxRecordCount,
		LastAttempts:   make([]time.Time, 0),
	}
}

// AddRecordNow adds a new record with the current time.
func (r *AttemptRecorder) AddRecordNow() {
	r.AddRecord(time.Now())
}

// AddRecord adds a new record.
func (r *AttemptRecorder) AddRecord(t time.Time) {
	// Strip monotonic clock reading, so durations stay accurate across system sleep.
	t = t.Round(0)

	if r.Attempts == 0 {
		r.first = t
	}
	r.Attempts++

	if r.MaxRecordCount <= 0 {
		return
	}
	if len(r.LastAttempts) >= r.MaxRecordCount {
		r.LastAttempts = r.LastAttempts[1:]
	}
	r.LastAttempts = append(r.LastAttempts, t)
}

// Elapsed returns the time since the first recorded attempt.
func (r *AttemptRecorder) Elapsed() time.Duration {
	if r.Attempts == 0 {
		return 0
	}
	return time.Since(r.first)
}

// Gaps returns the time between each pair of adjacent records.
func (r *AttemptRecorder) Gaps() []time.Duration {
	if len(r.LastAttempts) < 2 {
		return nil
	}
	gaps := make([]time.Duration, 0, len(r.LastAttempts)-1)
	for i := 1; i < len(r.LastAttempts); i++ {
		gaps = append(gaps, r.LastAttempts[i].Sub(r.LastAttempts[i-1]))
	}
	return gaps
}
