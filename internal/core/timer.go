package core

import "time"

// FixedStep paces continuous stepping at a target number of steps per second.
// At most one step is owed at any time, so a stalled frame does not replay a
// burst of growth afterwards.
type FixedStep struct {
	step  time.Duration
	owed  time.Duration
	last  time.Time
	clock func() time.Time
}

// NewFixedStep paces at tps steps per second, 60 when tps is not positive.
// The first call to ShouldStep fires immediately.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	step := time.Second / time.Duration(tps)
	return &FixedStep{step: step, owed: step, clock: time.Now}
}

// Restart drops any owed time so the next step waits a full interval.
func (f *FixedStep) Restart() {
	f.owed = 0
	f.last = time.Time{}
}

// ShouldStep reports whether a step is due and consumes it if so.
func (f *FixedStep) ShouldStep() bool {
	now := f.clock()
	if !f.last.IsZero() {
		f.owed += now.Sub(f.last)
	}
	f.last = now
	if f.owed > f.step {
		f.owed = f.step
	}
	if f.owed < f.step {
		return false
	}
	f.owed -= f.step
	return true
}
