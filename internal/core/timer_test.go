package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newPacedStep(tps int) (*FixedStep, *fakeClock) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	f := NewFixedStep(tps)
	f.clock = clock.now
	return f, clock
}

func TestFixedStepFiresFirstCallThenWaits(t *testing.T) {
	f, clock := newPacedStep(10)
	if !f.ShouldStep() {
		t.Fatal("first call should step")
	}
	if f.ShouldStep() {
		t.Fatal("second call without elapsed time should not step")
	}
	clock.advance(50 * time.Millisecond)
	if f.ShouldStep() {
		t.Fatal("half an interval should not step")
	}
	clock.advance(50 * time.Millisecond)
	if !f.ShouldStep() {
		t.Fatal("a full interval should step")
	}
}

func TestFixedStepOwesAtMostOneStep(t *testing.T) {
	f, clock := newPacedStep(10)
	f.ShouldStep()
	clock.advance(time.Second)
	if !f.ShouldStep() {
		t.Fatal("expected a step after a stall")
	}
	if f.ShouldStep() {
		t.Fatal("a stall should not leave a backlog of steps")
	}
}

func TestFixedStepRestartWaitsFullInterval(t *testing.T) {
	f, clock := newPacedStep(10)
	f.Restart()
	if f.ShouldStep() {
		t.Fatal("restart should drop owed time")
	}
	clock.advance(99 * time.Millisecond)
	if f.ShouldStep() {
		t.Fatal("stepped before the interval elapsed")
	}
	clock.advance(time.Millisecond)
	if !f.ShouldStep() {
		t.Fatal("expected a step once the interval elapsed")
	}
}

func TestNewFixedStepDefaultsRate(t *testing.T) {
	f := NewFixedStep(0)
	if f.step != time.Second/60 {
		t.Fatalf("expected 60 steps per second, got %v", f.step)
	}
}
