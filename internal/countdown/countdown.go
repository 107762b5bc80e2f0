// Package countdown is the mission timer. Tick advances it deterministically;
// Run drives Tick from a wall-clock ticker.
package countdown

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State is the timer's lifecycle position
type State string

const (
	StateReady     State = "ready"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateFinished  State = "finished"
	StateCancelled State = "cancelled"
)

var ErrCancelled = errors.New("countdown cancelled")

// Timer counts a mission's duration down to zero
type Timer struct {
	mu        sync.Mutex
	total     time.Duration
	remaining time.Duration
	state     State
}

// New creates a ready timer for d
func New(d time.Duration) *Timer {
	if d < 0 {
		d = 0
	}
	return &Timer{total: d, remaining: d, state: StateReady}
}

// ForMinutes creates a ready timer for a mission duration
func ForMinutes(minutes int) *Timer {
	return New(time.Duration(minutes) * time.Minute)
}

func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateReady {
		return false
	}
	t.state = StateRunning
	return true
}

func (t *Timer) Pause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning {
		return false
	}
	t.state = StatePaused
	return true
}

func (t *Timer) Resume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePaused {
		return false
	}
	t.state = StateRunning
	return true
}

// Cancel stops the timer for good. A finished timer stays finished.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateFinished {
		t.state = StateCancelled
	}
}

// Tick subtracts elapsed from a running timer and reports whether this tick
// brought it to zero
func (t *Timer) Tick(elapsed time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning || elapsed <= 0 {
		return false
	}
	t.remaining -= elapsed
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.state = StateFinished
	return true
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Total() time.Duration {
	return t.total
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Run starts the timer if it is ready and ticks it every interval until it
// finishes, is cancelled or ctx ends. onTick (optional) sees the remaining time
// after each tick; onDone runs once when the timer reaches zero.
func (t *Timer) Run(ctx context.Context, interval time.Duration, onTick func(time.Duration), onDone func()) error {
	if interval <= 0 {
		interval = time.Second
	}
	t.Start()
	if t.State() == StateRunning && t.Remaining() == 0 {
		t.Tick(time.Nanosecond)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		switch t.State() {
		case StateFinished:
			if onDone != nil {
				onDone()
			}
			return nil
		case StateCancelled:
			return ErrCancelled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if t.State() != StateRunning {
				continue
			}
			t.Tick(interval)
			if onTick != nil {
				onTick(t.Remaining())
			}
		}
	}
}
