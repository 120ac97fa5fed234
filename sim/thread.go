// Defines the Thread struct that models one schedulable unit in the simulation.
// Tracks its burst workload, lifecycle state, CPU countdown, and running-tick timeline.

package sim

import (
	"fmt"
)

// ThreadState represents the lifecycle state of a simulated thread.
// It is a closed set: New is only ever the initial state, Terminated is
// final, and every other transition is driven by the Scheduler.
type ThreadState int

const (
	StateNew ThreadState = iota
	StateReady
	StateRunning
	StateBlocked
	StateTerminated
)

func (s ThreadState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateBlocked:
		return "blocked"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Burst is one CPU execution segment followed by an optional I/O wait.
// A thread's workload is an ordered sequence of bursts consumed
// front-to-back; the last burst always carries IO == 0.
type Burst struct {
	CPU int // CPU segment length in ticks (>= 1)
	IO  int // I/O wait after the CPU segment in ticks (>= 0)
}

// Sample is one timeline entry: the thread was in State at Tick.
// Samples are recorded only for ticks the thread spent on a core.
type Sample struct {
	Tick  int64
	State ThreadState
}

// Thread models a single schedulable unit.
// All mutation happens inside the Scheduler's critical section; Thread
// itself carries no lock.
type Thread struct {
	ID string // unique identifier, stable for the thread's lifetime

	workload  []Burst // remaining bursts, front is the current one
	state     ThreadState
	remaining int      // CPU ticks left in the current burst
	timeline  []Sample // append-only record of running ticks
}

// NewThread creates a thread in the New state holding the given workload.
// The workload is copied so the caller cannot alias the thread's bursts.
func NewThread(id string, workload []Burst) *Thread {
	return &Thread{
		ID:       id,
		workload: append([]Burst(nil), workload...),
		state:    StateNew,
	}
}

// State returns the thread's current lifecycle state.
func (t *Thread) State() ThreadState {
	return t.state
}

// Remaining returns the CPU ticks left in the current burst.
func (t *Thread) Remaining() int {
	return t.remaining
}

// Workload returns a copy of the thread's remaining bursts.
func (t *Thread) Workload() []Burst {
	return append([]Burst(nil), t.workload...)
}

// Timeline returns a copy of the thread's running-tick samples.
func (t *Thread) Timeline() []Sample {
	return append([]Sample(nil), t.timeline...)
}

// Admit moves a New thread to Ready and loads the first burst's CPU
// length into the countdown. Any other starting state is an invalid
// transition.
func (t *Thread) Admit() error {
	if t.state != StateNew {
		return fmt.Errorf("admit %s from %s: %w", t.ID, t.state, ErrInvalidTransition)
	}
	if len(t.workload) == 0 {
		return fmt.Errorf("admit %s: empty workload: %w", t.ID, ErrInvalidTransition)
	}
	t.state = StateReady
	t.remaining = t.workload[0].CPU
	return nil
}

// Dispatch moves the thread onto a core. The Scheduler only calls this
// on Ready threads; the guard here is for direct callers.
func (t *Thread) Dispatch() error {
	if t.state == StateTerminated {
		return fmt.Errorf("dispatch %s: %w", t.ID, ErrInvalidTransition)
	}
	t.state = StateRunning
	return nil
}

// Block marks the thread as waiting on I/O.
func (t *Thread) Block() error {
	if t.state == StateTerminated {
		return fmt.Errorf("block %s: %w", t.ID, ErrInvalidTransition)
	}
	t.state = StateBlocked
	return nil
}

// Requeue marks the thread as Ready again.
func (t *Thread) Requeue() error {
	if t.state == StateTerminated {
		return fmt.Errorf("requeue %s: %w", t.ID, ErrInvalidTransition)
	}
	t.state = StateReady
	return nil
}

// Finish terminates the thread. Terminal and irreversible.
func (t *Thread) Finish() error {
	if t.state == StateTerminated {
		return fmt.Errorf("finish %s: already terminated: %w", t.ID, ErrInvalidTransition)
	}
	t.state = StateTerminated
	return nil
}

// String returns a human-readable representation of the thread.
func (t *Thread) String() string {
	return fmt.Sprintf("Thread: (ID: %s, State: %s, Remaining: %d, Bursts left: %d)",
		t.ID, t.state, t.remaining, len(t.workload))
}
