// sim/scheduler.go
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// blockedEntry pairs a blocked thread with the I/O ticks it still has
// to wait. The blocked list keeps insertion order so unblocking order
// is stable within a run.
type blockedEntry struct {
	thread      *Thread
	remainingIO int
}

// Scheduler owns every simulated thread and advances the simulation one
// discrete tick at a time. A single mutex guards the whole of Step():
// readers observe state either before or after a complete tick, never a
// partial one.
type Scheduler struct {
	mu sync.Mutex

	cores int
	model string

	tick       int64
	readyQueue *ReadyQueue
	blocked    []blockedEntry
	running    []*Thread
	allThreads []*Thread
	sink       *Sink

	// finished tracks whether the completion event has been emitted for
	// the current thread population, so repeated Step() calls after the
	// last termination do not emit it again.
	finished bool

	loopActive bool
	stopCh     chan struct{}
}

// NewScheduler builds a Scheduler from the given configuration.
// Invalid configurations are rejected here, never mid-run.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		cores:      cfg.Cores,
		model:      cfg.Model,
		readyQueue: &ReadyQueue{},
		sink:       NewSink(),
	}, nil
}

// Sink returns the scheduler's event sink for observers to drain.
func (s *Scheduler) Sink() *Sink {
	return s.sink
}

// Tick returns the current simulation time.
func (s *Scheduler) Tick() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Cores returns the configured CPU core count.
func (s *Scheduler) Cores() int {
	return s.cores
}

// Model returns the threading model tag. It has no behavioral effect.
func (s *Scheduler) Model() string {
	return s.model
}

// Active reports whether the autonomous tick loop is running.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopActive
}

// AddThread registers a thread, admits it (New -> Ready with the first
// burst loaded), and appends it to the ready queue. Valid at any time,
// including mid-run.
func (s *Scheduler) AddThread(t *Thread) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.Admit(); err != nil {
		return fmt.Errorf("add thread: %w", err)
	}
	s.allThreads = append(s.allThreads, t)
	s.readyQueue.Enqueue(t)
	s.finished = false
	s.emit(EventAdded, t)
	return nil
}

// emit appends an event stamped with the current tick. Callers hold s.mu.
func (s *Scheduler) emit(kind EventKind, t *Thread) {
	s.sink.Put(Event{Tick: s.tick, Kind: kind, Thread: t})
}

// Step advances the simulation by exactly one tick. Phases run in
// strict order: I/O completion, dispatch, execution, tick marker,
// completion check. The whole body is one critical section.
func (s *Scheduler) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++

	// 1. I/O completion: count down every blocked thread and requeue
	// the ones whose wait expired, in insertion order.
	var stillBlocked []blockedEntry
	for _, be := range s.blocked {
		be.remainingIO--
		if be.remainingIO <= 0 {
			if err := be.thread.Requeue(); err != nil {
				logrus.Warnf("unblock %s: %v", be.thread.ID, err)
				continue
			}
			s.readyQueue.Enqueue(be.thread)
			s.emit(EventUnblocked, be.thread)
		} else {
			stillBlocked = append(stillBlocked, be)
		}
	}
	s.blocked = stillBlocked

	// 2. Dispatch: refilter the running set defensively, then fill
	// vacancies from the head of the ready queue. FIFO here is
	// round-robin across ticks, since finished or blocked threads
	// vacate their cores.
	live := s.running[:0]
	for _, t := range s.running {
		if t.State() == StateRunning {
			live = append(live, t)
		}
	}
	s.running = live
	for vacancies := s.cores - len(s.running); vacancies > 0; vacancies-- {
		t := s.readyQueue.Dequeue()
		if t == nil {
			break
		}
		if err := t.Dispatch(); err != nil {
			logrus.Warnf("dispatch %s: %v", t.ID, err)
			continue
		}
		s.running = append(s.running, t)
		s.emit(EventRunning, t)
	}

	// 3. Execution: every running thread burns one CPU tick and records
	// it in its timeline. A finished burst either blocks the thread for
	// the burst's I/O time, requeues it for its next burst, or
	// terminates it when the workload is exhausted.
	for _, t := range s.running {
		t.remaining--
		t.timeline = append(t.timeline, Sample{Tick: s.tick, State: t.state})

		if t.remaining > 0 {
			continue
		}
		if len(t.workload) > 1 {
			completed := t.workload[0]
			t.workload = t.workload[1:]
			t.remaining = t.workload[0].CPU
			if completed.IO > 0 {
				if err := t.Block(); err != nil {
					logrus.Warnf("block %s: %v", t.ID, err)
					continue
				}
				s.blocked = append(s.blocked, blockedEntry{thread: t, remainingIO: completed.IO})
				s.emit(EventBlocked, t)
			} else {
				if err := t.Requeue(); err != nil {
					logrus.Warnf("requeue %s: %v", t.ID, err)
					continue
				}
				s.readyQueue.Enqueue(t)
				s.emit(EventReady, t)
			}
		} else {
			t.workload = nil
			if err := t.Finish(); err != nil {
				logrus.Warnf("finish %s: %v", t.ID, err)
				continue
			}
			s.emit(EventTerminated, t)
		}
	}

	// Threads that blocked, requeued, or terminated this tick no longer
	// occupy a core.
	live = s.running[:0]
	for _, t := range s.running {
		if t.State() == StateRunning {
			live = append(live, t)
		}
	}
	s.running = live

	// 4. Tick boundary marker, emitted regardless of activity.
	s.emit(EventTick, nil)

	// 5. Completion check. An empty registry is never "complete":
	// vacuous termination must not look like a finished run.
	if len(s.allThreads) == 0 || s.finished {
		return
	}
	for _, t := range s.allThreads {
		if t.State() != StateTerminated {
			return
		}
	}
	s.finished = true
	s.stopLocked()
	s.emit(EventFinished, nil)
}

// Run drives the autonomous tick loop: one Step per interval until the
// simulation completes, Stop is called, or ctx is cancelled. A tick in
// progress always completes; cancellation takes effect before the next
// one. Run returns immediately if a loop is already active.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	if s.loopActive {
		s.mu.Unlock()
		return
	}
	s.loopActive = true
	stop := make(chan struct{})
	s.stopCh = stop
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loopActive = false
		if s.stopCh == stop {
			s.stopCh = nil
		}
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.Step()
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A stop raised during the sleep wins over the next tick.
			select {
			case <-stop:
				return
			default:
			}
		}
	}
}

// Stop halts the autonomous loop before its next tick. Safe to call
// when no loop is active.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
}

// Reset stops any active loop and clears the entire simulation state:
// tick, queues, registry, and the event sink. Destructive.
func (s *Scheduler) Reset() {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = 0
	s.readyQueue.Clear()
	s.blocked = nil
	s.running = nil
	s.allThreads = nil
	s.finished = false
	s.sink.Clear()
}
