// Read-only snapshots of scheduler and thread state for presentation
// layers polling from outside the tick loop.

package sim

// ThreadSnapshot is an immutable copy of one thread's observable state.
type ThreadSnapshot struct {
	ID        string
	State     ThreadState
	Remaining int
	Timeline  []Sample
}

// SchedulerSnapshot is a consistent point-in-time copy of the
// scheduler's observable state, taken between ticks.
type SchedulerSnapshot struct {
	Tick    int64
	Cores   int
	Model   string
	Ready   int
	Blocked int
	Running int
	Threads []ThreadSnapshot
}

// Snapshot copies the scheduler's observable state under the tick lock.
// The result never aliases live simulation state, so callers may hold
// it for as long as they like while the loop keeps ticking.
func (s *Scheduler) Snapshot() SchedulerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SchedulerSnapshot{
		Tick:    s.tick,
		Cores:   s.cores,
		Model:   s.model,
		Ready:   s.readyQueue.Len(),
		Blocked: len(s.blocked),
		Running: len(s.running),
		Threads: make([]ThreadSnapshot, 0, len(s.allThreads)),
	}
	for _, t := range s.allThreads {
		snap.Threads = append(snap.Threads, ThreadSnapshot{
			ID:        t.ID,
			State:     t.state,
			Remaining: t.remaining,
			Timeline:  append([]Sample(nil), t.timeline...),
		})
	}
	return snap
}
