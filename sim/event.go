// Defines the scheduling event stream: the closed set of event kinds the
// Scheduler emits, and the Sink observers drain them from.

package sim

import (
	"fmt"
	"sync"

	llq "github.com/emirpasic/gods/queues/linkedlistqueue"
)

// EventKind identifies what happened on a given tick.
type EventKind int

const (
	// EventAdded: a thread was registered with the scheduler.
	EventAdded EventKind = iota
	// EventUnblocked: a thread's I/O wait completed and it rejoined the ready queue.
	EventUnblocked
	// EventRunning: a thread was dispatched onto a free core.
	EventRunning
	// EventBlocked: a thread finished a CPU burst and entered an I/O wait.
	EventBlocked
	// EventReady: a thread finished a CPU burst with no I/O and rejoined the ready queue.
	EventReady
	// EventTerminated: a thread exhausted its workload.
	EventTerminated
	// EventTick: marks the end of a tick, emitted once per Step regardless of activity.
	EventTick
	// EventFinished: every registered thread has terminated; emitted once per run.
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventUnblocked:
		return "unblocked"
	case EventRunning:
		return "running"
	case EventBlocked:
		return "blocked"
	case EventReady:
		return "ready"
	case EventTerminated:
		return "terminated"
	case EventTick:
		return "tick"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is one timestamped record in the scheduler's event stream.
// Thread is nil for the tick and finished kinds.
type Event struct {
	Tick   int64
	Kind   EventKind
	Thread *Thread
}

func (e Event) String() string {
	if e.Thread == nil {
		return fmt.Sprintf("[tick %04d] %s", e.Tick, e.Kind)
	}
	return fmt.Sprintf("[tick %04d] %s %s", e.Tick, e.Kind, e.Thread.ID)
}

// Sink is an ordered, concurrency-safe FIFO of scheduling events.
// The ticking goroutine is the single producer; any number of observers
// may poll or drain concurrently. No operation blocks.
type Sink struct {
	mu sync.Mutex
	q  *llq.Queue
}

// NewSink creates an empty event sink.
func NewSink() *Sink {
	return &Sink{q: llq.New()}
}

// Put appends an event to the sink.
func (s *Sink) Put(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Enqueue(ev)
}

// Poll removes and returns the oldest event. The second return value is
// false when the sink is empty.
func (s *Sink) Poll() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.q.Dequeue()
	if !ok {
		return Event{}, false
	}
	return v.(Event), true
}

// Drain removes and returns all buffered events in emission order.
// Returns nil when the sink is empty.
func (s *Sink) Drain() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.q.Size()
	if n == 0 {
		return nil
	}
	out := make([]Event, 0, n)
	for {
		v, ok := s.q.Dequeue()
		if !ok {
			break
		}
		out = append(out, v.(Event))
	}
	return out
}

// Len returns the number of buffered events.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Size()
}

// Clear discards all buffered events.
func (s *Sink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Clear()
}
