// Implements the ReadyQueue, which holds all threads waiting for a free core.
// Threads are enqueued on admission, after I/O completion, and between bursts

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of threads waiting to be dispatched onto a
// CPU core. Dispatch order is strictly arrival order, which makes the
// scheduler round-robin across ticks: a thread that finishes a burst or
// blocks vacates its core and rejoins at the tail.
type ReadyQueue struct {
	queue []*Thread
}

// Enqueue adds a thread to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(t *Thread) {
	rq.queue = append(rq.queue, t)
}

// Dequeue removes and returns the thread at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Thread {
	if len(rq.queue) == 0 {
		return nil
	}
	head := rq.queue[0]
	rq.queue = rq.queue[1:]
	return head
}

// Peek returns the thread at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Thread {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Len returns the number of threads in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers may
// iterate over it but must not append to or reslice it.
func (rq *ReadyQueue) Items() []*Thread {
	return rq.queue
}

// Clear empties the queue.
func (rq *ReadyQueue) Clear() {
	rq.queue = nil
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range rq.queue {
		sb.WriteString(fmt.Sprint(t))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
