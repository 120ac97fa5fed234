// Package sim provides the core discrete-time CPU scheduling simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - thread.go: Thread lifecycle (new → ready → running → blocked → terminated) and burst bookkeeping
//   - event.go: The event kinds the scheduler emits and the Sink observers drain
//   - scheduler.go: The per-tick stepping algorithm and the autonomous run loop
//
// # Architecture
//
// A Scheduler owns a population of Threads and advances them one tick per
// Step() call: expired I/O waits requeue their threads, free cores are
// filled FIFO from the ready queue, every running thread burns one CPU
// tick, and completed workloads terminate. Each tick appends to a
// concurrency-safe event Sink that a presentation layer polls.
//
// Workload construction lives in the sim/workload sub-package; the
// scheduler only ever sees pre-built burst sequences, so tests inject
// fixed workloads and drive Step() directly for determinism.
package sim
