// Package workload produces burst workloads for simulated threads,
// either randomly from an injected source or declared in a YAML spec.
package workload

import (
	"fmt"
	"math/rand"

	"github.com/sched-sim/sched-sim/sim"
)

// Source supplies the randomness for burst generation. *rand.Rand
// satisfies it; tests substitute fixed sequences.
type Source interface {
	// Intn returns a non-negative value in [0, n).
	Intn(n int) int
}

var _ Source = (*rand.Rand)(nil)

// Generate produces an ordered burst sequence for one thread: count
// bursts with CPU lengths uniform in [1, maxLen] and I/O lengths
// uniform in [0, maxLen], except the last burst whose I/O length is
// always 0 (no wait after the final CPU segment).
func Generate(src Source, count, maxLen int) ([]sim.Burst, error) {
	if count < 1 {
		return nil, fmt.Errorf("burst count must be >= 1, got %d", count)
	}
	if maxLen < 1 {
		return nil, fmt.Errorf("max burst length must be >= 1, got %d", maxLen)
	}

	bursts := make([]sim.Burst, 0, count)
	for i := 0; i < count; i++ {
		b := sim.Burst{CPU: 1 + src.Intn(maxLen)}
		if i < count-1 {
			b.IO = src.Intn(maxLen + 1)
		}
		bursts = append(bursts, b)
	}
	return bursts, nil
}
