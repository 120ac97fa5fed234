package workload

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG provides an isolated RNG stream per thread, derived
// deterministically from a master seed. Generating one thread's
// workload never perturbs another's, so adding a thread to a spec
// leaves existing workloads identical.
type PartitionedRNG struct {
	masterSeed int64
	streams    map[string]*rand.Rand
}

// NewPartitionedRNG creates a partitioned RNG with the given master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		streams:    make(map[string]*rand.Rand),
	}
}

// ForThread returns the RNG stream for the given thread ID, creating it
// lazily. Repeated calls with the same ID return the same stream.
func (p *PartitionedRNG) ForThread(id string) *rand.Rand {
	if r, ok := p.streams[id]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.deriveSeed(id)))
	p.streams[id] = r
	return r
}

// deriveSeed combines the master seed with a hash of the stream name.
// XOR with a name hash keeps derivation order-independent.
func (p *PartitionedRNG) deriveSeed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}
