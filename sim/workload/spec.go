package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim"
)

// Spec is the top-level workload configuration.
// Loaded from YAML via LoadSpec(path).
type Spec struct {
	Seed    int64        `yaml:"seed"`
	Threads []ThreadSpec `yaml:"threads"`
}

// ThreadSpec declares the workload for one thread (or several identical
// ones, via copies). Bursts gives explicit (cpu, io) pairs for
// deterministic runs; otherwise Count/MaxLength drive random generation.
type ThreadSpec struct {
	ID        string  `yaml:"id"`
	Copies    int     `yaml:"copies,omitempty"`     // number of threads from this entry (default 1)
	Bursts    [][]int `yaml:"bursts,omitempty"`     // explicit [cpu, io] pairs
	Count     int     `yaml:"count,omitempty"`      // random: number of bursts
	MaxLength int     `yaml:"max_length,omitempty"` // random: max CPU/IO segment length
}

// LoadSpec reads and validates a workload spec from a YAML file.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload spec %s: %w", path, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse workload spec %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the spec for structural errors before any thread is built.
func (s *Spec) Validate() error {
	if len(s.Threads) == 0 {
		return fmt.Errorf("spec declares no threads")
	}
	seen := make(map[string]bool, len(s.Threads))
	for i, ts := range s.Threads {
		if ts.ID == "" {
			return fmt.Errorf("thread %d: missing id", i)
		}
		if seen[ts.ID] {
			return fmt.Errorf("thread %q: duplicate id", ts.ID)
		}
		seen[ts.ID] = true
		if ts.Copies < 0 {
			return fmt.Errorf("thread %q: copies must be >= 0, got %d", ts.ID, ts.Copies)
		}

		if len(ts.Bursts) > 0 {
			if err := validateBursts(ts.ID, ts.Bursts); err != nil {
				return err
			}
			continue
		}
		if ts.Count < 1 {
			return fmt.Errorf("thread %q: needs explicit bursts or count >= 1", ts.ID)
		}
		if ts.MaxLength < 1 {
			return fmt.Errorf("thread %q: max_length must be >= 1, got %d", ts.ID, ts.MaxLength)
		}
	}
	return nil
}

func validateBursts(id string, bursts [][]int) error {
	for j, pair := range bursts {
		if len(pair) != 2 {
			return fmt.Errorf("thread %q: burst %d must be a [cpu, io] pair", id, j)
		}
		if pair[0] < 1 {
			return fmt.Errorf("thread %q: burst %d: cpu length must be >= 1, got %d", id, j, pair[0])
		}
		if pair[1] < 0 {
			return fmt.Errorf("thread %q: burst %d: io length must be >= 0, got %d", id, j, pair[1])
		}
	}
	if last := bursts[len(bursts)-1]; last[1] != 0 {
		return fmt.Errorf("thread %q: final burst must carry io length 0, got %d", id, last[1])
	}
	return nil
}

// BuildThreads materializes the spec into threads ready for
// Scheduler.AddThread, in declaration order. Random workloads draw from
// per-thread RNG streams derived from the spec seed, so the result is
// deterministic for a fixed spec.
func BuildThreads(spec *Spec) ([]*sim.Thread, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(spec.Seed)
	var threads []*sim.Thread
	for _, ts := range spec.Threads {
		copies := ts.Copies
		if copies == 0 {
			copies = 1
		}
		for c := 1; c <= copies; c++ {
			id := ts.ID
			if copies > 1 {
				id = fmt.Sprintf("%s-%d", ts.ID, c)
			}

			var bursts []sim.Burst
			if len(ts.Bursts) > 0 {
				for _, pair := range ts.Bursts {
					bursts = append(bursts, sim.Burst{CPU: pair[0], IO: pair[1]})
				}
			} else {
				var err error
				bursts, err = Generate(rng.ForThread(id), ts.Count, ts.MaxLength)
				if err != nil {
					return nil, fmt.Errorf("thread %q: %w", id, err)
				}
			}
			threads = append(threads, sim.NewThread(id, bursts))
		}
	}
	return threads, nil
}
