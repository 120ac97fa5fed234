package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sched-sim/sched-sim/sim"
)

func writeSpec(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := writeSpec(t, `
seed: 42
threads:
  - id: "pinned"
    bursts: [[3, 2], [1, 0]]
  - id: "worker"
    copies: 3
    count: 4
    max_length: 5
`)

	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Seed != 42 {
		t.Errorf("seed = %d, want 42", spec.Seed)
	}
	if len(spec.Threads) != 2 {
		t.Fatalf("threads count = %d, want 2", len(spec.Threads))
	}
	pinned := spec.Threads[0]
	if pinned.ID != "pinned" || len(pinned.Bursts) != 2 {
		t.Errorf("pinned thread mismatch: id=%q bursts=%v", pinned.ID, pinned.Bursts)
	}
	worker := spec.Threads[1]
	if worker.Copies != 3 || worker.Count != 4 || worker.MaxLength != 5 {
		t.Errorf("worker thread mismatch: %+v", worker)
	}
}

func TestLoadSpec_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSpecValidate_Failures(t *testing.T) {
	cases := []struct {
		name    string
		spec    Spec
		wantSub string
	}{
		{
			name:    "no threads",
			spec:    Spec{},
			wantSub: "no threads",
		},
		{
			name:    "missing id",
			spec:    Spec{Threads: []ThreadSpec{{Count: 1, MaxLength: 1}}},
			wantSub: "missing id",
		},
		{
			name: "duplicate id",
			spec: Spec{Threads: []ThreadSpec{
				{ID: "A", Count: 1, MaxLength: 1},
				{ID: "A", Count: 1, MaxLength: 1},
			}},
			wantSub: "duplicate id",
		},
		{
			name:    "no bursts and no count",
			spec:    Spec{Threads: []ThreadSpec{{ID: "A"}}},
			wantSub: "count >= 1",
		},
		{
			name:    "bad max length",
			spec:    Spec{Threads: []ThreadSpec{{ID: "A", Count: 2}}},
			wantSub: "max_length",
		},
		{
			name:    "malformed burst pair",
			spec:    Spec{Threads: []ThreadSpec{{ID: "A", Bursts: [][]int{{3}}}}},
			wantSub: "[cpu, io] pair",
		},
		{
			name:    "zero cpu length",
			spec:    Spec{Threads: []ThreadSpec{{ID: "A", Bursts: [][]int{{0, 0}}}}},
			wantSub: "cpu length",
		},
		{
			name:    "negative io length",
			spec:    Spec{Threads: []ThreadSpec{{ID: "A", Bursts: [][]int{{1, -1}, {1, 0}}}}},
			wantSub: "io length",
		},
		{
			name:    "nonzero final io",
			spec:    Spec{Threads: []ThreadSpec{{ID: "A", Bursts: [][]int{{1, 2}}}}},
			wantSub: "final burst",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestBuildThreads_ExplicitBursts(t *testing.T) {
	spec := &Spec{Threads: []ThreadSpec{
		{ID: "A", Bursts: [][]int{{3, 2}, {1, 0}}},
	}}

	threads, err := BuildThreads(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("threads = %d, want 1", len(threads))
	}
	want := []sim.Burst{{CPU: 3, IO: 2}, {CPU: 1, IO: 0}}
	got := threads[0].Workload()
	if len(got) != len(want) {
		t.Fatalf("workload length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("burst %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if threads[0].State() != sim.StateNew {
		t.Errorf("built thread state = %s, want new", threads[0].State())
	}
}

func TestBuildThreads_CopiesGetSuffixedIDs(t *testing.T) {
	spec := &Spec{Seed: 7, Threads: []ThreadSpec{
		{ID: "W", Copies: 3, Count: 2, MaxLength: 4},
	}}

	threads, err := BuildThreads(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(threads) != 3 {
		t.Fatalf("threads = %d, want 3", len(threads))
	}
	wantIDs := []string{"W-1", "W-2", "W-3"}
	for i, th := range threads {
		if th.ID != wantIDs[i] {
			t.Errorf("thread %d id = %q, want %q", i, th.ID, wantIDs[i])
		}
	}
}

func TestBuildThreads_DeterministicForFixedSeed(t *testing.T) {
	spec := &Spec{Seed: 99, Threads: []ThreadSpec{
		{ID: "W", Copies: 4, Count: 3, MaxLength: 6},
	}}

	t1, err := BuildThreads(spec)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := BuildThreads(spec)
	if err != nil {
		t.Fatal(err)
	}

	for i := range t1 {
		w1, w2 := t1[i].Workload(), t2[i].Workload()
		if len(w1) != len(w2) {
			t.Fatalf("thread %d workload lengths differ", i)
		}
		for j := range w1 {
			if w1[j] != w2[j] {
				t.Errorf("thread %d burst %d differs: %+v vs %+v", i, j, w1[j], w2[j])
			}
		}
	}
}

func TestBuildThreads_AddingThreadKeepsExistingWorkloads(t *testing.T) {
	base := &Spec{Seed: 5, Threads: []ThreadSpec{
		{ID: "A", Count: 3, MaxLength: 5},
	}}
	extended := &Spec{Seed: 5, Threads: []ThreadSpec{
		{ID: "A", Count: 3, MaxLength: 5},
		{ID: "B", Count: 3, MaxLength: 5},
	}}

	t1, err := BuildThreads(base)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := BuildThreads(extended)
	if err != nil {
		t.Fatal(err)
	}

	w1, w2 := t1[0].Workload(), t2[0].Workload()
	for j := range w1 {
		if w1[j] != w2[j] {
			t.Errorf("thread A burst %d perturbed by adding B: %+v vs %+v", j, w1[j], w2[j])
		}
	}
}
