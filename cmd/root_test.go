package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkload_RandomFlags(t *testing.T) {
	// Flag defaults: 5 threads, 3 bursts each, max length 5.
	threads, err := buildWorkload()

	require.NoError(t, err)
	require.Len(t, threads, 5)
	for _, th := range threads {
		workload := th.Workload()
		assert.Len(t, workload, 3)
		assert.Zero(t, workload[len(workload)-1].IO)
	}
}

func TestBuildWorkload_SpecFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	yaml := `
seed: 1
threads:
  - id: "A"
    bursts: [[2, 0]]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	old := workloadPath
	workloadPath = path
	defer func() { workloadPath = old }()

	threads, err := buildWorkload()

	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "A", threads[0].ID)
}

func TestBuildWorkload_BadSpecFile(t *testing.T) {
	old := workloadPath
	workloadPath = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { workloadPath = old }()

	_, err := buildWorkload()

	assert.Error(t, err)
}
