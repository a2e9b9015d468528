package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neuroevolution-go/neuroevolution/nn"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestEvolveWritesStatsAndCheckpoint(t *testing.T) {
	dir := t.TempDir()
	statsPath := filepath.Join(dir, "stats.csv")
	checkpointPath := filepath.Join(dir, "xor.gz")

	out, err := execute(t, "evolve",
		"--generations", "3",
		"--population", "10",
		"--seed", "7",
		"--log-level", "error",
		"--stats", statsPath,
		"--checkpoint", checkpointPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Best genome after 3 generations")

	f, err := os.Open(statsPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "generation", rows[0][0])
	assert.Equal(t, []string{"1", "2", "3"}, []string{rows[1][0], rows[2][0], rows[3][0]})

	out, err = execute(t, "inspect", checkpointPath)
	require.NoError(t, err)
	assert.Contains(t, out, "generation:   4")
	assert.Contains(t, out, "population:   10 (10 pending)")
	assert.Contains(t, out, "architecture: 2,2,1")
	assert.Contains(t, out, "population-ready")

	out, err = execute(t, "evolve", "--resume", "--checkpoint", checkpointPath, "--generations", "2", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Best genome after 5 generations")
}

func TestEvolveWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "xor.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
neuroevolution:
  population_size: 8
  architecture: [2, 3, 1]
  seed: 3
`), 0o644))

	out, err := execute(t, "evolve", "--config", configPath, "--generations", "2", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Best genome after 2 generations")
}

func TestEvolveRejectsBadArchitecture(t *testing.T) {
	_, err := execute(t, "evolve", "--architecture", "3,1", "--generations", "1", "--log-level", "error")
	require.ErrorContains(t, err, "XOR task needs 2 inputs")

	_, err = execute(t, "evolve", "--resume", "--log-level", "error")
	require.ErrorContains(t, err, "--resume needs --checkpoint")
}

func TestEvolveResumeRejectsConfigFlags(t *testing.T) {
	checkpointPath := filepath.Join(t.TempDir(), "xor.gz")
	_, err := execute(t, "evolve", "--generations", "1", "--population", "4", "--checkpoint", checkpointPath, "--log-level", "error")
	require.NoError(t, err)

	for _, flag := range [][]string{
		{"--population", "6"},
		{"--architecture", "2,3,1"},
		{"--seed", "9"},
		{"--config", "xor.yaml"},
	} {
		args := append([]string{"evolve", "--resume", "--checkpoint", checkpointPath, "--log-level", "error"}, flag...)
		_, err := execute(t, args...)
		require.ErrorContains(t, err, flag[0]+" cannot be combined with --resume")
	}
}

func TestEvalXOR(t *testing.T) {
	networks, err := loadXORNetworks()
	require.NoError(t, err)

	scores, err := evalXOR(networks)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	// All-zero weights output 0.5 everywhere: SSE = 1, score = 9.
	assert.InDelta(t, 9.0, scores[0], 1e-9)
}

func loadXORNetworks() ([]*nn.Network, error) {
	network, err := nn.FromWeights(nn.Architecture{2, 2, 1}, make([]float64, 6))
	if err != nil {
		return nil, err
	}
	return []*nn.Network{network}, nil
}
