package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citygrowth/internal/monitoring"
	"citygrowth/internal/sims/city"
)

func TestRunPrintsIndicatorsEveryRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-size", "6", "-steps", "4", "-runs", "2"}, &out))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Materials: "))
	assert.Contains(t, text, "Run 1: After 4 steps")
	assert.Contains(t, text, "Materials: 996")
	assert.Contains(t, text, "Materials: 992")
	assert.Contains(t, text, "Demand: ")
	assert.Contains(t, text, "Pollution: ")
}

func TestRunResetEveryRestoresMaterials(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-size", "5", "-steps", "3", "-runs", "3", "-reset-every", "2", "-seed", "10"}, &out))

	text := out.String()
	assert.Contains(t, text, "Reset with seed 12")
	assert.Equal(t, 2, strings.Count(text, "Materials: 997"))
	assert.Equal(t, 1, strings.Count(text, "Materials: 994"))
}

func TestRunASCIIPrintsGrid(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-size", "4", "-steps", "1", "-ascii"}, &out))

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "After 1 steps", lines[0])
	for _, l := range lines[1:5] {
		assert.Len(t, l, 4)
	}
}

func TestRunWritesFileSinks(t *testing.T) {
	dir := t.TempDir()
	surface := filepath.Join(dir, "out", "surface.html")
	heatmap := filepath.Join(dir, "out", "heat.png")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-size", "5", "-steps", "2", "-surface", surface, "-heatmap", heatmap}, &out))

	_, err := os.Stat(surface)
	assert.NoError(t, err)
	_, err = os.Stat(heatmap)
	assert.NoError(t, err)
}

func TestRunFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 7\nparams:\n  step_count: 2\n  initial_material: 1\n"), 0o644))

	var logs []string
	defer monitoring.Capture(&logs)()

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", path, "-steps", "5"}, &out))
	assert.Contains(t, out.String(), "After 5 steps")
	assert.Contains(t, out.String(), "Materials exhausted at step 1")
	assert.Equal(t, []string{"city: materials exhausted at step 1"}, logs)
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-max-height", "0"}, &out)
	assert.ErrorIs(t, err, city.ErrInvalidConfig)

	err = run([]string{"-runs", "0"}, &out)
	assert.Error(t, err)
}
