package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = [][]int{
	{1, 2, 3},
	{4, 10, 6},
	{7, 8, 40},
}

func TestASCIIPrintsOneGlyphPerCell(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ASCII{W: &buf}).Render("After 3 steps", sample))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "After 3 steps", lines[0])
	assert.Equal(t, "123", lines[1])
	assert.Equal(t, "4a6", lines[2])
	assert.Equal(t, "78+", lines[3])
}

func TestWriteSurfaceEmitsHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSurface(&buf, "After 50 steps", sample, 10))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "After 50 steps")
	assert.Contains(t, html, "echarts")
}

func TestWriteHeatmapEmitsPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeatmap(&buf, "After 50 steps", sample, 0))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "expected PNG signature")
}

func TestWriteHeatmapRejectsEmptyGrid(t *testing.T) {
	err := WriteHeatmap(&bytes.Buffer{}, "empty", nil, 5)
	assert.Error(t, err)
}

func TestFileSinksCreateDirectories(t *testing.T) {
	dir := t.TempDir()
	surface := &Surface{Path: filepath.Join(dir, "out", "city.html")}
	heat := &Heatmap{Path: filepath.Join(dir, "out", "city.png")}

	require.NoError(t, Tee(surface, heat).Render("flat", [][]int{{2, 2}, {2, 2}}))

	for _, p := range []string{surface.Path, heat.Path} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestTeeCallsEverySinkAndJoinsErrors(t *testing.T) {
	var calls []string
	first := Func(func(title string, _ [][]int) error {
		calls = append(calls, "first:"+title)
		return errors.New("boom")
	})
	second := Func(func(title string, _ [][]int) error {
		calls = append(calls, "second:"+title)
		return nil
	})

	err := Tee(first, nil, second).Render("t", sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"first:t", "second:t"}, calls)
}
