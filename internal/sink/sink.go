// Package sink holds display sinks for the city simulation. Every sink takes
// the final height grid of a run and a title.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Renderer is implemented by every display sink.
type Renderer interface {
	Render(title string, heights [][]int) error
}

// Func adapts a plain function to a Renderer.
type Func func(title string, heights [][]int) error

// Render calls f.
func (f Func) Render(title string, heights [][]int) error { return f(title, heights) }

// Tee fans a grid out to several sinks. Every sink is called even if an earlier
// one fails; the errors are joined.
func Tee(sinks ...Renderer) Renderer {
	return Func(func(title string, heights [][]int) error {
		var errs []error
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if err := s.Render(title, heights); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// dims returns the column and row counts of a height grid.
func dims(heights [][]int) (cols, rows int) {
	rows = len(heights)
	if rows > 0 {
		cols = len(heights[0])
	}
	return cols, rows
}

// maxOf returns the tallest height in the grid, at least 1.
func maxOf(heights [][]int) int {
	m := 1
	for _, row := range heights {
		for _, h := range row {
			if h > m {
				m = h
			}
		}
	}
	return m
}

// createFile opens path for writing, creating parent directories.
func createFile(path string) (*os.File, error) {
	clean := filepath.Clean(path)
	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", clean, err)
	}
	return f, nil
}
