package core

import "fmt"

// Layer stores one attribute of a 2D grid in row-major order. Several layers
// sharing the same dimensions form a grid with co-indexed cell attributes.
type Layer[T comparable] struct {
	W, H int
	data []T
}

// NewLayer allocates a layer with the given dimensions.
func NewLayer[T comparable](w, h int) *Layer[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Layer[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (l *Layer[T]) Cells() []T { return l.data }

// InBounds reports whether (x, y) addresses a cell of the layer.
func (l *Layer[T]) InBounds(x, y int) bool {
	return x >= 0 && x < l.W && y >= 0 && y < l.H
}

// Index returns the linear slice index for coordinates (x, y). It panics when
// the coordinates fall outside the layer.
func (l *Layer[T]) Index(x, y int) int {
	if !l.InBounds(x, y) {
		panic(fmt.Sprintf("core: cell (%d,%d) outside %dx%d layer", x, y, l.W, l.H))
	}
	return y*l.W + x
}

// At returns the value stored at (x, y).
func (l *Layer[T]) At(x, y int) T { return l.data[l.Index(x, y)] }

// Set stores v at (x, y).
func (l *Layer[T]) Set(x, y int, v T) { l.data[l.Index(x, y)] = v }

// Fill sets every cell to v.
func (l *Layer[T]) Fill(v T) {
	for i := range l.data {
		l.data[i] = v
	}
}

// Count returns the number of cells equal to v.
func (l *Layer[T]) Count(v T) int {
	n := 0
	for _, c := range l.data {
		if c == v {
			n++
		}
	}
	return n
}

// Rows copies the layer into a freshly allocated slice of rows.
func (l *Layer[T]) Rows() [][]T {
	rows := make([][]T, l.H)
	for y := range rows {
		rows[y] = append([]T(nil), l.data[y*l.W:(y+1)*l.W]...)
	}
	return rows
}
