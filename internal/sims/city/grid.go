package city

import "citygrowth/internal/core"

// Grid holds the per-cell attributes of the city as two co-indexed dense
// layers. Cells are addressed by (row, col); coordinates outside [0, N) panic.
type Grid struct {
	n       int
	heights *core.Layer[int]
	zones   *core.Layer[Zone]
}

// NewGrid allocates an n×n grid with zero heights and residential zones.
func NewGrid(n int) *Grid {
	if n <= 0 {
		n = 1
	}
	return &Grid{
		n:       n,
		heights: core.NewLayer[int](n, n),
		zones:   core.NewLayer[Zone](n, n),
	}
}

// N returns the side length of the grid.
func (g *Grid) N() int { return g.n }

// Height returns the height of the cell at (row, col).
func (g *Grid) Height(row, col int) int { return g.heights.At(col, row) }

// SetHeight stores the height of the cell at (row, col).
func (g *Grid) SetHeight(row, col, h int) { g.heights.Set(col, row, h) }

// Zone returns the zone of the cell at (row, col).
func (g *Grid) Zone(row, col int) Zone { return g.zones.At(col, row) }

// SetZone stores the zone of the cell at (row, col).
func (g *Grid) SetZone(row, col int, z Zone) { g.zones.Set(col, row, z) }

// Count returns how many cells carry zone z.
func (g *Grid) Count(z Zone) int { return g.zones.Count(z) }

// HeightCells exposes the raw row-major height layer.
func (g *Grid) HeightCells() []int { return g.heights.Cells() }

// ZoneCells exposes the raw row-major zone layer.
func (g *Grid) ZoneCells() []Zone { return g.zones.Cells() }

// Heights returns a copy of the height layer as rows.
func (g *Grid) Heights() [][]int { return g.heights.Rows() }

// Zones returns a copy of the zone layer as rows.
func (g *Grid) Zones() [][]Zone { return g.zones.Rows() }

// NearRoad reports whether any of the four orthogonal neighbours of (row, col)
// is a road. Neighbours outside the grid are skipped; there is no wraparound.
func (g *Grid) NearRoad(row, col int) bool {
	if row > 0 && g.Zone(row-1, col) == ZoneRoad {
		return true
	}
	if row < g.n-1 && g.Zone(row+1, col) == ZoneRoad {
		return true
	}
	if col > 0 && g.Zone(row, col-1) == ZoneRoad {
		return true
	}
	if col < g.n-1 && g.Zone(row, col+1) == ZoneRoad {
		return true
	}
	return false
}
