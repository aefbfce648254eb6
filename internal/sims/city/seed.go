package city

// Rand is the random source consumed by seeding and growth. *rand.Rand from
// math/rand/v2 and *core.RNG both satisfy it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Initialize draws every height uniformly from [1, maxHeight] and every zone
// uniformly from residential, commercial and industrial. All heights are drawn
// before any zone so a seed always yields the same layout.
func Initialize(g *Grid, rng Rand, maxHeight int) {
	if maxHeight < 1 {
		maxHeight = 1
	}
	heights := g.HeightCells()
	for i := range heights {
		heights[i] = 1 + rng.IntN(maxHeight)
	}
	zones := g.ZoneCells()
	for i := range zones {
		zones[i] = seedZones[rng.IntN(len(seedZones))]
	}
}

// AddRoads turns the middle row and the middle column into road, overwriting
// whatever zone was there.
func AddRoads(g *Grid) {
	mid := g.N() / 2
	for i := 0; i < g.N(); i++ {
		g.SetZone(mid, i, ZoneRoad)
		g.SetZone(i, mid, ZoneRoad)
	}
}

// AddParks turns each cell into park with probability p. It runs after
// AddRoads, so parks can replace road cells.
func AddParks(g *Grid, rng Rand, p float64) {
	zones := g.ZoneCells()
	for i := range zones {
		if rng.Float64() < p {
			zones[i] = ZonePark
		}
	}
}

// Seed performs a full reseed of the grid: Initialize, AddRoads, AddParks.
func Seed(g *Grid, rng Rand, maxHeight int, parkProbability float64) {
	Initialize(g, rng, maxHeight)
	AddRoads(g)
	AddParks(g, rng, parkProbability)
}
