package city

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// demandCeiling is the demand reported for a city without residential cells.
const demandCeiling = 1000

// Demand is the unmet residential demand: 1000 minus the residential cell
// count, floored at zero.
func Demand(g *Grid) int {
	d := demandCeiling - g.Count(ZoneResidential)
	if d < 0 {
		return 0
	}
	return d
}

// Pollution is the number of industrial cells.
func Pollution(g *Grid) int { return g.Count(ZoneIndustrial) }

// Metrics is a read-only summary of the grid and ledger.
type Metrics struct {
	Material     int            `json:"material"`
	Population   int            `json:"population_capacity"`
	Demand       int            `json:"demand"`
	Pollution    int            `json:"pollution"`
	MeanHeight   float64        `json:"mean_height"`
	HeightStdDev float64        `json:"height_stddev"`
	ZoneCounts   map[string]int `json:"zone_counts"`
}

// Measure computes the metrics for g and l. It has no side effects.
func Measure(g *Grid, l *Ledger) Metrics {
	m := Metrics{
		Demand:     Demand(g),
		Pollution:  Pollution(g),
		ZoneCounts: make(map[string]int, zoneCount),
	}
	if l != nil {
		m.Material = l.Material
		m.Population = l.PopulationCapacity
	}
	for _, z := range Zones() {
		m.ZoneCounts[z.String()] = g.Count(z)
	}

	cells := g.HeightCells()
	xs := make([]float64, len(cells))
	for i, h := range cells {
		xs[i] = float64(h)
	}
	switch len(xs) {
	case 0:
	case 1:
		m.MeanHeight = xs[0]
	default:
		mean, std := stat.MeanStdDev(xs, nil)
		m.MeanHeight = mean
		if !math.IsNaN(std) {
			m.HeightStdDev = std
		}
	}
	return m
}
