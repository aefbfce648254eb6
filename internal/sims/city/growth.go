package city

// BaseRates maps each zone to its per-step growth probability before the
// near-road bonus. Zones missing from the map grow with probability 0.
type BaseRates map[Zone]float64

// RatesFor derives the zone rates from the growth-rate dial.
func RatesFor(growthRate float64) BaseRates {
	return BaseRates{
		ZoneResidential: growthRate * 0.5,
		ZoneCommercial:  growthRate,
		ZoneIndustrial:  growthRate * 1.5,
		ZoneRoad:        0,
		ZonePark:        0,
	}
}

// Rate returns the base rate of z, or 0 for unknown zones.
func (r BaseRates) Rate(z Zone) float64 { return r[z] }

// EffectiveRate is the growth probability used for (row, col) in a step. The
// near-road bonus only applies when the base rate lies strictly between 0 and 1.
func EffectiveRate(g *Grid, row, col int, rates BaseRates, nearRoadBonus float64) float64 {
	rate := rates.Rate(g.Zone(row, col))
	if rate > 0 && rate < 1.0 && g.NearRoad(row, col) {
		rate += nearRoadBonus
	}
	return rate
}

// Step applies one growth tick. It spends one unit of material from the ledger
// and reports false without touching the grid when none is left. Otherwise
// every cell, in row-major order, grows by one with its effective rate, capped
// at maxHeight. Heights never decrease.
//
// Zones are not modified during a step, so the road adjacency seen by every
// cell is the pre-step layout regardless of visiting order.
func Step(g *Grid, ledger *Ledger, rng Rand, rates BaseRates, nearRoadBonus float64, maxHeight int) bool {
	if !ledger.CheckAndConsume() {
		return false
	}
	n := g.N()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			rate := EffectiveRate(g, row, col, rates, nearRoadBonus)
			if rng.Float64() < rate {
				grow(g, row, col, maxHeight)
			}
		}
	}
	return true
}

func grow(g *Grid, row, col, maxHeight int) {
	h := g.Height(row, col)
	if h >= maxHeight {
		return
	}
	g.SetHeight(row, col, h+1)
}
