package city

import (
	"math"
	"testing"

	"citygrowth/internal/core"
)

// fixedRand always draws the same value.
type fixedRand float64

func (f fixedRand) IntN(int) int     { return 0 }
func (f fixedRand) Float64() float64 { return float64(f) }

func uniformGrid(n int, z Zone, h int) *Grid {
	g := NewGrid(n)
	for i := range g.ZoneCells() {
		g.ZoneCells()[i] = z
		g.HeightCells()[i] = h
	}
	return g
}

func TestRatesForScalesByZone(t *testing.T) {
	r := RatesFor(0.2)
	want := map[Zone]float64{
		ZoneResidential: 0.1,
		ZoneCommercial:  0.2,
		ZoneIndustrial:  0.3,
		ZoneRoad:        0,
		ZonePark:        0,
	}
	for z, w := range want {
		if math.Abs(r.Rate(z)-w) > 1e-12 {
			t.Fatalf("%v rate = %g, want %g", z, r.Rate(z), w)
		}
	}
	if r.Rate(Zone(42)) != 0 {
		t.Fatal("unknown zones must default to 0")
	}
}

func TestEffectiveRateAddsBonusNextToRoad(t *testing.T) {
	g := uniformGrid(3, ZoneCommercial, 1)
	g.SetZone(1, 1, ZoneRoad)
	rates := BaseRates{ZoneCommercial: 0.5}

	if got := EffectiveRate(g, 0, 1, rates, 0.2); math.Abs(got-0.7) > 1e-12 {
		t.Fatalf("adjacent rate = %g, want 0.7", got)
	}
	if got := EffectiveRate(g, 0, 0, rates, 0.2); got != 0.5 {
		t.Fatalf("diagonal rate = %g, want 0.5", got)
	}
}

func TestEffectiveRateSkipsBonusAtOrAboveOne(t *testing.T) {
	g := uniformGrid(3, ZoneCommercial, 1)
	g.SetZone(1, 1, ZoneRoad)
	rates := BaseRates{ZoneCommercial: 1.0, ZoneIndustrial: 1.5}

	if got := EffectiveRate(g, 0, 1, rates, 0.2); got != 1.0 {
		t.Fatalf("rate = %g, want exactly 1.0", got)
	}
	g.SetZone(0, 1, ZoneIndustrial)
	if got := EffectiveRate(g, 0, 1, rates, 0.2); got != 1.5 {
		t.Fatalf("rate = %g, want exactly 1.5", got)
	}
}

func TestEffectiveRateSkipsBonusForZeroRate(t *testing.T) {
	g := uniformGrid(3, ZonePark, 1)
	g.SetZone(1, 1, ZoneRoad)
	if got := EffectiveRate(g, 0, 1, RatesFor(0.3), 0.2); got != 0 {
		t.Fatalf("park rate = %g, want 0", got)
	}
	if got := EffectiveRate(g, 1, 1, RatesFor(0.3), 0.2); got != 0 {
		t.Fatalf("road rate = %g, want 0", got)
	}
}

func TestStepBonusDecidesGrowth(t *testing.T) {
	g := uniformGrid(3, ZoneResidential, 1)
	g.SetZone(1, 1, ZoneRoad)
	l := NewLedger(1, 0)

	// Draw 0.3: base rate 0.25 fails, 0.25+0.2 near the road succeeds.
	if !Step(g, l, fixedRand(0.3), BaseRates{ZoneResidential: 0.25}, 0.2, 10) {
		t.Fatal("step refused")
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := 1
			if g.Zone(row, col) != ZoneRoad && g.NearRoad(row, col) {
				want = 2
			}
			if got := g.Height(row, col); got != want {
				t.Fatalf("(%d,%d) height %d, want %d", row, col, got, want)
			}
		}
	}
}

func TestStepCapsAtMaxHeight(t *testing.T) {
	g := uniformGrid(4, ZoneIndustrial, 4)
	g.SetHeight(0, 0, 9)
	l := NewLedger(10, 0)
	for i := 0; i < 10; i++ {
		Step(g, l, fixedRand(0), RatesFor(0.5), 0.2, 5)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			h := g.Height(row, col)
			if row == 0 && col == 0 {
				if h != 9 {
					t.Fatalf("cell above the cap must not decrease, got %d", h)
				}
				continue
			}
			if h != 5 {
				t.Fatalf("(%d,%d) height %d, want cap 5", row, col, h)
			}
		}
	}
}

func TestHeightsStayWithinBoundsOverManySteps(t *testing.T) {
	const maxHeight = 6
	g := NewGrid(20)
	rng := core.NewRNG(11)
	Seed(g, rng, maxHeight, 0.05)
	l := NewLedger(DefaultMaterial, DefaultPopulationCapacity)

	for i := 0; i < 500; i++ {
		Step(g, l, rng, RatesFor(0.5), 0.2, maxHeight)
	}
	for _, h := range g.HeightCells() {
		if h < 0 || h > maxHeight {
			t.Fatalf("height %d outside [0,%d]", h, maxHeight)
		}
	}
}
