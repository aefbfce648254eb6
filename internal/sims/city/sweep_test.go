package city

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sweepConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 8
	cfg.Params.StepCount = 10
	return cfg
}

func TestSweepGridCrossProduct(t *testing.T) {
	points := SweepGrid([]float64{0.1, 0.2}, []float64{0, 0.05, 0.1})
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if points[4] != (SweepPoint{GrowthRate: 0.2, ParkProbability: 0.05}) {
		t.Fatalf("unexpected ordering: %+v", points)
	}
}

func TestSweepIsDeterministicAcrossWorkerCounts(t *testing.T) {
	points := SweepGrid([]float64{0, 0.1, 0.3}, []float64{0, 0.1})
	seeds := []int64{1, 2, 3}

	one, err := Sweep(context.Background(), sweepConfig(), points, seeds, 1)
	if err != nil {
		t.Fatal(err)
	}
	four, err := Sweep(context.Background(), sweepConfig(), points, seeds, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(one, four); diff != "" {
		t.Fatalf("worker count changed results (-1 +4):\n%s", diff)
	}
	for i, r := range one {
		if r.SweepPoint != points[i] {
			t.Fatalf("result %d out of order: %+v", i, r.SweepPoint)
		}
		if r.Runs != len(seeds) {
			t.Fatalf("point %d: expected %d runs, got %d", i, len(seeds), r.Runs)
		}
	}
}

func TestSweepZeroGrowthKeepsSeedHeights(t *testing.T) {
	cfg := sweepConfig()
	points := []SweepPoint{{GrowthRate: 0, ParkProbability: 0}}
	res, err := Sweep(context.Background(), cfg, points, []int64{5}, 2)
	if err != nil {
		t.Fatal(err)
	}

	seeded := cfg
	seeded.Seed = 5
	seeded.Params.GrowthRate = 0
	seeded.Params.ParkProbability = 0
	s := NewSession(nil)
	if err := s.Reset(seeded); err != nil {
		t.Fatal(err)
	}
	want := Measure(s.Grid(), s.Ledger()).MeanHeight
	if res[0].MeanHeight != want {
		t.Fatalf("mean height %v, want seeded %v", res[0].MeanHeight, want)
	}
	if res[0].MeanHeightStd != 0 {
		t.Fatalf("single run should report zero spread, got %v", res[0].MeanHeightStd)
	}
}

func TestSweepRejectsInvalidBase(t *testing.T) {
	cfg := sweepConfig()
	cfg.Size = 0
	if _, err := Sweep(context.Background(), cfg, nil, nil, 1); err == nil {
		t.Fatal("expected invalid config error")
	}
}

func TestSweepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	points := SweepGrid([]float64{0.1}, []float64{0})
	if _, err := Sweep(ctx, sweepConfig(), points, []int64{1}, 2); err == nil {
		t.Fatal("expected context error")
	}
}
