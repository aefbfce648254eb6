package city

import (
	"context"
	"sort"

	channerics "github.com/niceyeti/channerics/channels"
	"gonum.org/v1/gonum/stat"
)

// SweepPoint is one (growth rate, park probability) pair to evaluate.
type SweepPoint struct {
	GrowthRate      float64
	ParkProbability float64
}

// SweepResult aggregates the runs of one point over every seed.
type SweepResult struct {
	SweepPoint
	Runs          int
	MeanHeight    float64
	MeanHeightStd float64
	Demand        float64
	Pollution     float64
	// Exhausted counts the runs that stopped early.
	Exhausted int
}

// SweepGrid is the cross product of rates and park probabilities.
func SweepGrid(rates, parks []float64) []SweepPoint {
	points := make([]SweepPoint, 0, len(rates)*len(parks))
	for _, r := range rates {
		for _, p := range parks {
			points = append(points, SweepPoint{GrowthRate: r, ParkProbability: p})
		}
	}
	return points
}

// Sweep runs base once per point and seed on workers goroutines. Each run owns
// its own session. Results come back in the order of points.
func Sweep(ctx context.Context, base Config, points []SweepPoint, seeds []int64, workers int) ([]SweepResult, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}
	done := ctx.Done()

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := range points {
			select {
			case jobs <- i:
			case <-done:
				return
			}
		}
	}()

	worker := func() <-chan indexedResult {
		out := make(chan indexedResult)
		go func() {
			defer close(out)
			for i := range jobs {
				res := evaluatePoint(base, points[i], seeds)
				select {
				case out <- indexedResult{index: i, result: res}:
				case <-done:
					return
				}
			}
		}()
		return out
	}

	outs := make([]<-chan indexedResult, 0, workers)
	for i := 0; i < workers; i++ {
		outs = append(outs, worker())
	}

	var collected []indexedResult
	for r := range channerics.Merge(done, outs...) {
		collected = append(collected, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	results := make([]SweepResult, len(collected))
	for i, r := range collected {
		results[i] = r.result
	}
	return results, nil
}

type indexedResult struct {
	index  int
	result SweepResult
}

func evaluatePoint(base Config, p SweepPoint, seeds []int64) SweepResult {
	res := SweepResult{SweepPoint: p}
	if len(seeds) == 0 {
		return res
	}
	heights := make([]float64, 0, len(seeds))
	demand := make([]float64, 0, len(seeds))
	pollution := make([]float64, 0, len(seeds))

	for _, seed := range seeds {
		cfg := base
		cfg.Seed = seed
		cfg.Params.GrowthRate = p.GrowthRate
		cfg.Params.ParkProbability = p.ParkProbability

		s := NewSession(nil)
		if err := s.Reset(cfg); err != nil {
			continue
		}
		run, err := s.RunSteps(cfg)
		if err != nil {
			continue
		}
		res.Runs++
		if run.Exhausted {
			res.Exhausted++
		}
		heights = append(heights, run.Metrics.MeanHeight)
		demand = append(demand, float64(run.Metrics.Demand))
		pollution = append(pollution, float64(run.Metrics.Pollution))
	}
	if res.Runs == 0 {
		return res
	}
	res.MeanHeight, res.MeanHeightStd = stat.MeanStdDev(heights, nil)
	if res.Runs < 2 {
		res.MeanHeightStd = 0
	}
	res.Demand = stat.Mean(demand, nil)
	res.Pollution = stat.Mean(pollution, nil)
	return res
}
