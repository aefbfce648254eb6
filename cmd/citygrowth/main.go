// Command citygrowth runs the city growth simulation headless and writes the
// final grid to the selected display sinks.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"citygrowth/internal/sims/city"
	"citygrowth/internal/sink"
)

type options struct {
	configPath string
	runs       int
	resetEvery int
	surface    string
	heatmap    string
	ascii      bool

	size          int
	seed          int64
	growthRate    float64
	maxHeight     int
	parkProb      float64
	steps         int
	nearRoadBonus float64
}

func defaultOptions() *options {
	d := city.DefaultConfig()
	return &options{
		runs:          1,
		size:          d.Size,
		seed:          d.Seed,
		growthRate:    d.Params.GrowthRate,
		maxHeight:     d.Params.MaxHeight,
		parkProb:      d.Params.ParkProbability,
		steps:         d.Params.StepCount,
		nearRoadBonus: d.Params.NearRoadBonus,
	}
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", o.configPath, "YAML configuration file")
	fs.IntVar(&o.runs, "runs", o.runs, "number of runs against the same session")
	fs.IntVar(&o.resetEvery, "reset-every", o.resetEvery, "reset the city before every k-th run (0 never resets)")
	fs.StringVar(&o.surface, "surface", o.surface, "write a 3D surface HTML page to this path")
	fs.StringVar(&o.heatmap, "heatmap", o.heatmap, "write a PNG heat map to this path")
	fs.BoolVar(&o.ascii, "ascii", o.ascii, "print the height grid as text")

	fs.IntVar(&o.size, "size", o.size, "grid size N")
	fs.Int64Var(&o.seed, "seed", o.seed, "random seed")
	fs.Float64Var(&o.growthRate, "growth-rate", o.growthRate, "base growth rate")
	fs.IntVar(&o.maxHeight, "max-height", o.maxHeight, "height cap")
	fs.Float64Var(&o.parkProb, "park-prob", o.parkProb, "park probability at seeding")
	fs.IntVar(&o.steps, "steps", o.steps, "growth steps per run")
	fs.Float64Var(&o.nearRoadBonus, "road-bonus", o.nearRoadBonus, "near-road growth bonus")
}

// config starts from the config file, or the defaults, and overlays the flags
// that were given explicitly.
func (o *options) config(fs *flag.FlagSet) (city.Config, error) {
	cfg := city.DefaultConfig()
	if o.configPath != "" {
		loaded, err := city.LoadConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Size = o.size
		case "seed":
			cfg.Seed = o.seed
		case "growth-rate":
			cfg.Params.GrowthRate = o.growthRate
		case "max-height":
			cfg.Params.MaxHeight = o.maxHeight
		case "park-prob":
			cfg.Params.ParkProbability = o.parkProb
		case "steps":
			cfg.Params.StepCount = o.steps
		case "road-bonus":
			cfg.Params.NearRoadBonus = o.nearRoadBonus
		}
	})
	return cfg, cfg.Validate()
}

func (o *options) sinks(stdout io.Writer, maxHeight int) city.Sink {
	var out []sink.Renderer
	if o.ascii {
		out = append(out, &sink.ASCII{W: stdout})
	}
	if o.surface != "" {
		out = append(out, &sink.Surface{Path: o.surface, MaxHeight: maxHeight})
	}
	if o.heatmap != "" {
		out = append(out, &sink.Heatmap{Path: o.heatmap, MaxHeight: maxHeight})
	}
	if len(out) == 0 {
		return nil
	}
	return sink.Tee(out...)
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("citygrowth", flag.ContinueOnError)
	opts := defaultOptions()
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := opts.config(fs)
	if err != nil {
		return err
	}
	if opts.runs < 1 {
		return fmt.Errorf("runs %d must be at least 1", opts.runs)
	}

	session := city.NewSession(opts.sinks(stdout, cfg.Params.MaxHeight))
	if err := session.Reset(cfg); err != nil {
		return err
	}
	for i := 0; i < opts.runs; i++ {
		if opts.resetEvery > 0 && i > 0 && i%opts.resetEvery == 0 {
			next := cfg
			next.Seed = cfg.Seed + int64(i)
			if err := session.Reset(next); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Reset with seed %d\n", next.Seed)
		}
		res, err := session.RunSteps(cfg)
		if err != nil {
			return err
		}
		report(stdout, i+1, res)
	}
	return nil
}

func report(w io.Writer, n int, res city.RunResult) {
	fmt.Fprintf(w, "Run %d: %s\n", n, res.Title)
	if res.Exhausted {
		fmt.Fprintf(w, "  Materials exhausted at step %d\n", *res.StoppedAt)
	}
	fmt.Fprintf(w, "  Materials: %d\n", res.Metrics.Material)
	fmt.Fprintf(w, "  Demand: %d\n", res.Metrics.Demand)
	fmt.Fprintf(w, "  Pollution: %d\n", res.Metrics.Pollution)
	fmt.Fprintf(w, "  Mean height: %.2f (sd %.2f)\n", res.Metrics.MeanHeight, res.Metrics.HeightStdDev)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}
