package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"citygrowth/internal/monitoring"
	"citygrowth/internal/sims/city"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	var out []float64
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

type options struct {
	steps      int
	seeds      int
	workers    int
	size       int
	configPath string
	top        int
	quiet      bool
	rates      floatList
	parks      floatList
	overrides  kvList
}

func defaultOptions() *options {
	d := city.DefaultConfig()
	return &options{
		steps:   d.Params.StepCount,
		seeds:   8,
		workers: runtime.NumCPU(),
		size:    d.Size,
		quiet:   true,
		rates:   floatList{0.05, 0.1, 0.2, 0.3, 0.4, 0.5},
		parks:   floatList{0, 0.05, 0.1, 0.2},
	}
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.IntVar(&o.steps, "steps", o.steps, "growth steps per run")
	fs.IntVar(&o.seeds, "seeds", o.seeds, "runs per parameter pair, seeded 1..n")
	fs.IntVar(&o.workers, "workers", o.workers, "number of worker goroutines")
	fs.IntVar(&o.size, "size", o.size, "grid size")
	fs.StringVar(&o.configPath, "config", o.configPath, "YAML base configuration")
	fs.IntVar(&o.top, "top", o.top, "only print the n tallest results (0 prints all)")
	fs.BoolVar(&o.quiet, "quiet", o.quiet, "mute per-run exhaustion warnings")
	fs.Var(&o.rates, "rates", "comma-separated growth rates to sweep")
	fs.Var(&o.parks, "parks", "comma-separated park probabilities to sweep")
	fs.Var(&o.overrides, "set", "parameter override in key=value form (repeatable)")
}

// config starts from the config file, or the defaults, then applies -size and
// -steps when given and the -set overrides last.
func (o *options) config(fs *flag.FlagSet) (city.Config, error) {
	base := city.DefaultConfig()
	if o.configPath != "" {
		loaded, err := city.LoadConfig(o.configPath)
		if err != nil {
			return base, err
		}
		base = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			base.Size = o.size
		case "steps":
			base.Params.StepCount = o.steps
		}
	})
	kv := map[string]string{}
	for _, ov := range o.overrides {
		parts := strings.SplitN(ov, "=", 2)
		if len(parts) != 2 {
			return base, fmt.Errorf("override %q is not key=value", ov)
		}
		kv[parts[0]] = parts[1]
	}
	base.Apply(kv)
	return base, base.Validate()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("growth-sweep", flag.ContinueOnError)
	opts := defaultOptions()
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.seeds < 1 {
		return fmt.Errorf("seeds %d must be at least 1", opts.seeds)
	}
	base, err := opts.config(fs)
	if err != nil {
		return err
	}
	if opts.quiet {
		monitoring.SetLogger(nil)
	}

	seedList := make([]int64, opts.seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}
	points := city.SweepGrid(opts.rates, opts.parks)

	fmt.Fprintf(stdout, "Sweeping %d parameter pairs x %d seeds (%d workers, %d steps, %dx%d grid)\n",
		len(points), opts.seeds, opts.workers, base.Params.StepCount, base.Size, base.Size)
	start := time.Now()
	results, err := city.Sweep(ctx, base, points, seedList, opts.workers)
	if err != nil {
		return err
	}

	if opts.top > 0 {
		sort.SliceStable(results, func(i, j int) bool { return results[i].MeanHeight > results[j].MeanHeight })
		if opts.top < len(results) {
			results = results[:opts.top]
		}
	}

	fmt.Fprintf(stdout, "%-8s %-8s %12s %10s %10s %10s\n", "rate", "parks", "mean height", "std", "demand", "pollution")
	for _, r := range results {
		line := fmt.Sprintf("%-8.3f %-8.3f %12.3f %10.3f %10.1f %10.1f",
			r.GrowthRate, r.ParkProbability, r.MeanHeight, r.MeanHeightStd, r.Demand, r.Pollution)
		if r.Exhausted > 0 {
			line += fmt.Sprintf("  (%d/%d exhausted)", r.Exhausted, r.Runs)
		}
		fmt.Fprintln(stdout, line)
	}
	fmt.Fprintf(stdout, "\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}
