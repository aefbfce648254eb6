package app

import (
	"fmt"
	"strconv"

	"citygrowth/internal/core"
	"citygrowth/internal/sims/city"
)

// NewSim builds and seeds the simulation selected by cfg. A config file only
// applies to the city sim; an explicit -seed overrides the seed it names,
// otherwise cfg.Seed takes the file's seed.
func NewSim(cfg *Config) (core.Sim, error) {
	if cfg.Sim == "city" && cfg.ConfigPath != "" {
		cc, err := city.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		if cfg.SeedSet {
			cc.Seed = cfg.Seed
		} else {
			cfg.Seed = cc.Seed
		}
		sim := city.NewWithConfig(cc)
		sim.Reset(cc.Seed)
		return sim, nil
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}
	sim := factory(map[string]string{"seed": strconv.FormatInt(cfg.Seed, 10)})
	sim.Reset(cfg.Seed)
	return sim, nil
}
