package city

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid city configuration")

// Params holds the growth dials adjustable from the control panel.
type Params struct {
	GrowthRate      float64 `yaml:"growth_rate" json:"growth_rate"`
	MaxHeight       int     `yaml:"max_height" json:"max_height"`
	ParkProbability float64 `yaml:"park_probability" json:"park_probability"`
	StepCount       int     `yaml:"step_count" json:"step_count"`
	NearRoadBonus   float64 `yaml:"near_road_bonus" json:"near_road_bonus"`

	InitialMaterial    int `yaml:"initial_material" json:"initial_material"`
	PopulationCapacity int `yaml:"population_capacity" json:"population_capacity"`
}

// Config controls the city simulation dimensions, seed and dials.
type Config struct {
	Size int   `yaml:"size" json:"size"`
	Seed int64 `yaml:"seed" json:"seed"`

	Params Params `yaml:"params" json:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size: 20,
		Seed: 1337,
		Params: Params{
			GrowthRate:         0.1,
			MaxHeight:          10,
			ParkProbability:    0.05,
			StepCount:          50,
			NearRoadBonus:      0.2,
			InitialMaterial:    DefaultMaterial,
			PopulationCapacity: DefaultPopulationCapacity,
		},
	}
}

// Rates derives the zone base rates from the growth-rate dial.
func (c Config) Rates() BaseRates { return RatesFor(c.Params.GrowthRate) }

// Upper limits accepted by Validate. They are wider than the panel ranges so
// files and flags can go past the sliders, but keep one run bounded.
const (
	MaxSize          = 256
	MaxStepCount     = 1000
	MaxHeightLimit   = 100
	MaxGrowthRate    = 1.0
	MaxNearRoadBonus = 1.0
	MaxAmount        = 1_000_000
)

// Validate rejects configurations the simulation cannot run.
func (c Config) Validate() error {
	p := c.Params
	switch {
	case c.Size < 1 || c.Size > MaxSize:
		return fmt.Errorf("%w: size %d outside [1,%d]", ErrInvalidConfig, c.Size, MaxSize)
	case p.MaxHeight < 1 || p.MaxHeight > MaxHeightLimit:
		return fmt.Errorf("%w: max height %d outside [1,%d]", ErrInvalidConfig, p.MaxHeight, MaxHeightLimit)
	case p.StepCount < 0 || p.StepCount > MaxStepCount:
		return fmt.Errorf("%w: step count %d outside [0,%d]", ErrInvalidConfig, p.StepCount, MaxStepCount)
	case !(p.GrowthRate >= 0 && p.GrowthRate <= MaxGrowthRate):
		return fmt.Errorf("%w: growth rate %g outside [0,%g]", ErrInvalidConfig, p.GrowthRate, MaxGrowthRate)
	case !(p.ParkProbability >= 0 && p.ParkProbability <= 1):
		return fmt.Errorf("%w: park probability %g outside [0,1]", ErrInvalidConfig, p.ParkProbability)
	case !(p.NearRoadBonus >= 0 && p.NearRoadBonus <= MaxNearRoadBonus):
		return fmt.Errorf("%w: near-road bonus %g outside [0,%g]", ErrInvalidConfig, p.NearRoadBonus, MaxNearRoadBonus)
	case p.InitialMaterial < 0 || p.InitialMaterial > MaxAmount:
		return fmt.Errorf("%w: initial material %d outside [0,%d]", ErrInvalidConfig, p.InitialMaterial, MaxAmount)
	case p.PopulationCapacity < 0 || p.PopulationCapacity > MaxAmount:
		return fmt.Errorf("%w: population capacity %d outside [0,%d]", ErrInvalidConfig, p.PopulationCapacity, MaxAmount)
	}
	return nil
}

// LoadConfig reads a YAML file on top of the defaults. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	clean := filepath.Clean(path)
	data, err := os.ReadFile(clean)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", clean, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// YAML encodes the config in the format read by LoadConfig.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply overlays flag-style key/value pairs onto c.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= MaxSize {
			c.Size = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["growth_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= MaxGrowthRate {
			c.Params.GrowthRate = parsed
		}
	}
	if v, ok := cfg["max_height"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= MaxHeightLimit {
			c.Params.MaxHeight = parsed
		}
	}
	if v, ok := cfg["park_probability"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.ParkProbability = parsed
		}
	}
	if v, ok := cfg["step_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxStepCount {
			c.Params.StepCount = parsed
		}
	}
	if v, ok := cfg["near_road_bonus"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= MaxNearRoadBonus {
			c.Params.NearRoadBonus = parsed
		}
	}
	if v, ok := cfg["initial_material"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxAmount {
			c.Params.InitialMaterial = parsed
		}
	}
	if v, ok := cfg["population_capacity"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxAmount {
			c.Params.PopulationCapacity = parsed
		}
	}
}
