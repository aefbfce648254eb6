package city

import (
	"math"
	"strconv"

	"citygrowth/internal/core"
)

// Control panel keys.
const (
	KeyGrowthRate      = "growth_rate"
	KeyMaxHeight       = "max_height"
	KeyParkProbability = "park_probability"
	KeyStepCount       = "step_count"
	KeyNearRoadBonus   = "near_road_bonus"
)

// PanelControls lists the adjustable dials with their panel ranges.
func PanelControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: KeyGrowthRate, Label: "Growth rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 0.5, HasMin: true, HasMax: true},
		{Key: KeyMaxHeight, Label: "Max height", Type: core.ParamTypeInt, Step: 1, Min: 5, Max: 30, HasMin: true, HasMax: true},
		{Key: KeyParkProbability, Label: "Park prob", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 0.2, HasMin: true, HasMax: true},
		{Key: KeyStepCount, Label: "Steps", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 200, HasMin: true, HasMax: true},
		{Key: KeyNearRoadBonus, Label: "Road bonus", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

func controlFor(key string) (core.ParameterControl, bool) {
	for _, c := range PanelControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// ParameterControls implements core.ParameterControlsProvider.
func (s *Sim) ParameterControls() []core.ParameterControl { return PanelControls() }

// Parameters implements the HUD parameter snapshot. Once the city is seeded it
// also carries a read-only "City" group with the live indicators.
func (s *Sim) Parameters() core.ParameterSnapshot {
	snap := Snapshot(s.session.Config(), s.session.Ledger())
	if s.session.Grid() == nil {
		return snap
	}
	m := s.session.Metrics()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "City",
		Params: []core.Parameter{
			intParam("steps_taken", "Steps taken", s.session.StepsTaken()),
			intParam("demand", "Demand", m.Demand),
			intParam("pollution", "Pollution", m.Pollution),
			floatParam("mean_height", "Mean height", math.Round(m.MeanHeight*100)/100),
		},
	})
	return snap
}

// Snapshot describes cfg and the ledger state as parameter groups.
func Snapshot(cfg Config, ledger *Ledger) core.ParameterSnapshot {
	p := cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("size", "Size", cfg.Size),
				int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				floatParam(KeyGrowthRate, "Growth rate", p.GrowthRate),
				intParam(KeyMaxHeight, "Max height", p.MaxHeight),
				floatParam(KeyParkProbability, "Park prob", p.ParkProbability),
				intParam(KeyStepCount, "Steps", p.StepCount),
				floatParam(KeyNearRoadBonus, "Road bonus", p.NearRoadBonus),
			},
		},
	}
	resources := core.ParameterGroup{
		Name: "Resources",
		Params: []core.Parameter{
			intParam("initial_material", "Initial material", p.InitialMaterial),
			intParam("population_capacity", "Population capacity", p.PopulationCapacity),
		},
	}
	if ledger != nil {
		resources.Params = append(resources.Params, intParam("material", "Material", ledger.Material))
	}
	groups = append(groups, resources)
	return core.ParameterSnapshot{Groups: groups}
}

// SetIntParameter implements core.IntParameterSetter. Values are clamped to
// the panel range.
func (s *Sim) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	v := int(ctrl.Clamp(float64(value)))
	p := s.session.Config().Params
	switch key {
	case KeyMaxHeight:
		p.MaxHeight = v
	case KeyStepCount:
		p.StepCount = v
	default:
		return false
	}
	return s.apply(p)
}

// SetFloatParameter implements core.FloatParameterSetter. Values are clamped
// to the panel range.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	v := ctrl.Clamp(value)
	p := s.session.Config().Params
	switch key {
	case KeyGrowthRate:
		p.GrowthRate = v
	case KeyParkProbability:
		p.ParkProbability = v
	case KeyNearRoadBonus:
		p.NearRoadBonus = v
	default:
		return false
	}
	return s.apply(p)
}

func (s *Sim) apply(p Params) bool {
	if err := s.session.SetParams(p); err != nil {
		return false
	}
	s.cfg.Params = p
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
