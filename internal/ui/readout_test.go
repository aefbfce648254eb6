package ui

import (
	"testing"

	"citygrowth/internal/core"
)

func TestReadoutsSkipAdjustableParams(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Growth", Params: []core.Parameter{
			{Key: "growth_rate", Label: "Growth rate", Value: "0.1"},
			{Key: "material", Label: "Material", Value: "990"},
		}},
		{Name: "City", Params: []core.Parameter{
			{Key: "demand", Label: "Demand", Value: "870"},
		}},
	}}
	controls := []core.ParameterControl{{Key: "growth_rate"}}

	got := readouts(snap, controls)
	if len(got) != 2 {
		t.Fatalf("expected 2 readouts, got %d: %+v", len(got), got)
	}
	if got[0].label != "Material" || got[0].value != "990" {
		t.Fatalf("unexpected first readout %+v", got[0])
	}
	if got[1].group != "City" {
		t.Fatalf("expected City group, got %q", got[1].group)
	}
}

func TestFormatFloatPrecisionFollowsStep(t *testing.T) {
	cases := []struct {
		step float64
		want string
	}{
		{0.0005, "0.1235"},
		{0.005, "0.123"},
		{0.05, "0.12"},
		{0.5, "0.1"},
	}
	for _, tc := range cases {
		got := formatFloat(core.ParameterControl{Step: tc.step}, 0.123456)
		if got != tc.want {
			t.Fatalf("step %v: expected %s, got %s", tc.step, tc.want, got)
		}
	}
}

func TestNudgeClampsToRange(t *testing.T) {
	ctrl := core.ParameterControl{Type: core.ParamTypeInt, Step: 1, Min: 5, Max: 30, HasMin: true, HasMax: true}
	if v, ok := nudge(ctrl, 10, 1); !ok || v != 11 {
		t.Fatalf("expected 11, got %v (%v)", v, ok)
	}
	if _, ok := nudge(ctrl, 30, 1); ok {
		t.Fatal("nudge above max should report no change")
	}
	if _, ok := nudge(ctrl, 5, -1); ok {
		t.Fatal("nudge below min should report no change")
	}

	fctrl := core.ParameterControl{Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true}
	if v, ok := nudge(fctrl, 0.98, 1); !ok || v != 1 {
		t.Fatalf("expected clamp to 1, got %v (%v)", v, ok)
	}
}

func TestControlValueParsesByType(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "Growth", Params: []core.Parameter{
		{Key: "max_height", Value: "12"},
		{Key: "growth_rate", Value: "0.25"},
		{Key: "broken", Value: "x"},
	}}}}

	v, s, ok := controlValue(snap, core.ParameterControl{Key: "max_height", Type: core.ParamTypeInt})
	if !ok || v != 12 || s != "12" {
		t.Fatalf("int control: got %v %q %v", v, s, ok)
	}
	v, s, ok = controlValue(snap, core.ParameterControl{Key: "growth_rate", Type: core.ParamTypeFloat, Step: 0.01})
	if !ok || v != 0.25 || s != "0.25" {
		t.Fatalf("float control: got %v %q %v", v, s, ok)
	}
	for _, ctrl := range []core.ParameterControl{
		{Key: "broken", Type: core.ParamTypeInt},
		{Key: "missing", Type: core.ParamTypeFloat},
		{Key: "growth_rate", Type: core.ParamTypeBool},
	} {
		if _, s, ok := controlValue(snap, ctrl); ok || s != "--" {
			t.Fatalf("%s: expected placeholder, got %q %v", ctrl.Key, s, ok)
		}
	}
}

type dials struct {
	ints   map[string]int
	floats map[string]float64
}

func (d *dials) Parameters() core.ParameterSnapshot           { return core.ParameterSnapshot{} }
func (d *dials) ParameterControls() []core.ParameterControl   { return nil }
func (d *dials) SetIntParameter(key string, v int) bool       { d.ints[key] = v; return true }
func (d *dials) SetFloatParameter(key string, v float64) bool { d.floats[key] = v; return true }

func TestSetControlDispatchesByType(t *testing.T) {
	d := &dials{ints: map[string]int{}, floats: map[string]float64{}}
	if !setControl(d, core.ParameterControl{Key: "max_height", Type: core.ParamTypeInt}, 14) {
		t.Fatal("int control not applied")
	}
	if !setControl(d, core.ParameterControl{Key: "growth_rate", Type: core.ParamTypeFloat}, 0.3) {
		t.Fatal("float control not applied")
	}
	if setControl(d, core.ParameterControl{Key: "flag", Type: core.ParamTypeBool}, 1) {
		t.Fatal("bool control should not be applied")
	}
	if d.ints["max_height"] != 14 || d.floats["growth_rate"] != 0.3 {
		t.Fatalf("unexpected values %+v %+v", d.ints, d.floats)
	}
}
