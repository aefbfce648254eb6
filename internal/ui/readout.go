package ui

import (
	"strconv"

	"citygrowth/internal/core"
)

// readout is a read-only snapshot value drawn under the controls.
type readout struct {
	group string
	label string
	value string
}

// readouts lists the snapshot parameters that have no control, in snapshot
// order.
func readouts(snap core.ParameterSnapshot, controls []core.ParameterControl) []readout {
	adjustable := make(map[string]bool, len(controls))
	for _, c := range controls {
		adjustable[c.Key] = true
	}
	var out []readout
	for _, group := range snap.Groups {
		for _, p := range group.Params {
			if adjustable[p.Key] {
				continue
			}
			out = append(out, readout{group: group.Name, label: p.Label, value: p.Value})
		}
	}
	return out
}

// formatFloat picks a precision from the control step.
func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// nudge returns the value one step away from current in direction, clamped to
// the control range, and whether it differs from current.
func nudge(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
		if ctrl.Type == core.ParamTypeInt {
			step = 1
		}
	}
	target := ctrl.Clamp(current + float64(direction)*step)
	diff := target - current
	if diff < 0 {
		diff = -diff
	}
	return target, diff > 1e-9
}

// controlValue reads the current value of ctrl from snap, formatted for the
// panel.
func controlValue(snap core.ParameterSnapshot, ctrl core.ParameterControl) (float64, string, bool) {
	p, ok := snap.Lookup(ctrl.Key)
	if !ok {
		return 0, "--", false
	}
	switch ctrl.Type {
	case core.ParamTypeInt:
		n, err := strconv.Atoi(p.Value)
		if err != nil {
			return 0, "--", false
		}
		return float64(n), strconv.Itoa(n), true
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return 0, "--", false
		}
		return v, formatFloat(ctrl, v), true
	}
	return 0, "--", false
}

// tunable is a sim whose panel controls can be read and set.
type tunable interface {
	Parameters() core.ParameterSnapshot
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
}

// setControl writes target through the setter matching the control type.
func setControl(t tunable, ctrl core.ParameterControl, target float64) bool {
	switch ctrl.Type {
	case core.ParamTypeInt:
		return t.SetIntParameter(ctrl.Key, int(target))
	case core.ParamTypeFloat:
		return t.SetFloatParameter(ctrl.Key, target)
	}
	return false
}

func formatInt(v float64) string { return strconv.Itoa(int(v)) }
