package core

import "testing"

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Type: ParamTypeInt, Min: 5, Max: 30, HasMin: true, HasMax: true}
	if got := c.Clamp(2); got != 5 {
		t.Fatalf("clamp low = %g", got)
	}
	if got := c.Clamp(12.6); got != 13 {
		t.Fatalf("int controls round, got %g", got)
	}
	f := ParameterControl{Type: ParamTypeFloat, Max: 0.5, HasMax: true}
	if got := f.Clamp(0.7); got != 0.5 {
		t.Fatalf("clamp high = %g", got)
	}
	if got := f.Clamp(-3); got != -3 {
		t.Fatalf("no lower bound, got %g", got)
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	p, ok := snap.Lookup("y")
	if !ok || p.Value != "2" {
		t.Fatalf("lookup y = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatal("unexpected hit for z")
	}
}
