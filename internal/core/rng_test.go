package core

import "testing"

func TestRNGReseedRepeatsStream(t *testing.T) {
	r := NewRNG(42)
	a := []float64{r.Float64(), r.Float64(), float64(r.IntN(10))}
	r.Reseed(42)
	b := []float64{r.Float64(), r.Float64(), float64(r.IntN(10))}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs after reseed: %v vs %v", i, a[i], b[i])
		}
	}
}
