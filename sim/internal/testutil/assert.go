// Package testutil provides shared test helpers for the ABR simulator.
// It must not import sim so that sim's own tests can use it.
package testutil

import (
	"math"
	"slices"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertOneOf fails unless got is an exact member of levels.
func AssertOneOf(t *testing.T, name string, levels []float64, got float64) {
	t.Helper()
	if !slices.Contains(levels, got) {
		t.Errorf("%s: %v is not one of %v", name, got, levels)
	}
}

// Repeat returns n copies of v.
func Repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
