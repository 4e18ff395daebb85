// Package testutil provides shared test assertions for the uptime-sim packages.
// It has no dependency on sim/ so that in-package sim tests can import it.
package testutil

import (
	"math"
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

// AssertProbabilitiesSumToOne checks that every value lies in [0, 1] and that
// the values sum to 1 within tol.
func AssertProbabilitiesSumToOne(t *testing.T, probs map[string]float64, tol float64) {
	t.Helper()
	sum := 0.0
	for name, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability for %q = %v, want within [0, 1]", name, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > tol {
		t.Errorf("probabilities sum to %v, want 1 (±%v)", sum, tol)
	}
}
