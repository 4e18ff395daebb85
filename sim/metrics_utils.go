// sim/metrics_utils.go
package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one histogram bucket covering [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type IntOrFloat64 interface {
	int | int64 | float64
}

// toFloat64s copies data into a new float64 slice.
func toFloat64s[T IntOrFloat64](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

// sortedFloat64s returns a sorted float64 copy of data; data is left untouched.
func sortedFloat64s[T IntOrFloat64](data []T) []float64 {
	out := toFloat64s(data)
	sort.Float64s(out)
	return out
}

// CalculatePercentile returns the p-th percentile (0..100) of sorted data,
// linearly interpolating between closest ranks. Empty input returns 0.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	p = math.Max(0, math.Min(100, p))

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of data, or 0 for empty input.
func CalculateMean[T IntOrFloat64](data []T) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(toFloat64s(data), nil)
}

// CalculateStdDev returns the sample standard deviation of data, or 0 for
// fewer than two values.
func CalculateStdDev[T IntOrFloat64](data []T) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(toFloat64s(data), nil)
}

// CalculateHistogram buckets data into bins equal-width bins spanning
// [min, max+1). The +1 keeps the maximum inside the last bin, which is exact
// for integer data such as unit counts. bins < 1 is treated as 1.
func CalculateHistogram[T IntOrFloat64](data []T, bins int) []Bin {
	if len(data) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 1
	}
	sorted := sortedFloat64s(data)
	lo, hi := sorted[0], sorted[len(sorted)-1]+1

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	counts := make([]float64, bins)
	stat.Histogram(counts, dividers, sorted, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}
	return out
}
