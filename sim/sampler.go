package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// SampleUptime draws a time-to-failure from an exponential distribution with
// mean mtbf. The result is strictly positive.
func SampleUptime(rng *rand.Rand, mtbf float64) (float64, error) {
	if err := validatePositive("mtbf", mtbf); err != nil {
		return 0, err
	}
	return exponential(rng, mtbf), nil
}

// SampleRepair draws a repair duration from an exponential distribution with
// mean mttr. The result is strictly positive.
func SampleRepair(rng *rand.Rand, mttr float64) (float64, error) {
	if err := validatePositive("mttr", mttr); err != nil {
		return 0, err
	}
	return exponential(rng, mttr), nil
}

// exponential assumes mean was validated. ExpFloat64 is in (0, MaxFloat64],
// so the draw is positive; an infinite mean yields +Inf.
func exponential(rng *rand.Rand, mean float64) float64 {
	if rng == nil {
		panic(fmt.Sprintf("exponential: nil rng (mean=%v)", mean))
	}
	if math.IsInf(mean, 1) {
		return math.Inf(1)
	}
	return rng.ExpFloat64() * mean
}
