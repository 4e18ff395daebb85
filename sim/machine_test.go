package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateMachine_NeverFails_ProducesFullHorizon(t *testing.T) {
	// GIVEN a machine whose MTBF is infinite
	st := Station{Name: "press", CycleTime: 3, MTBF: math.Inf(1), MTTR: 1, Machines: 1}

	// WHEN simulated over 100 time units
	res := SimulateMachine(st, 100, rand.New(rand.NewSource(42)))

	// THEN output is floor(100/3) with no downtime
	assert.Equal(t, 33, res.Output)
	assert.Equal(t, 0.0, res.Downtime)
	assert.Equal(t, 100.0, res.UpTime)
	assert.Equal(t, 99.0, res.BusyTime)
}

func TestSimulateMachine_HugeMTBF_ConvergesToFloorHorizon(t *testing.T) {
	// GIVEN MTBF twelve orders of magnitude beyond the horizon
	st := Station{Name: "lathe", CycleTime: 1, MTBF: 1e14, MTTR: 1, Machines: 1}

	for seed := int64(1); seed <= 20; seed++ {
		res := SimulateMachine(st, 100, rand.New(rand.NewSource(seed)))
		assert.Equal(t, 100, res.Output, "seed %d", seed)
		assert.Equal(t, 0.0, res.Downtime, "seed %d", seed)
	}
}

func TestSimulateMachine_NeverRepaired_StopsAfterFirstFailure(t *testing.T) {
	// GIVEN an infinite MTTR and a first up interval shorter than the horizon
	const horizon, mtbf, cycle = 1000.0, 10.0, 0.7
	st := Station{Name: "oven", CycleTime: cycle, MTBF: mtbf, MTTR: math.Inf(1), Machines: 1}
	firstUp := rand.New(rand.NewSource(7)).ExpFloat64() * mtbf
	require.Less(t, firstUp, horizon, "precondition: first up interval ends inside the horizon")

	// WHEN simulated with the same seed
	res := SimulateMachine(st, horizon, rand.New(rand.NewSource(7)))

	// THEN output counts only the first up interval and the rest is downtime
	assert.Equal(t, int(math.Floor(firstUp/cycle)), res.Output)
	assert.InDelta(t, horizon-firstUp, res.Downtime, 1e-9)
	assert.InDelta(t, firstUp, res.UpTime, 1e-12)
}

func TestSimulateMachine_UpPlusDownEqualsHorizon(t *testing.T) {
	// GIVEN a machine that fails often relative to the horizon
	st := Station{Name: "mill", CycleTime: 0.5, MTBF: 2, MTTR: 1, Machines: 1}
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		res := SimulateMachine(st, 37.5, rng)
		// THEN every realisation fills the horizon exactly once
		assert.InDelta(t, 37.5, res.UpTime+res.Downtime, 1e-9)
		assert.GreaterOrEqual(t, res.Downtime, 0.0)
		// AND output never exceeds what the up-time allows
		assert.LessOrEqual(t, float64(res.Output)*st.CycleTime, res.UpTime+1e-9)
		assert.Greater(t, float64(res.Output+1)*st.CycleTime, res.UpTime)
		assert.Equal(t, float64(res.Output)*st.CycleTime, res.BusyTime)
	}
}

func TestSimulateMachine_BothInfinite_Terminates(t *testing.T) {
	st := Station{Name: "idle", CycleTime: 4, MTBF: math.Inf(1), MTTR: math.Inf(1), Machines: 1}
	res := SimulateMachine(st, 10, rand.New(rand.NewSource(1)))
	assert.Equal(t, 2, res.Output)
	assert.Equal(t, 0.0, res.Downtime)
}

func TestSimulateMachine_CycleLongerThanHorizon_ZeroOutput(t *testing.T) {
	st := Station{Name: "slow", CycleTime: 500, MTBF: math.Inf(1), MTTR: 1, Machines: 1}
	res := SimulateMachine(st, 100, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, res.Output)
	assert.Equal(t, 0.0, res.BusyTime)
}

func TestSimulateMachine_LongRunAvailability(t *testing.T) {
	// GIVEN MTBF 9 and MTTR 1 (steady-state availability 0.9)
	st := Station{Name: "cnc", CycleTime: 1, MTBF: 9, MTTR: 1, Machines: 1}
	rng := rand.New(rand.NewSource(2024))

	// WHEN observed over a long horizon
	res := SimulateMachine(st, 200000, rng)

	// THEN the up fraction approaches MTBF / (MTBF + MTTR)
	assert.InDelta(t, 0.9, res.UpTime/200000, 0.01)
}
