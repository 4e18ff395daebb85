package sim

import (
	"math"
	"math/rand"
)

// MachineResult is one machine's realisation over a horizon.
type MachineResult struct {
	Output   int     // whole units completed
	UpTime   float64 // realised up-time, clipped to the horizon
	Downtime float64 // realised repair time, clipped to the horizon
	BusyTime float64 // Output * CycleTime
}

// SimulateMachine alternates up and down intervals starting with an up interval
// at time 0 until the clock reaches horizon. The last interval is clipped so
// that up-time + down-time == horizon. Output is floor(up-time / cycle time);
// leftover up-time shorter than one cycle is lost.
//
// An interval that outlasts the horizon (including an infinite MTBF or MTTR)
// ends the loop, so at most one unterminated interval is ever drawn.
func SimulateMachine(st Station, horizon float64, rng *rand.Rand) MachineResult {
	var clock, up, down float64
	for clock < horizon {
		remaining := horizon - clock
		span := exponential(rng, st.MTBF)
		if span >= remaining {
			up += remaining
			break
		}
		up += span
		clock += span

		remaining = horizon - clock
		span = exponential(rng, st.MTTR)
		if span >= remaining {
			down += remaining
			break
		}
		down += span
		clock += span
	}

	output := int(math.Floor(up / st.CycleTime))
	return MachineResult{
		Output:   output,
		UpTime:   up,
		Downtime: down,
		BusyTime: float64(output) * st.CycleTime,
	}
}
