package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/uptime-sim/uptime-sim/sim/trace"
)

// SimulationConfig groups the inputs of a Monte Carlo run.
type SimulationConfig struct {
	Stations []Station         // serial line, in flow order
	Horizon  float64           // observation window per trial (> 0, finite)
	NumRuns  int               // number of trials (>= 1)
	Workers  int               // parallel trial workers; <= 1 runs sequentially
	Trace    trace.TraceConfig // per-trial recording (zero value = none)
}

// Validate checks the configuration before any trial runs. Station parameter
// errors wrap ErrInvalidParameter; everything else wraps ErrInvalidConfiguration,
// including a horizon so long relative to a cycle time that the station's
// output could not be counted in an int.
func (c SimulationConfig) Validate() error {
	if len(c.Stations) == 0 {
		return fmt.Errorf("at least one station required: %w", ErrInvalidConfiguration)
	}
	if c.NumRuns < 1 {
		return fmt.Errorf("num_runs must be at least 1, got %d: %w", c.NumRuns, ErrInvalidConfiguration)
	}
	if math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) || c.Horizon <= 0 {
		return fmt.Errorf("horizon must be a positive finite number, got %v: %w", c.Horizon, ErrInvalidConfiguration)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q: %w", c.Trace.Level, ErrInvalidConfiguration)
	}
	seen := make(map[string]int, len(c.Stations))
	for i, st := range c.Stations {
		if j, dup := seen[st.Name]; dup {
			return fmt.Errorf("station[%d] duplicates name %q of station[%d]: %w", i, st.Name, j, ErrInvalidConfiguration)
		}
		seen[st.Name] = i
		if err := st.Validate(); err != nil {
			return err
		}
		if c.Horizon/st.CycleTime*float64(st.Machines) >= float64(math.MaxInt) {
			return fmt.Errorf("station %q: horizon %v / cycle_time %v x %d machines overflows the unit count: %w",
				st.Name, c.Horizon, st.CycleTime, st.Machines, ErrInvalidConfiguration)
		}
	}
	return nil
}

// Trial is one independent realisation of every station over the horizon.
// Slices are indexed like the station list.
type Trial struct {
	Outputs        []int
	Downtimes      []float64
	BusyTimes      []float64
	LineThroughput int
	Bottleneck     int  // index of the station that set LineThroughput
	Tied           bool // another station shared the minimum
}

// RunTrial simulates every station once, in line order, drawing from rng,
// and reduces the outputs to line throughput and bottleneck.
func RunTrial(stations []Station, horizon float64, rng *rand.Rand) Trial {
	tr := Trial{
		Outputs:   make([]int, len(stations)),
		Downtimes: make([]float64, len(stations)),
		BusyTimes: make([]float64, len(stations)),
	}
	for i, st := range stations {
		res := SimulateStation(st, horizon, rng)
		tr.Outputs[i] = res.Output
		tr.Downtimes[i] = res.Downtime
		tr.BusyTimes[i] = res.BusyTime
	}
	tr.LineThroughput, tr.Bottleneck, tr.Tied = ReduceLine(tr.Outputs)
	return tr
}

// RunSimulation runs cfg.NumRuns independent trials and collects their
// outcomes. Trial i always draws from rng.ForTrial(i) and writes only slot i,
// so for a fixed key the results are identical for every worker count.
func RunSimulation(cfg SimulationConfig, rng *PartitionedRNG) (*SimulationResults, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source required: %w", ErrInvalidConfiguration)
	}

	stations := append([]Station(nil), cfg.Stations...)
	res := newSimulationResults(stations, cfg.Horizon, cfg.NumRuns, rng.Key())

	run := func(i int) {
		res.record(i, RunTrial(stations, cfg.Horizon, rng.ForTrial(i)))
	}

	if cfg.Workers <= 1 {
		for i := 0; i < cfg.NumRuns; i++ {
			run(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(cfg.Workers)
		for i := 0; i < cfg.NumRuns; i++ {
			i := i
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait() // trials cannot fail once validated
	}

	res.finalize(cfg.Trace)
	logrus.Debugf("simulation complete: key=%d runs=%d stations=%d workers=%d tied=%d",
		rng.Key(), cfg.NumRuns, len(stations), cfg.Workers, res.TiedTrials)
	return res, nil
}
