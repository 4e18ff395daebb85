package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrInvalidParameter reports a station parameter outside its domain
	// (non-positive cycle time, MTBF, MTTR, or machine count).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidConfiguration reports a simulation configuration that cannot
	// be run (no stations, non-positive run count or horizon, duplicate names).
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Station is one processing stage of a serial line. All durations share the
// time unit of the simulation horizon.
type Station struct {
	Name      string  // identity; unique within a line
	CycleTime float64 // mean time to produce one unit on one machine (> 0, finite)
	MTBF      float64 // mean up-time between failures (> 0; +Inf never fails)
	MTTR      float64 // mean repair time (> 0; +Inf never repaired)
	Machines  int     // identical machines in parallel (>= 1)
}

// NewStation constructs a Station and validates it.
func NewStation(name string, cycleTime, mtbf, mttr float64, machines int) (Station, error) {
	st := Station{
		Name:      name,
		CycleTime: cycleTime,
		MTBF:      mtbf,
		MTTR:      mttr,
		Machines:  machines,
	}
	if err := st.Validate(); err != nil {
		return Station{}, err
	}
	return st, nil
}

// Validate checks every parameter of the station. Errors wrap ErrInvalidParameter.
func (s Station) Validate() error {
	prefix := fmt.Sprintf("station %q", s.Name)
	if err := validateFinitePositive(prefix+": cycle_time", s.CycleTime); err != nil {
		return err
	}
	if err := validatePositive(prefix+": mtbf", s.MTBF); err != nil {
		return err
	}
	if err := validatePositive(prefix+": mttr", s.MTTR); err != nil {
		return err
	}
	if s.Machines < 1 {
		return fmt.Errorf("%s: machines must be at least 1, got %d: %w", prefix, s.Machines, ErrInvalidParameter)
	}
	return nil
}

func validatePositive(name string, val float64) error {
	if math.IsNaN(val) || val <= 0 {
		return fmt.Errorf("%s must be positive, got %v: %w", name, val, ErrInvalidParameter)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %v: %w", name, val, ErrInvalidParameter)
	}
	return validatePositive(name, val)
}

// StationResult is one station's realisation within a single trial.
type StationResult struct {
	Output   int     // units produced across all parallel machines
	Downtime float64 // repair time summed across machines
	BusyTime float64 // productive time summed across machines
}

// SimulateStation runs every parallel machine of st once over the horizon.
// Machines draw independently from rng in machine order; capacities add up.
// The station must already be valid.
func SimulateStation(st Station, horizon float64, rng *rand.Rand) StationResult {
	var res StationResult
	for j := 0; j < st.Machines; j++ {
		m := SimulateMachine(st, horizon, rng)
		res.Output += m.Output
		res.Downtime += m.Downtime
		res.BusyTime += m.BusyTime
	}
	return res
}
