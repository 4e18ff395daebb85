package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/uptime-sim/uptime-sim/sim"
)

const secondsPerHour = 3600.0

// StationConfig is one station entry in a line config file.
// Cycle time is in seconds; MTBF and MTTR are in hours.
type StationConfig struct {
	Name          string  `yaml:"name"`
	CycleTimeSec  float64 `yaml:"cycle_time_sec"`
	MTBFHours     float64 `yaml:"mtbf_hours"`
	MTTRHours     float64 `yaml:"mttr_hours"`
	ParallelUnits *int    `yaml:"parallel_units,omitempty"` // nil = 1
}

// LineConfig represents a line config file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type LineConfig struct {
	Version      string          `yaml:"version"`
	HorizonHours float64         `yaml:"horizon_hours,omitempty"`
	Runs         int             `yaml:"runs,omitempty"`
	Seed         *int64          `yaml:"seed,omitempty"` // nil = nondeterministic unless --seed is given
	Workers      int             `yaml:"workers,omitempty"`
	Stations     []StationConfig `yaml:"stations"`
}

var validLineConfigVersions = map[string]bool{"": true, "1": true}

// LoadLineConfig reads and parses a YAML line config file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadLineConfig(path string) (*LineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading line config: %w", err)
	}
	var cfg LineConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing line config: %w", err)
	}
	if !validLineConfigVersions[cfg.Version] {
		return nil, fmt.Errorf("unsupported line config version %q; valid: 1", cfg.Version)
	}
	return &cfg, nil
}

// ToStations converts the configured stations to engine stations in seconds.
// Unnamed stations become station_<i>; a missing parallel_units means one machine.
// Parameter errors wrap sim.ErrInvalidParameter.
func (c *LineConfig) ToStations() ([]sim.Station, error) {
	stations := make([]sim.Station, 0, len(c.Stations))
	for i, sc := range c.Stations {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("station_%d", i)
			logrus.Warnf("stations[%d] has no name; using %q", i, name)
		}
		machines := 1
		if sc.ParallelUnits != nil {
			machines = *sc.ParallelUnits
		}
		st, err := sim.NewStation(name, sc.CycleTimeSec, sc.MTBFHours*secondsPerHour, sc.MTTRHours*secondsPerHour, machines)
		if err != nil {
			return nil, fmt.Errorf("stations[%d]: %w", i, err)
		}
		stations = append(stations, st)
	}
	return stations, nil
}
