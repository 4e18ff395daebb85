package cmd

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/uptime-sim/uptime-sim/sim"
)

func TestLoadLineConfig_Example(t *testing.T) {
	// GIVEN the shipped example line
	cfg, err := LoadLineConfig(exampleConfigPath)
	require.NoError(t, err, "failed to load examples/line.yaml")

	// THEN top-level settings are read
	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, 8.0, cfg.HorizonHours)
	assert.Equal(t, 500, cfg.Runs)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(123), *cfg.Seed)

	// THEN stations convert to seconds with parallel_units defaulting to 1
	stations, err := cfg.ToStations()
	require.NoError(t, err)
	require.Len(t, stations, 4)
	assert.Equal(t, sim.Station{Name: "Core Winding", CycleTime: 45, MTBF: 120 * 3600, MTTR: 3600, Machines: 2}, stations[0])
	assert.Equal(t, "Coil Assembly", stations[1].Name)
	assert.Equal(t, 1, stations[1].Machines)
	assert.Equal(t, 1.5*3600, stations[1].MTTR)
}

func TestLoadLineConfig_UnknownField_Rejected(t *testing.T) {
	// GIVEN a config with a typo in a station key
	path := writeConfig(t, `
stations:
  - name: press
    cycle_time_sec: 10
    mtbf_hour: 5
    mttr_hours: 1
`)

	// WHEN loaded
	_, err := LoadLineConfig(path)

	// THEN strict parsing rejects it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing line config")
	assert.Contains(t, err.Error(), "mtbf_hour")
}

func TestLoadLineConfig_UnsupportedVersion(t *testing.T) {
	path := writeConfig(t, "version: \"7\"\nstations: []\n")
	_, err := LoadLineConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestLoadLineConfig_MissingFile(t *testing.T) {
	_, err := LoadLineConfig("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading line config")
}

func TestToStations_InvalidParameter(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero mtbf", "stations:\n  - {name: a, cycle_time_sec: 1, mtbf_hours: 0, mttr_hours: 1}\n"},
		{"negative mttr", "stations:\n  - {name: a, cycle_time_sec: 1, mtbf_hours: 1, mttr_hours: -1}\n"},
		{"missing cycle time", "stations:\n  - {name: a, mtbf_hours: 1, mttr_hours: 1}\n"},
		{"explicit zero machines", "stations:\n  - {name: a, cycle_time_sec: 1, mtbf_hours: 1, mttr_hours: 1, parallel_units: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadLineConfig(writeConfig(t, tt.body))
			require.NoError(t, err)
			_, err = cfg.ToStations()
			if !errors.Is(err, sim.ErrInvalidParameter) {
				t.Errorf("got %v, want sim.ErrInvalidParameter", err)
			}
		})
	}
}

func TestToStations_DefaultsNameAndInfinity(t *testing.T) {
	// GIVEN an unnamed station and a station that never fails
	cfg, err := LoadLineConfig(writeConfig(t, `
stations:
  - name: first
    cycle_time_sec: 2
    mtbf_hours: .inf
    mttr_hours: 1
  - cycle_time_sec: 3
    mtbf_hours: 4
    mttr_hours: 0.5
`))
	require.NoError(t, err)

	// WHEN converted
	stations, err := cfg.ToStations()
	require.NoError(t, err)

	// THEN the unnamed station is named by position and infinity survives
	assert.True(t, math.IsInf(stations[0].MTBF, 1))
	assert.Equal(t, "station_1", stations[1].Name)
	assert.Equal(t, 1800.0, stations[1].MTTR)
}
