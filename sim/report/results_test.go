package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptime-sim/uptime-sim/sim"
	"github.com/uptime-sim/uptime-sim/sim/trace"
)

func TestSaveResults_WritesJSON(t *testing.T) {
	// GIVEN a completed run
	res := twoStationResults(t)
	path := filepath.Join(t.TempDir(), "results.json")
	id := uuid.New()

	// WHEN SaveResults is called
	err := SaveResults(path, res, RunMetadata{RunID: id, ConfigPath: "line.yaml", TimeUnit: "s", StartedAt: time.Now(), WallTime: time.Second})
	require.NoError(t, err)

	// THEN the JSON carries the run identity and every trial
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out ResultsOutput
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, id.String(), out.RunID)
	assert.Equal(t, int64(42), out.Seed)
	assert.Equal(t, "line.yaml", out.ConfigPath)
	assert.Equal(t, 1.0, out.WallTimeSeconds)
	assert.Equal(t, res.LineThroughputs, out.LineThroughputs)
	assert.Equal(t, res.Summarize(), out.Summary)
	assert.Len(t, out.ThroughputHistogram, defaultBins)
	assert.Equal(t, res.StationOutputs[0], out.StationOutputs["Stamping"])
}

func TestSaveResults_AssignsRunID(t *testing.T) {
	res := twoStationResults(t)
	out := NewResultsOutput(res, RunMetadata{})
	_, err := uuid.Parse(out.RunID)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil.String(), out.RunID)
}

func TestSaveResults_EmptyPath_NoOp(t *testing.T) {
	assert.NoError(t, SaveResults("", nil, RunMetadata{}))
}

func TestSaveResults_UnwritablePath(t *testing.T) {
	res := twoStationResults(t)
	err := SaveResults(filepath.Join(t.TempDir(), "missing", "out.json"), res, RunMetadata{})
	assert.Error(t, err)
}

func TestSaveTrace_WritesSummaryAndTrials(t *testing.T) {
	// GIVEN a traced run
	stations := []sim.Station{
		{Name: "a", CycleTime: 1, MTBF: 10, MTTR: 5, Machines: 1},
		{Name: "b", CycleTime: 1, MTBF: 20, MTTR: 2, Machines: 1},
	}
	res, err := sim.RunSimulation(sim.SimulationConfig{
		Stations: stations, Horizon: 100, NumRuns: 40,
		Trace: trace.TraceConfig{Level: trace.TraceLevelTrials},
	}, sim.NewPartitionedRNG(3))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "trace.json")

	// WHEN the trace is saved
	require.NoError(t, SaveTrace(path, res.Trace))

	// THEN it round-trips with one record per trial
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out TraceOutput
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotNil(t, out.Trace)
	assert.Len(t, out.Trace.Trials, 40)
	assert.Equal(t, 40, out.Summary.TotalTrials)
}

func TestSaveTrace_NilTrace_NoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, SaveTrace(path, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
