package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/uptime-sim/uptime-sim/sim"
	"github.com/uptime-sim/uptime-sim/sim/trace"
)

// RunMetadata describes how a result set was produced.
type RunMetadata struct {
	RunID      uuid.UUID     // uuid.Nil assigns a fresh random id
	ConfigPath string        // line config the stations came from, if any
	TimeUnit   string        // unit of every duration in the output
	StartedAt  time.Time     // wall-clock start of the run
	WallTime   time.Duration // wall-clock duration of the run
	Bins       int           // throughput histogram bins (default 30)
}

// ResultsOutput is the JSON document written by SaveResults.
type ResultsOutput struct {
	RunID               string           `json:"run_id"`
	Seed                int64            `json:"seed"`
	ConfigPath          string           `json:"config_path,omitempty"`
	TimeUnit            string           `json:"time_unit,omitempty"`
	StartedAt           time.Time        `json:"started_at"`
	WallTimeSeconds     float64          `json:"wall_time_s"`
	Summary             sim.Summary      `json:"summary"`
	ThroughputHistogram []sim.Bin        `json:"throughput_histogram"`
	LineThroughputs     []int            `json:"line_throughputs"`
	StationOutputs      map[string][]int `json:"station_outputs"`
}

// NewResultsOutput assembles the JSON document for res.
func NewResultsOutput(res *sim.SimulationResults, meta RunMetadata) ResultsOutput {
	if meta.RunID == uuid.Nil {
		meta.RunID = uuid.New()
	}
	if meta.Bins < 1 {
		meta.Bins = defaultBins
	}
	outputs := make(map[string][]int, len(res.Stations))
	for i, st := range res.Stations {
		outputs[st.Name] = res.StationOutputs[i]
	}
	return ResultsOutput{
		RunID:               meta.RunID.String(),
		Seed:                int64(res.Key),
		ConfigPath:          meta.ConfigPath,
		TimeUnit:            meta.TimeUnit,
		StartedAt:           meta.StartedAt,
		WallTimeSeconds:     meta.WallTime.Seconds(),
		Summary:             res.Summarize(),
		ThroughputHistogram: res.ThroughputHistogram(meta.Bins),
		LineThroughputs:     res.LineThroughputs,
		StationOutputs:      outputs,
	}
}

// SaveResults writes res as indented JSON to path. An empty path is a no-op.
func SaveResults(path string, res *sim.SimulationResults, meta RunMetadata) error {
	if path == "" {
		return nil
	}
	if res == nil {
		return fmt.Errorf("save results: nil results")
	}
	return writeJSON(path, NewResultsOutput(res, meta), "results")
}

// TraceOutput is the JSON document written by SaveTrace.
type TraceOutput struct {
	Summary *trace.TraceSummary    `json:"summary"`
	Trace   *trace.SimulationTrace `json:"trace"`
}

// SaveTrace writes the trial trace and its summary to path. An empty path or a
// nil trace is a no-op.
func SaveTrace(path string, tr *trace.SimulationTrace) error {
	if path == "" || tr == nil {
		return nil
	}
	return writeJSON(path, TraceOutput{Summary: trace.Summarize(tr), Trace: tr}, "trace")
}

func writeJSON(path string, v any, what string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", what, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s to %s: %w", what, path, err)
	}
	logrus.Debugf("Successfully wrote %s to '%s'", what, path)
	return nil
}
