// Package trace provides per-trial recording for bottleneck analysis.
// It stores plain data types and does not import sim/.
package trace

// TrialRecord captures the line reduction of a single Monte Carlo trial.
type TrialRecord struct {
	Trial          int            `json:"trial"`
	LineThroughput int            `json:"line_throughput"`
	Bottleneck     string         `json:"bottleneck"`
	Tied           bool           `json:"tied"`            // another station shared the minimum output
	StationOutputs map[string]int `json:"station_outputs"` // station name → units produced
}
