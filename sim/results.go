package sim

import (
	"github.com/uptime-sim/uptime-sim/sim/trace"
)

// SimulationResults aggregates every trial of a Monte Carlo run.
// Per-trial sequences are ordered by trial index; per-station slices are
// indexed like Stations. Read-only once RunSimulation returns.
type SimulationResults struct {
	Key      SimulationKey
	Stations []Station
	Horizon  float64
	NumRuns  int

	LineThroughputs  []int       // one per trial
	StationOutputs   [][]int     // [station][trial] units produced
	StationDowntimes [][]float64 // [station][trial] machine-time in repair
	StationBusyTimes [][]float64 // [station][trial] productive machine-time
	Bottlenecks      []int       // [trial] index of the bottleneck station

	BottleneckCounts []int // [station] trials where it was the bottleneck
	TiedTrials       int   // trials where the minimum output was shared

	Trace *trace.SimulationTrace // nil unless trials were traced
}

func newSimulationResults(stations []Station, horizon float64, runs int, key SimulationKey) *SimulationResults {
	res := &SimulationResults{
		Key:              key,
		Stations:         stations,
		Horizon:          horizon,
		NumRuns:          runs,
		LineThroughputs:  make([]int, runs),
		StationOutputs:   make([][]int, len(stations)),
		StationDowntimes: make([][]float64, len(stations)),
		StationBusyTimes: make([][]float64, len(stations)),
		Bottlenecks:      make([]int, runs),
		BottleneckCounts: make([]int, len(stations)),
	}
	for i := range stations {
		res.StationOutputs[i] = make([]int, runs)
		res.StationDowntimes[i] = make([]float64, runs)
		res.StationBusyTimes[i] = make([]float64, runs)
	}
	return res
}

// record stores trial i. Distinct trials touch disjoint elements, so workers
// may call it concurrently.
func (r *SimulationResults) record(i int, tr Trial) {
	r.LineThroughputs[i] = tr.LineThroughput
	r.Bottlenecks[i] = tr.Bottleneck
	for s := range r.Stations {
		r.StationOutputs[s][i] = tr.Outputs[s]
		r.StationDowntimes[s][i] = tr.Downtimes[s]
		r.StationBusyTimes[s][i] = tr.BusyTimes[s]
	}
}

// finalize derives counts from the recorded trials. Runs after all workers finish.
func (r *SimulationResults) finalize(cfg trace.TraceConfig) {
	for i, b := range r.Bottlenecks {
		r.BottleneckCounts[b]++
		if r.isTied(i) {
			r.TiedTrials++
		}
	}
	if !cfg.Level.Enabled() {
		return
	}
	r.Trace = trace.NewSimulationTrace(cfg)
	for i := 0; i < r.NumRuns; i++ {
		outputs := make(map[string]int, len(r.Stations))
		for s, st := range r.Stations {
			outputs[st.Name] = r.StationOutputs[s][i]
		}
		r.Trace.RecordTrial(trace.TrialRecord{
			Trial:          i,
			LineThroughput: r.LineThroughputs[i],
			Bottleneck:     r.Stations[r.Bottlenecks[i]].Name,
			Tied:           r.isTied(i),
			StationOutputs: outputs,
		})
	}
}

func (r *SimulationResults) isTied(trial int) bool {
	n := 0
	for s := range r.Stations {
		if r.StationOutputs[s][trial] == r.LineThroughputs[trial] {
			n++
		}
	}
	return n > 1
}

// StationIndex returns the position of the named station, or -1.
func (r *SimulationResults) StationIndex(name string) int {
	for i, st := range r.Stations {
		if st.Name == name {
			return i
		}
	}
	return -1
}

// MeanThroughput is the mean line throughput across trials.
func (r *SimulationResults) MeanThroughput() float64 {
	return CalculateMean(r.LineThroughputs)
}

// ThroughputStdDev is the sample standard deviation of line throughput.
func (r *SimulationResults) ThroughputStdDev() float64 {
	return CalculateStdDev(r.LineThroughputs)
}

// ThroughputPercentile returns the p-th percentile (0..100) of line throughput.
func (r *SimulationResults) ThroughputPercentile(p float64) float64 {
	return CalculatePercentile(sortedFloat64s(r.LineThroughputs), p)
}

// ThroughputHistogram buckets line throughput into bins equal-width bins.
func (r *SimulationResults) ThroughputHistogram(bins int) []Bin {
	return CalculateHistogram(r.LineThroughputs, bins)
}

// BottleneckProbability maps each station name to the fraction of trials in
// which it was the bottleneck. With lowest-index tie-breaking the values sum to 1.
func (r *SimulationResults) BottleneckProbability() map[string]float64 {
	out := make(map[string]float64, len(r.Stations))
	for i, st := range r.Stations {
		out[st.Name] = float64(r.BottleneckCounts[i]) / float64(r.NumRuns)
	}
	return out
}

// MeanDowntime maps each station name to its mean summed machine downtime per trial.
func (r *SimulationResults) MeanDowntime() map[string]float64 {
	return perStationMean(r.Stations, r.StationDowntimes)
}

// MeanBusyTime maps each station name to its mean productive machine-time per trial.
func (r *SimulationResults) MeanBusyTime() map[string]float64 {
	return perStationMean(r.Stations, r.StationBusyTimes)
}

// MeanOutput maps each station name to its mean units per trial.
func (r *SimulationResults) MeanOutput() map[string]float64 {
	out := make(map[string]float64, len(r.Stations))
	for i, st := range r.Stations {
		out[st.Name] = CalculateMean(r.StationOutputs[i])
	}
	return out
}

// Availability maps each station name to the mean fraction of its machine-time
// not spent in repair: 1 - downtime / (machines * horizon).
func (r *SimulationResults) Availability() map[string]float64 {
	out := make(map[string]float64, len(r.Stations))
	for i, st := range r.Stations {
		capacity := float64(st.Machines) * r.Horizon
		out[st.Name] = 1 - CalculateMean(r.StationDowntimes[i])/capacity
	}
	return out
}

// OutputDistribution returns a copy of the named station's per-trial outputs.
func (r *SimulationResults) OutputDistribution(name string) ([]int, bool) {
	i := r.StationIndex(name)
	if i < 0 {
		return nil, false
	}
	return append([]int(nil), r.StationOutputs[i]...), true
}

// DowntimeDistribution returns a copy of the named station's per-trial downtime.
func (r *SimulationResults) DowntimeDistribution(name string) ([]float64, bool) {
	i := r.StationIndex(name)
	if i < 0 {
		return nil, false
	}
	return append([]float64(nil), r.StationDowntimes[i]...), true
}

func perStationMean(stations []Station, series [][]float64) map[string]float64 {
	out := make(map[string]float64, len(stations))
	for i, st := range stations {
		out[st.Name] = CalculateMean(series[i])
	}
	return out
}
