package sim

// Summary is the JSON-ready digest of a SimulationResults.
type Summary struct {
	Runs       int               `json:"runs"`
	Horizon    float64           `json:"horizon"`
	TiedTrials int               `json:"tied_trials"`
	Throughput ThroughputSummary `json:"line_throughput"`
	Stations   []StationSummary  `json:"stations"`
}

// ThroughputSummary describes the line throughput distribution.
type ThroughputSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	P5     float64 `json:"p5"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	Max    float64 `json:"max"`
}

// StationSummary holds the cross-trial statistics of one station.
type StationSummary struct {
	Name                  string  `json:"name"`
	Machines              int     `json:"machines"`
	BottleneckCount       int     `json:"bottleneck_count"`
	BottleneckProbability float64 `json:"bottleneck_probability"`
	MeanOutput            float64 `json:"mean_output"`
	MeanDowntime          float64 `json:"mean_downtime"`
	MeanBusyTime          float64 `json:"mean_busy_time"`
	Availability          float64 `json:"availability"`
}

// Summarize reduces the results to a Summary. Stations keep line order.
func (r *SimulationResults) Summarize() Summary {
	sorted := sortedFloat64s(r.LineThroughputs)
	s := Summary{
		Runs:       r.NumRuns,
		Horizon:    r.Horizon,
		TiedTrials: r.TiedTrials,
		Throughput: ThroughputSummary{
			Mean:   r.MeanThroughput(),
			StdDev: r.ThroughputStdDev(),
			Min:    CalculatePercentile(sorted, 0),
			P5:     CalculatePercentile(sorted, 5),
			P50:    CalculatePercentile(sorted, 50),
			P95:    CalculatePercentile(sorted, 95),
			Max:    CalculatePercentile(sorted, 100),
		},
		Stations: make([]StationSummary, len(r.Stations)),
	}

	probs := r.BottleneckProbability()
	downtime := r.MeanDowntime()
	busy := r.MeanBusyTime()
	output := r.MeanOutput()
	avail := r.Availability()
	for i, st := range r.Stations {
		s.Stations[i] = StationSummary{
			Name:                  st.Name,
			Machines:              st.Machines,
			BottleneckCount:       r.BottleneckCounts[i],
			BottleneckProbability: probs[st.Name],
			MeanOutput:            output[st.Name],
			MeanDowntime:          downtime[st.Name],
			MeanBusyTime:          busy[st.Name],
			Availability:          avail[st.Name],
		}
	}
	return s
}
