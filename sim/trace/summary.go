package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials            int
	TiedTrials             int
	MeanThroughput         float64
	MinThroughput          int
	MaxThroughput          int
	UniqueBottlenecks      int
	BottleneckDistribution map[string]int // station name → trials it was the bottleneck
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		BottleneckDistribution: make(map[string]int),
	}
	if st == nil || len(st.Trials) == 0 {
		return summary
	}

	summary.TotalTrials = len(st.Trials)
	summary.MinThroughput = st.Trials[0].LineThroughput
	summary.MaxThroughput = st.Trials[0].LineThroughput
	total := 0
	for _, tr := range st.Trials {
		summary.BottleneckDistribution[tr.Bottleneck]++
		if tr.Tied {
			summary.TiedTrials++
		}
		total += tr.LineThroughput
		if tr.LineThroughput < summary.MinThroughput {
			summary.MinThroughput = tr.LineThroughput
		}
		if tr.LineThroughput > summary.MaxThroughput {
			summary.MaxThroughput = tr.LineThroughput
		}
	}
	summary.MeanThroughput = float64(total) / float64(len(st.Trials))
	summary.UniqueBottlenecks = len(summary.BottleneckDistribution)

	return summary
}
