package sim

// ReduceLine returns the line throughput of one trial, the minimum of the
// station outputs, together with the bottleneck station index. When several
// stations share the minimum the lowest index wins and tied is true.
// An empty slice yields bottleneck -1.
func ReduceLine(outputs []int) (throughput int, bottleneck int, tied bool) {
	if len(outputs) == 0 {
		return 0, -1, false
	}
	throughput, bottleneck = outputs[0], 0
	for i := 1; i < len(outputs); i++ {
		switch {
		case outputs[i] < throughput:
			throughput, bottleneck, tied = outputs[i], i, false
		case outputs[i] == throughput:
			tied = true
		}
	}
	return throughput, bottleneck, tied
}
