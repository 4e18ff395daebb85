package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores every CLI flag variable to a known state for the test
// and puts the previous values back afterwards.
func resetFlags(t *testing.T) {
	t.Helper()
	cp, sd, hh, nr, wk := configPath, seed, horizonHours, numRuns, workers
	ll, rp, tl, tp, hb, nc := logLevel, resultsPath, traceLevel, tracePath, histogramBins, noColor
	t.Cleanup(func() {
		configPath, seed, horizonHours, numRuns, workers = cp, sd, hh, nr, wk
		logLevel, resultsPath, traceLevel, tracePath, histogramBins, noColor = ll, rp, tl, tp, hb, nc
	})

	configPath, seed, horizonHours, numRuns, workers = "", 42, 8, 500, 2
	logLevel, resultsPath, traceLevel, tracePath, histogramBins, noColor = "error", "", "none", "", 30, true
}

// changedSet reports only the named flags as explicitly set.
func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

// writeConfig writes a line config into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "line.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const exampleConfigPath = "../examples/line.yaml"
