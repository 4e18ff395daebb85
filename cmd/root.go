package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/uptime-sim/uptime-sim/sim"
	"github.com/uptime-sim/uptime-sim/sim/report"
	"github.com/uptime-sim/uptime-sim/sim/trace"
)

var (
	// CLI flags for the simulation run
	configPath    string  // Line config YAML
	seed          int64   // Seed for all machine failure/repair draws
	horizonHours  float64 // Observation window per trial (in hours)
	numRuns       int     // Number of Monte Carlo trials
	workers       int     // Parallel trial workers
	logLevel      string  // Log verbosity level
	resultsPath   string  // JSON results output file
	traceLevel    string  // Per-trial trace verbosity
	tracePath     string  // JSON trace output file
	histogramBins int     // Throughput histogram bins
	noColor       bool    // Disable coloured report output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "uptime-sim",
	Short: "Monte Carlo uptime and bottleneck simulator for serial production lines",
}

// runOptions is the fully resolved input of one simulation run.
type runOptions struct {
	ConfigPath string
	Stations   []sim.Station
	Horizon    float64 // seconds
	Runs       int
	Workers    int
	Key        sim.SimulationKey
	TraceLevel trace.TraceLevel
}

// resolveRunOptions merges the line config with CLI flags. A flag wins only
// when it was explicitly set; otherwise the config value is used, and the flag
// default fills anything the config leaves out.
func resolveRunOptions(cfg *LineConfig, changed func(name string) bool) (runOptions, error) {
	stations, err := cfg.ToStations()
	if err != nil {
		return runOptions{}, err
	}
	opts := runOptions{
		ConfigPath: configPath,
		Stations:   stations,
		Horizon:    horizonHours * secondsPerHour,
		Runs:       numRuns,
		Workers:    workers,
		TraceLevel: trace.TraceLevel(traceLevel),
	}
	if !changed("horizon") && cfg.HorizonHours != 0 {
		opts.Horizon = cfg.HorizonHours * secondsPerHour
	}
	if !changed("runs") && cfg.Runs != 0 {
		opts.Runs = cfg.Runs
	}
	if !changed("workers") && cfg.Workers != 0 {
		opts.Workers = cfg.Workers
	}

	if !trace.IsValidTraceLevel(traceLevel) {
		return runOptions{}, fmt.Errorf("unknown trace level %q; valid: none, trials", traceLevel)
	}
	if tracePath != "" && !opts.TraceLevel.Enabled() {
		if changed("trace-level") {
			return runOptions{}, fmt.Errorf("--trace-path requires --trace-level trials, got %q", traceLevel)
		}
		logrus.Warnf("--trace-path set without --trace-level; enabling trial tracing")
		opts.TraceLevel = trace.TraceLevelTrials
	}

	switch {
	case changed("seed"):
		opts.Key = sim.NewSimulationKey(seed)
	case cfg.Seed != nil:
		opts.Key = sim.NewSimulationKey(*cfg.Seed)
	default:
		opts.Key = sim.NewRandomSimulationKey()
		logrus.Infof("No seed given; using seed %d (pass --seed %d to reproduce)", int64(opts.Key), int64(opts.Key))
	}
	return opts, nil
}

// noneChanged reports every flag as left at its default, so only the line
// config and flag defaults take part in resolution.
func noneChanged(string) bool { return false }

// simulationConfig maps resolved options onto the engine configuration.
func (o runOptions) simulationConfig() sim.SimulationConfig {
	return sim.SimulationConfig{
		Stations: o.Stations,
		Horizon:  o.Horizon,
		NumRuns:  o.Runs,
		Workers:  o.Workers,
		Trace:    trace.TraceConfig{Level: o.TraceLevel},
	}
}

// validateLine resolves cfg the way run would with no flags set and checks
// the full engine configuration, so validate and run agree.
func validateLine(cfg *LineConfig) (runOptions, error) {
	opts, err := resolveRunOptions(cfg, noneChanged)
	if err != nil {
		return runOptions{}, err
	}
	if err := opts.simulationConfig().Validate(); err != nil {
		return runOptions{}, err
	}
	return opts, nil
}

// executeRun runs the simulation, renders the report to out and writes the
// optional results and trace files.
func executeRun(opts runOptions, out io.Writer) (*sim.SimulationResults, error) {
	logrus.Infof("Starting simulation: %d stations, horizon=%.2fh, runs=%d, workers=%d, seed=%d",
		len(opts.Stations), opts.Horizon/secondsPerHour, opts.Runs, opts.Workers, int64(opts.Key))

	startTime := time.Now()
	res, err := sim.RunSimulation(opts.simulationConfig(), sim.NewPartitionedRNG(opts.Key))
	if err != nil {
		return nil, err
	}
	wallTime := time.Since(startTime)

	if err := report.Render(out, res, report.Options{
		Bins:      histogramBins,
		TimeUnit:  "h",
		TimeScale: secondsPerHour,
		NoColor:   noColor,
	}); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	meta := report.RunMetadata{
		ConfigPath: opts.ConfigPath,
		TimeUnit:   "s",
		StartedAt:  startTime,
		WallTime:   wallTime,
		Bins:       histogramBins,
	}
	if err := report.SaveResults(resultsPath, res, meta); err != nil {
		return nil, err
	}
	if err := report.SaveTrace(tracePath, res.Trace); err != nil {
		return nil, err
	}

	logrus.Infof("Simulation complete in %v.", wallTime)
	return res, nil
}

// setupLogging applies --log to the global logrus logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes the simulation using parameters from the line config and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Monte Carlo line simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if configPath == "" {
			logrus.Fatalf("Line config not provided (--config). Exiting simulation.")
		}
		cfg, err := LoadLineConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts, err := resolveRunOptions(cfg, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if _, err := executeRun(opts, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// printStations writes the engine view of the stations, in hours.
func printStations(w io.Writer, stations []sim.Station) {
	fmt.Fprintf(w, "%-24s %8s %10s %10s %10s\n", "STATION", "MACHINES", "CYCLE[s]", "MTBF[h]", "MTTR[h]")
	for _, st := range stations {
		fmt.Fprintf(w, "%-24s %8d %10.1f %10.2f %10.2f\n",
			st.Name, st.Machines, st.CycleTime, st.MTBF/secondsPerHour, st.MTTR/secondsPerHour)
	}
}

// validateCmd loads and checks a line config without simulating
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a line config file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := LoadLineConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts, err := validateLine(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printStations(os.Stdout, opts.Stations)
		logrus.Infof("%s: %d stations OK (horizon=%.2fh, runs=%d)",
			configPath, len(opts.Stations), opts.Horizon/secondsPerHour, opts.Runs)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Line config YAML file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for machine failure/repair draws (overrides the config seed)")
	runCmd.Flags().Float64Var(&horizonHours, "horizon", 8, "Observation window per trial (in hours)")
	runCmd.Flags().IntVar(&numRuns, "runs", 500, "Number of Monte Carlo trials")
	runCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Parallel trial workers (results do not depend on this)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save results as JSON")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Per-trial trace level (none, trials)")
	runCmd.Flags().StringVar(&tracePath, "trace-path", "", "File to save the per-trial trace as JSON")
	runCmd.Flags().IntVar(&histogramBins, "bins", 30, "Throughput histogram bins")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured report output")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
