// Package report renders SimulationResults for people and persists them for
// other tools. The engine in sim/ never imports it.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/uptime-sim/uptime-sim/sim"
)

const (
	defaultBins     = 30
	defaultBarWidth = 40
)

// Options controls text rendering.
type Options struct {
	Bins      int     // throughput histogram bins (default 30)
	BarWidth  int     // cells used by the longest bar (default 40)
	TimeUnit  string  // label for durations, e.g. "h"
	TimeScale float64 // durations are divided by this before printing (default 1)
	NoColor   bool    // force plain text even on a colour terminal
}

func (o Options) withDefaults() Options {
	if o.Bins < 1 {
		o.Bins = defaultBins
	}
	if o.BarWidth < 1 {
		o.BarWidth = defaultBarWidth
	}
	if o.TimeScale <= 0 {
		o.TimeScale = 1
	}
	return o
}

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	bar     lipgloss.Style
	hot     lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   r.NewStyle().Foreground(lipgloss.Color("245")),
		bar:     r.NewStyle().Foreground(lipgloss.Color("10")),
		hot:     r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Render writes the throughput summary, the throughput histogram, bottleneck
// probability and average downtime charts, and a station table.
func Render(w io.Writer, res *sim.SimulationResults, opts Options) error {
	if res == nil {
		return fmt.Errorf("render: nil results")
	}
	opts = opts.withDefaults()
	st := newStyles(w, opts.NoColor)
	summary := res.Summarize()
	horizon := formatDuration(res.Horizon, opts)

	var b strings.Builder

	fmt.Fprintln(&b, st.heading.Render("=== LINE THROUGHPUT SUMMARY ==="))
	fmt.Fprintf(&b, "%s %d\n", st.label.Render(fmt.Sprintf("%-22s:", "Runs")), summary.Runs)
	fmt.Fprintf(&b, "%s %.1f units per %s\n", st.label.Render(fmt.Sprintf("%-22s:", "Mean throughput")), summary.Throughput.Mean, horizon)
	fmt.Fprintf(&b, "%s %.1f units\n", st.label.Render(fmt.Sprintf("%-22s:", "Std deviation")), summary.Throughput.StdDev)
	fmt.Fprintf(&b, "%s %.1f units\n", st.label.Render(fmt.Sprintf("%-22s:", "5th percentile")), summary.Throughput.P5)
	fmt.Fprintf(&b, "%s %.1f units\n", st.label.Render(fmt.Sprintf("%-22s:", "Median")), summary.Throughput.P50)
	fmt.Fprintf(&b, "%s %.1f units\n", st.label.Render(fmt.Sprintf("%-22s:", "95th percentile")), summary.Throughput.P95)
	fmt.Fprintf(&b, "%s %d\n", st.label.Render(fmt.Sprintf("%-22s:", "Tied trials")), summary.TiedTrials)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, st.heading.Render("=== LINE THROUGHPUT DISTRIBUTION ==="))
	bins := res.ThroughputHistogram(opts.Bins)
	maxCount := 0
	for _, bin := range bins {
		maxCount = max(maxCount, bin.Count)
	}
	for _, bin := range bins {
		fmt.Fprintf(&b, "[%8.1f, %8.1f) %6d %s\n", bin.Lower, bin.Upper, bin.Count,
			st.bar.Render(bar(float64(bin.Count), float64(maxCount), opts.BarWidth)))
	}

	nameWidth := 0
	for _, s := range summary.Stations {
		nameWidth = max(nameWidth, len(s.Name))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, st.heading.Render("=== BOTTLENECK PROBABILITY ==="))
	maxProb := 0.0
	for _, s := range summary.Stations {
		maxProb = math.Max(maxProb, s.BottleneckProbability)
	}
	for _, s := range summary.Stations {
		barStyle := st.bar
		if s.BottleneckProbability == maxProb && maxProb > 0 {
			barStyle = st.hot
		}
		fmt.Fprintf(&b, "%-*s : %5.1f %% of runs %s\n", nameWidth, s.Name, s.BottleneckProbability*100,
			barStyle.Render(bar(s.BottleneckProbability, maxProb, opts.BarWidth)))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, st.heading.Render("=== AVERAGE DOWNTIME BY STATION ==="))
	maxDown := 0.0
	for _, s := range summary.Stations {
		maxDown = math.Max(maxDown, s.MeanDowntime)
	}
	for _, s := range summary.Stations {
		fmt.Fprintf(&b, "%-*s : %s per run %s\n", nameWidth, s.Name, formatDuration(s.MeanDowntime, opts),
			st.bar.Render(bar(s.MeanDowntime, maxDown, opts.BarWidth)))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, st.heading.Render("=== STATIONS ==="))
	fmt.Fprintln(&b, stationTable(res, summary, opts).String())

	_, err := io.WriteString(w, b.String())
	return err
}

func stationTable(res *sim.SimulationResults, summary sim.Summary, opts Options) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Station", "Machines", "Cycle", "MTBF", "MTTR", "Mean output", "Availability", "Bottleneck")
	for i, s := range summary.Stations {
		cfg := res.Stations[i]
		t.Row(
			s.Name,
			fmt.Sprintf("%d", s.Machines),
			formatDuration(cfg.CycleTime, opts),
			formatDuration(cfg.MTBF, opts),
			formatDuration(cfg.MTTR, opts),
			fmt.Sprintf("%.1f", s.MeanOutput),
			fmt.Sprintf("%.1f %%", s.Availability*100),
			fmt.Sprintf("%.1f %%", s.BottleneckProbability*100),
		)
	}
	return t
}

// bar returns a run of block characters proportional to value/maxValue.
func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(width)))
	return strings.Repeat("█", max(n, 1))
}

func formatDuration(d float64, opts Options) string {
	if math.IsInf(d, 1) {
		return "inf"
	}
	v := d / opts.TimeScale
	if opts.TimeUnit == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f%s", v, opts.TimeUnit)
}
