// Package sim provides the Monte Carlo engine for uptime-sim.
//
// # Reading Guide
//
// The engine is layered leaf-first; each file only calls the ones above it:
//   - sampler.go: exponential uptime/repair draws from a caller-supplied *rand.Rand
//   - machine.go: one machine's alternating up/down process over a horizon
//   - station.go: Station configuration, validation, and parallel-machine aggregation
//   - line.go: line throughput (min over stations) and bottleneck selection
//   - simulator.go: the trial loop, sequential or on a bounded worker pool
//   - results.go: cross-trial statistics over the collected sequences
//
// # Reproducibility
//
// All randomness flows from a PartitionedRNG (rng.go). Trial i draws from its
// own stream derived from the SimulationKey and the trial index, so a fixed key
// reproduces SimulationResults bit-for-bit regardless of worker count.
//
// # Policies
//
//   - Output is floor(total up-time / cycle time) per machine; partial cycles are lost.
//   - Station downtime is summed across parallel machines (machine-time lost).
//   - Ties for the minimum station output go to the lowest station index.
//
// Rendering lives in sim/report and per-trial decision traces in sim/trace;
// neither is imported by the trial loop itself.
package sim
