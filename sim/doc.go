// Package sim provides the core of gridsir, a discrete-time agent-based SIR
// simulator on a fixed 2D grid.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - state.go: HealthState (Susceptible -> Infected -> Recovered) and the legal transitions
//   - grid.go: flat row-major Grid, bounds checks and the clipped Moore neighborhood
//   - params.go: beta, gamma, dt and the per-step probabilities derived from them
//   - step.go: the synchronous step engine
//
// # Architecture
//
// Step is a pure function of (grid, parameters, random source) and never
// mutates its input. StepTiled runs the same rules over row bands in
// parallel, one PartitionedRNG stream per band. Simulator is the run loop on
// top: it owns the current grid, records counts into Metrics and the
// optional trace, and notifies StepObservers (sim/telemetry).
//
// Sub-packages:
//   - sim/trace/: per-step epidemic curve and CSV output
//   - sim/telemetry/: Prometheus collectors fed by StepObserver
package sim
