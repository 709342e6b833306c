// Package sim provides the discrete-event simulation engine for patient flow
// through a facility with a fixed number of staff (an M/M/c queue), together
// with the queueing-theory analysis applied to each finished run.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - patient.go: Patient lifecycle (arrived → waiting → in service → departed)
//   - event.go: the Process contract and the pending wake-ups that drive the kernel
//   - simulator.go: the event loop, the per-run context and end-of-run metrics
//
// # Architecture
//
// A Simulator owns everything a run touches: the clock, the event heap, the
// ServerPool, the partitioned RNG and the Metrics aggregator. Runs never share
// state, so independent runs may execute on different goroutines (see sim/sweep).
//
// Processes are explicit continuations. The kernel pops the earliest pending
// wake-up (ties broken by scheduling order), advances the clock and calls
// Process.Resume. A process suspends by scheduling a delay or by queueing on
// the ServerPool; it never blocks a goroutine.
//
// Analysis (analyzer.go) is a pure function over the observations of a run and
// classifies it as critical, high, moderate or healthy with staffing advice.
//
// Sub-packages:
//   - sim/sweep/: concurrent what-if runs over a range of server counts
//   - sim/trace/: optional per-patient transition recording
package sim
