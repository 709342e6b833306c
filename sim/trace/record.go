// Package trace provides per-patient transition recording for run diagnostics.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TransitionRecord captures a single patient lifecycle transition.
type TransitionRecord struct {
	PatientID int
	Clock     float64 // simulated hour of the transition
	From      string
	To        string
	InService int // patients in service after the transition
	QueueLen  int // patients waiting for a server after the transition
}
