package sim

// Process is a simulated activity that advances in discrete steps.
// The kernel calls Resume each time the process wakes up; Resume performs the
// next step and then either schedules a delay, queues on the ServerPool, or
// returns without rescheduling (terminated).
type Process interface {
	Resume(sim *Simulator)
}

// wakeup is a pending resumption of a process at a simulated time (in hours).
type wakeup struct {
	time    float64 // simulated wake time
	seq     uint64  // scheduling order, used as the tie-breaker
	process Process // continuation to resume
}

// Timestamp returns the simulated time at which the wake-up fires.
func (w *wakeup) Timestamp() float64 {
	return w.time
}

// processFunc adapts a plain function to the Process interface.
type processFunc func(sim *Simulator)

func (f processFunc) Resume(sim *Simulator) {
	f(sim)
}
