package trace

// Transition target names as recorded by the simulator.
const (
	ToWaiting   = "waiting"
	ToInService = "in_service"
	ToDeparted  = "departed"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions int
	Arrivals         int
	ServiceStarts    int
	Departures       int
	MaxInService     int
	MaxQueueLen      int
	// ServiceOrder lists patient IDs in the order their service started.
	ServiceOrder []int
	// FIFOViolations counts service starts that overtook an earlier arrival still waiting.
	FIFOViolations int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServiceOrder: make([]int, 0),
	}
	if st == nil {
		return summary
	}

	// waiting holds patient IDs in arrival order that have not started service.
	var waiting []int
	for _, r := range st.Transitions {
		summary.TotalTransitions++
		summary.MaxInService = max(summary.MaxInService, r.InService)
		summary.MaxQueueLen = max(summary.MaxQueueLen, r.QueueLen)

		switch r.To {
		case ToWaiting:
			summary.Arrivals++
			waiting = append(waiting, r.PatientID)
		case ToInService:
			summary.ServiceStarts++
			summary.ServiceOrder = append(summary.ServiceOrder, r.PatientID)
			idx := indexOf(waiting, r.PatientID)
			if idx > 0 {
				summary.FIFOViolations++
			}
			if idx >= 0 {
				waiting = append(waiting[:idx], waiting[idx+1:]...)
			}
		case ToDeparted:
			summary.Departures++
		}
	}
	return summary
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
