package sim

// RunResult is the serializable outcome of one simulation run.
type RunResult struct {
	RunID        string               `json:"run_id"`
	Parameters   SimulationParameters `json:"parameters"`
	Seed         int64                `json:"seed"`
	Metrics      RunMetrics           `json:"metrics"`
	WaitTimes    []float64            `json:"wait_times"`
	ServiceTimes []float64            `json:"service_times"`
}

// RunSimulation validates params, runs one isolated simulation to its horizon
// and returns the analyzed result. Invalid parameters yield an
// *InvalidParameterError and no run takes place.
func RunSimulation(params SimulationParameters, opts ...Option) (*RunResult, error) {
	s, err := NewSimulator(params, opts...)
	if err != nil {
		return nil, err
	}
	s.Run()
	return s.Result(), nil
}
