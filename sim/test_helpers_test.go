package sim

import "testing"

// recorder is a test process that logs the simulated time of each resume.
type recorder struct {
	name  string
	log   *[]string
	times *[]float64
}

func (r *recorder) Resume(sim *Simulator) {
	*r.log = append(*r.log, r.name)
	if r.times != nil {
		*r.times = append(*r.times, sim.Clock)
	}
}

func (r *recorder) String() string { return r.name }

// newTestSimulator builds a simulator for kernel tests, failing the test on error.
func newTestSimulator(t *testing.T, params SimulationParameters, opts ...Option) *Simulator {
	t.Helper()
	s, err := NewSimulator(params, opts...)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// kernelParams are valid parameters for tests that drive the kernel by hand.
func kernelParams(servers int) SimulationParameters {
	return NewSimulationParameters(1, 1, servers, 100, 42)
}

// mustRun runs a seeded simulation and fails the test on error.
func mustRun(t *testing.T, arrivalRate, serviceRate float64, servers int, hours float64, seed int64) *RunResult {
	t.Helper()
	res, err := RunSimulation(NewSimulationParameters(arrivalRate, serviceRate, servers, hours, seed))
	if err != nil {
		t.Fatalf("RunSimulation: %v", err)
	}
	return res
}
