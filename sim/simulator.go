// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mediflow/mediflow-sim/sim/trace"
)

// Simulator is the per-run context: it holds simulated time, the pending
// wake-ups, the shared ServerPool, the RNG streams and the metrics of one run.
// Every process receives it on Resume. A Simulator is used by one goroutine only.
type Simulator struct {
	Clock   float64 // current simulated time in hours
	Horizon float64 // end of the run (Params.Duration)
	Params  SimulationParameters
	Seed    int64 // seed actually used (drawn from the wall clock when Params.Seed is nil)
	RunID   string

	Pool    *ServerPool
	Metrics *Metrics
	// Trace is nil unless WithTrace enabled transition recording.
	Trace *trace.SimulationTrace

	events    *EventHeap
	seq       uint64
	rng       *PartitionedRNG
	arrivals  *ArrivalGenerator
	inService int
	ran       bool
}

// Option configures optional Simulator behavior.
type Option func(*Simulator)

// WithTrace enables transition recording at the given level.
func WithTrace(level trace.TraceLevel) Option {
	return func(s *Simulator) {
		cfg := trace.TraceConfig{Level: level}
		if cfg.Enabled() {
			s.Trace = trace.NewSimulationTrace(cfg)
		}
	}
}

// NewSimulator validates params and builds a fresh run context.
// It returns an *InvalidParameterError before anything is scheduled.
func NewSimulator(params SimulationParameters, opts ...Option) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}

	s := &Simulator{
		Clock:    0,
		Horizon:  params.Duration,
		Params:   params,
		Seed:     seed,
		RunID:    uuid.NewString(),
		Metrics:  NewMetrics(),
		events:   NewEventHeap(),
		rng:      NewPartitionedRNG(NewSimulationKey(seed)),
		arrivals: NewArrivalGenerator(NewPoissonSampler(params.ArrivalRate)),
	}
	s.Pool = NewServerPool(s, params.Servers)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ScheduleDelay suspends p and resumes it once d simulated hours have elapsed.
// A negative (or NaN) delay is a programming error and panics.
func (sim *Simulator) ScheduleDelay(p Process, d float64) {
	if !(d >= 0) || math.IsInf(d, 1) {
		panic(fmt.Sprintf("ScheduleDelay: delay must be a finite non-negative number, got %v", d))
	}
	sim.events.Schedule(&wakeup{
		time:    sim.Clock + d,
		seq:     sim.seq,
		process: p,
	})
	sim.seq++
}

// Spawn starts p at the current simulated time without suspending the caller.
func (sim *Simulator) Spawn(p Process) {
	sim.ScheduleDelay(p, 0)
}

// Pending returns the number of scheduled wake-ups.
func (sim *Simulator) Pending() int {
	return sim.events.Len()
}

// RunUntil resumes pending processes in (time, scheduling order) until the next
// wake-up is at or beyond horizon, then sets the clock to horizon. Processes
// still pending are abandoned: this truncation is intentional, not an error.
func (sim *Simulator) RunUntil(horizon float64) {
	for {
		next := sim.events.Peek()
		if next == nil || next.time >= horizon {
			break
		}
		sim.events.PopNext()
		sim.Clock = next.time
		logrus.Tracef("[%.4f] Resuming %v", sim.Clock, next.process)
		next.process.Resume(sim)
	}
	if horizon > sim.Clock {
		sim.Clock = horizon
	}
}

// Run starts the arrival generator and runs to the horizon. A Simulator runs once.
func (sim *Simulator) Run() {
	if sim.ran {
		panic("Run: simulator has already run")
	}
	sim.ran = true

	logrus.Infof("Starting simulation: arrival=%.2f/hr service=%.2f/hr servers=%d horizon=%.2fhrs seed=%d",
		sim.Params.ArrivalRate, sim.Params.ServiceRate, sim.Params.Servers, sim.Horizon, sim.Seed)

	sim.Spawn(sim.arrivals)
	sim.RunUntil(sim.Horizon)

	inProgress := sim.Metrics.PatientsArrived - sim.Metrics.PatientsServed
	if inProgress > 0 {
		logrus.Debugf("[%.4f] Horizon reached with %d patients in progress (%d in service, %d waiting); dropped from served count",
			sim.Clock, inProgress, sim.inService, sim.Pool.QueueLen())
	}
	logrus.Infof("[%.4f] Simulation ended: %d arrived, %d served", sim.Clock, sim.Metrics.PatientsArrived, sim.Metrics.PatientsServed)
}

// InService returns the number of patients currently being served.
func (sim *Simulator) InService() int {
	return sim.inService
}

// transition moves p to state `to`, keeping the in-service count and trace current.
func (sim *Simulator) transition(p *Patient, to PatientState) {
	from := p.State
	p.State = to
	switch {
	case to == StateInService:
		sim.inService++
	case from == StateInService:
		sim.inService--
	}
	if sim.inService > sim.Pool.Capacity() {
		panic(fmt.Sprintf("transition: %d patients in service exceeds %d servers", sim.inService, sim.Pool.Capacity()))
	}

	switch to {
	case StateWaiting:
		logrus.Debugf("%.4f: Patient %d arrives", sim.Clock, p.ID)
	case StateInService:
		logrus.Debugf("%.4f: Patient %d begins service (wait %.4f)", sim.Clock, p.ID, p.Wait())
	case StateDeparted:
		logrus.Debugf("%.4f: Patient %d leaves", sim.Clock, p.ID)
	}

	if sim.Trace != nil {
		sim.Trace.RecordTransition(trace.TransitionRecord{
			PatientID: p.ID,
			Clock:     sim.Clock,
			From:      string(from),
			To:        string(to),
			InService: sim.inService,
			QueueLen:  sim.Pool.QueueLen(),
		})
	}
}

// Result summarizes the finished run. Observations are copied so the result
// stays valid independently of the Simulator.
func (sim *Simulator) Result() *RunResult {
	metrics := sim.Metrics.Summarize(sim.Params)
	metrics.PeakQueueLength = sim.Pool.PeakQueueLen()
	return &RunResult{
		RunID:        sim.RunID,
		Parameters:   sim.Params,
		Seed:         sim.Seed,
		Metrics:      metrics,
		WaitTimes:    append([]float64(nil), sim.Metrics.WaitTimes...),
		ServiceTimes: append([]float64(nil), sim.Metrics.ServiceTimes...),
	}
}
