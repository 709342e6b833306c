// Defines the Patient process that models one arrival's journey through the facility.
// Tracks arrival, service start and departure timestamps for wait/service metrics.

package sim

import (
	"fmt"
)

// PatientState represents the lifecycle state of a patient.
type PatientState string

const (
	StateArrived   PatientState = "arrived"
	StateWaiting   PatientState = "waiting"
	StateInService PatientState = "in_service"
	StateDeparted  PatientState = "departed"
)

// Patient is the per-arrival process: arrived → waiting → in service → departed.
// A patient still waiting or in service when the horizon is reached is simply
// never resumed again; it contributes no departure to the run.
type Patient struct {
	ID    int          // Sequence number assigned by the arrival generator (1-based)
	State PatientState // arrived, waiting, in_service, departed

	ArrivalTime      float64 // Simulated hour the patient arrived
	ServiceStartTime float64 // Simulated hour a server was granted
	DepartureTime    float64 // Simulated hour service finished
	ServiceDuration  float64 // Sampled service duration in hours
}

// NewPatient creates a patient in the arrived state.
func NewPatient(id int) *Patient {
	return &Patient{
		ID:    id,
		State: StateArrived,
	}
}

// This method returns a human-readable string representation of a Patient.
func (p *Patient) String() string {
	return fmt.Sprintf("Patient %d (%s)", p.ID, p.State)
}

// Wait returns the time spent queueing before service started.
func (p *Patient) Wait() float64 {
	return p.ServiceStartTime - p.ArrivalTime
}

// Resume advances the patient to its next lifecycle step.
func (p *Patient) Resume(sim *Simulator) {
	switch p.State {
	case StateArrived:
		p.arrive(sim)
	case StateWaiting:
		p.beginService(sim)
	case StateInService:
		p.depart(sim)
	default:
		panic(fmt.Sprintf("Resume: %v cannot be resumed", p))
	}
}

func (p *Patient) arrive(sim *Simulator) {
	p.ArrivalTime = sim.Clock
	sim.Metrics.PatientsArrived++
	sim.transition(p, StateWaiting)

	if sim.Pool.Acquire(p) {
		p.beginService(sim)
	}
}

func (p *Patient) beginService(sim *Simulator) {
	p.ServiceStartTime = sim.Clock
	sim.Metrics.RecordWait(p.Wait())

	p.ServiceDuration = ExpVariate(sim.rng.ForSubsystem(SubsystemService), sim.Params.ServiceRate)
	sim.Metrics.RecordService(p.ServiceDuration)

	sim.transition(p, StateInService)
	sim.ScheduleDelay(p, p.ServiceDuration)
}

func (p *Patient) depart(sim *Simulator) {
	p.DepartureTime = sim.Clock
	sim.Pool.Release(p)
	sim.transition(p, StateDeparted)
	sim.Metrics.PatientsServed++
}
