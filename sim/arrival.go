package sim

import (
	"math/rand"
)

// PoissonSampler generates exponentially-distributed inter-arrival gaps (CV=1),
// i.e. a Poisson arrival process with the given rate per hour.
type PoissonSampler struct {
	rate float64 // arrivals per hour
}

// NewPoissonSampler creates a sampler for the given arrival rate.
func NewPoissonSampler(rate float64) *PoissonSampler {
	return &PoissonSampler{rate: rate}
}

// SampleGap returns the next inter-arrival gap in hours.
func (s *PoissonSampler) SampleGap(rng *rand.Rand) float64 {
	return ExpVariate(rng, s.rate)
}

// ArrivalGenerator is the long-lived process that creates patients.
// Each step waits one sampled gap and then spawns a patient without suspending
// itself, until the simulation horizon stops resuming it.
type ArrivalGenerator struct {
	sampler *PoissonSampler
	started bool
	spawned int
}

// NewArrivalGenerator creates a generator drawing gaps from sampler.
func NewArrivalGenerator(sampler *PoissonSampler) *ArrivalGenerator {
	return &ArrivalGenerator{sampler: sampler}
}

// Spawned returns the number of patients created so far.
func (g *ArrivalGenerator) Spawned() int {
	return g.spawned
}

// Resume spawns the patient whose gap just elapsed (except on the first step)
// and schedules the next gap.
func (g *ArrivalGenerator) Resume(sim *Simulator) {
	if g.started {
		g.spawned++
		sim.Spawn(NewPatient(g.spawned))
	}
	g.started = true
	sim.ScheduleDelay(g, g.sampler.SampleGap(sim.rng.ForSubsystem(SubsystemArrivals)))
}
