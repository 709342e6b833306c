package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// SimulationKey is the master seed of a run. Equal keys and equal parameters
// give identical runs.
type SimulationKey int64

// NewSimulationKey wraps seed as a SimulationKey.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams drawn by the kernel.
const (
	SubsystemArrivals = "arrivals" // inter-arrival gaps; seeded with the master key
	SubsystemService  = "service"  // service durations
)

// PartitionedRNG hands out one *rand.Rand per named stream. Arrivals use the
// master key as their seed; every other stream is seeded with
// key XOR fnv1a64(name). Gaps and service times therefore never consume each
// other's draws, and a seeded run sees the same arrivals at any server count.
//
// Owned by a single Simulator; not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates the stream set for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand, 2)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	rng, ok := p.streams[name]
	if !ok {
		rng = rand.New(rand.NewSource(p.seedFor(name)))
		p.streams[name] = rng
	}
	return rng
}

func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemArrivals {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// ExpVariate draws an exponential duration with mean 1/rate.
// A rate that is not positive and finite panics.
func ExpVariate(rng *rand.Rand, rate float64) float64 {
	if !(rate > 0) || math.IsInf(rate, 1) {
		panic(fmt.Sprintf("ExpVariate: rate must be positive and finite, got %v", rate))
	}
	return rng.ExpFloat64() / rate
}
