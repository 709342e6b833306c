package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ServerPool models a fixed number of identical staff slots with FIFO admission.
// It is only touched by the single process the kernel is resuming, so it needs no locking.
//
// A slot freed by Release is handed to the head waiter immediately (it counts as
// held from that instant) and the waiter is resumed at zero delay. A process
// arriving at the same simulated instant therefore cannot overtake it.
type ServerPool struct {
	sim      *Simulator
	capacity int
	holders  map[Process]struct{}
	waiting  *WaitQueue

	peakInUse    int
	peakQueueLen int
}

// NewServerPool creates a pool with the given capacity bound to a simulator.
func NewServerPool(sim *Simulator, capacity int) *ServerPool {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewServerPool: capacity must be positive, got %d", capacity))
	}
	return &ServerPool{
		sim:      sim,
		capacity: capacity,
		holders:  make(map[Process]struct{}, capacity),
		waiting:  &WaitQueue{},
	}
}

// Acquire requests a slot for p. It returns true when a slot was free and is now
// held by p. Otherwise p is queued and false is returned; p is resumed at zero
// delay once a Release hands it a slot.
func (sp *ServerPool) Acquire(p Process) bool {
	if _, held := sp.holders[p]; held {
		panic(fmt.Sprintf("Acquire: %v already holds a slot", p))
	}
	if len(sp.holders) < sp.capacity {
		sp.grant(p)
		return true
	}
	sp.waiting.Enqueue(p)
	sp.peakQueueLen = max(sp.peakQueueLen, sp.waiting.Len())
	logrus.Tracef("[%.4f] %v queued for a server (queue=%d)", sp.sim.Clock, p, sp.waiting.Len())
	return false
}

// Release frees the slot held by p and hands it to the next FIFO waiter, if any.
// Releasing a slot that p does not hold is a programming error and panics.
func (sp *ServerPool) Release(p Process) {
	if _, held := sp.holders[p]; !held {
		panic(fmt.Sprintf("Release: %v does not hold a slot", p))
	}
	delete(sp.holders, p)

	if next := sp.waiting.Dequeue(); next != nil {
		sp.grant(next)
		sp.sim.ScheduleDelay(next, 0)
	}
}

func (sp *ServerPool) grant(p Process) {
	sp.holders[p] = struct{}{}
	sp.peakInUse = max(sp.peakInUse, len(sp.holders))
}

// Capacity returns the fixed number of slots.
func (sp *ServerPool) Capacity() int {
	return sp.capacity
}

// InUse returns the number of slots currently held (including slots handed to
// waiters that have not resumed yet).
func (sp *ServerPool) InUse() int {
	return len(sp.holders)
}

// QueueLen returns the number of processes waiting for a slot.
func (sp *ServerPool) QueueLen() int {
	return sp.waiting.Len()
}

// PeakInUse returns the largest number of simultaneously held slots seen so far.
func (sp *ServerPool) PeakInUse() int {
	return sp.peakInUse
}

// PeakQueueLen returns the longest wait queue seen so far.
func (sp *ServerPool) PeakQueueLen() int {
	return sp.peakQueueLen
}
