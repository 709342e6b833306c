package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerPool_Acquire_FreeSlot_GrantedImmediately(t *testing.T) {
	// GIVEN a pool with two slots
	s := newTestSimulator(t, kernelParams(2))
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	// WHEN two processes acquire
	// THEN both are granted without suspension
	assert.True(t, s.Pool.Acquire(a))
	assert.True(t, s.Pool.Acquire(b))
	assert.Equal(t, 2, s.Pool.InUse())
	assert.Equal(t, 0, s.Pool.QueueLen())
	assert.Equal(t, 0, s.Pending(), "immediate grants must not schedule wake-ups")
}

func TestServerPool_Acquire_Full_QueuesCaller(t *testing.T) {
	s := newTestSimulator(t, kernelParams(1))
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	assert.True(t, s.Pool.Acquire(a))
	assert.False(t, s.Pool.Acquire(b))
	assert.Equal(t, 1, s.Pool.InUse())
	assert.Equal(t, 1, s.Pool.QueueLen())
	assert.Equal(t, 1, s.Pool.PeakQueueLen())
}

func TestServerPool_Release_WakesWaitersInFIFOOrder(t *testing.T) {
	// GIVEN one slot held by a and three waiters b, c, d
	s := newTestSimulator(t, kernelParams(1))
	var log []string
	a := &recorder{name: "a", log: &log}
	waiters := []*recorder{{name: "b", log: &log}, {name: "c", log: &log}, {name: "d", log: &log}}
	assert.True(t, s.Pool.Acquire(a))
	for _, w := range waiters {
		assert.False(t, s.Pool.Acquire(w))
	}

	// WHEN the holder releases and each granted waiter releases in turn
	s.Pool.Release(a)
	s.RunUntil(1)
	assert.Equal(t, []string{"b"}, log, "only the head waiter is resumed")
	s.Pool.Release(waiters[0])
	s.Pool.Release(waiters[1])
	s.RunUntil(2)

	// THEN waiters resumed strictly in the order they queued
	assert.Equal(t, []string{"b", "c", "d"}, log)
	assert.Equal(t, 1, s.Pool.InUse())
	assert.Equal(t, 0, s.Pool.QueueLen())
}

func TestServerPool_Release_HandsSlotToWaiter_NewcomerCannotOvertake(t *testing.T) {
	// GIVEN a full pool with one waiter
	s := newTestSimulator(t, kernelParams(1))
	var log []string
	holder := &recorder{name: "holder", log: &log}
	waiter := &recorder{name: "waiter", log: &log}
	newcomer := &recorder{name: "newcomer", log: &log}
	s.Pool.Acquire(holder)
	s.Pool.Acquire(waiter)

	// WHEN the holder releases and a newcomer asks at the same instant,
	// before the waiter has been resumed
	s.Pool.Release(holder)
	granted := s.Pool.Acquire(newcomer)

	// THEN the slot already belongs to the waiter
	assert.False(t, granted)
	assert.Equal(t, 1, s.Pool.InUse())
	assert.Equal(t, 1, s.Pool.QueueLen())
}

func TestServerPool_Release_NotHeld_Panics(t *testing.T) {
	s := newTestSimulator(t, kernelParams(1))
	var log []string
	stranger := &recorder{name: "stranger", log: &log}
	assert.Panics(t, func() { s.Pool.Release(stranger) })
}

func TestServerPool_Release_Twice_Panics(t *testing.T) {
	s := newTestSimulator(t, kernelParams(1))
	var log []string
	a := &recorder{name: "a", log: &log}
	s.Pool.Acquire(a)
	s.Pool.Release(a)
	assert.Panics(t, func() { s.Pool.Release(a) })
}

func TestServerPool_Acquire_AlreadyHolding_Panics(t *testing.T) {
	s := newTestSimulator(t, kernelParams(2))
	var log []string
	a := &recorder{name: "a", log: &log}
	s.Pool.Acquire(a)
	assert.Panics(t, func() { s.Pool.Acquire(a) })
}

func TestNewServerPool_NonPositiveCapacity_Panics(t *testing.T) {
	s := newTestSimulator(t, kernelParams(1))
	assert.Panics(t, func() { NewServerPool(s, 0) })
}
