package sim

import (
	"testing"
)

func TestWaitQueue_Dequeue_FIFOOrder(t *testing.T) {
	// GIVEN a queue with patients [1, 2, 3]
	wq := &WaitQueue{}
	for i := 1; i <= 3; i++ {
		wq.Enqueue(NewPatient(i))
	}

	// WHEN dequeued until empty
	// THEN patients come out in insertion order, then nil
	for want := 1; want <= 3; want++ {
		got := wq.Dequeue().(*Patient)
		if got.ID != want {
			t.Errorf("Dequeue: got patient %d, want %d", got.ID, want)
		}
	}
	if wq.Dequeue() != nil {
		t.Error("Dequeue on empty queue should return nil")
	}
}

func TestWaitQueue_Enqueue_Nil_Panics(t *testing.T) {
	wq := &WaitQueue{}
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil process")
		}
	}()
	wq.Enqueue(nil)
}

func TestWaitQueue_String_ListsPatients(t *testing.T) {
	wq := &WaitQueue{}
	wq.Enqueue(NewPatient(1))
	wq.Enqueue(NewPatient(2))
	want := "[Patient 1 (arrived) Patient 2 (arrived)]"
	if got := wq.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
