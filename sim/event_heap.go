package sim

import "container/heap"

// EventHeap implements a priority queue of pending wake-ups with deterministic ordering.
// Ordering: timestamp → scheduling sequence number.
type EventHeap struct {
	events []*wakeup
}

// NewEventHeap creates a new event heap
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		events: make([]*wakeup, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *EventHeap) Len() int {
	return len(h.events)
}

// Less implements heap.Interface with deterministic ordering.
// Wake-ups at the same simulated time fire in the order they were scheduled.
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]

	if ei.time != ej.time {
		return ei.time < ej.time
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface
func (h *EventHeap) Push(x any) {
	h.events = append(h.events, x.(*wakeup))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.events = old[0 : n-1]
	return item
}

// Schedule adds a wake-up to the heap
func (h *EventHeap) Schedule(w *wakeup) {
	heap.Push(h, w)
}

// PopNext removes and returns the next wake-up, or nil if the heap is empty.
func (h *EventHeap) PopNext() *wakeup {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(*wakeup)
}

// Peek returns the next wake-up without removing it
func (h *EventHeap) Peek() *wakeup {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}
