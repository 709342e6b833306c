package sim

import (
	"fmt"
	"strings"
)

// WaitQueue holds the processes that found every server busy, in arrival order.
type WaitQueue struct {
	queue []Process
}

// Enqueue adds a process to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	wq.queue = append(wq.queue, p)
}

func (wq *WaitQueue) String() string {
	names := make([]string, len(wq.queue))
	for i, p := range wq.queue {
		names[i] = fmt.Sprint(p)
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Len returns the number of processes in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() Process {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
