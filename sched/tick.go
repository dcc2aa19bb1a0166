// Package sched queues callbacks keyed by tick number.
//
// Producers on any goroutine schedule a callback for a target tick; the
// simulation loop drains everything due at or before the current tick once
// per step and runs it on its own goroutine. Callbacks scheduled for a
// past tick run on the next drain.
package sched

import (
	"container/heap"
	"sync"
)

type task struct {
	tick int64
	fn   func()
	seq  uint64
}

// taskHeap orders by tick, then by scheduling order within a tick.
type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].tick != h[j].tick {
		return h[i].tick < h[j].tick
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)        { *h = append(*h, x.(task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// TickScheduler is a bounded-delay task queue keyed by tick number.
type TickScheduler struct {
	mu    sync.Mutex
	tasks taskHeap
	seq   uint64
}

// New creates an empty scheduler.
func New() *TickScheduler {
	return &TickScheduler{}
}

// Schedule queues fn to run once the current tick reaches tick.
func (s *TickScheduler) Schedule(tick int64, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.seq++
	heap.Push(&s.tasks, task{tick: tick, fn: fn, seq: s.seq})
	s.mu.Unlock()
}

// Due removes and returns every callback scheduled for currentTick or
// earlier, in scheduling order per tick. Future callbacks stay queued.
func (s *TickScheduler) Due(currentTick int64) []func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []func()
	for len(s.tasks) > 0 && s.tasks[0].tick <= currentTick {
		t := heap.Pop(&s.tasks).(task)
		due = append(due, t.fn)
	}
	return due
}

// Pending returns the number of queued callbacks.
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
