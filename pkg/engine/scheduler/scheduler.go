// Package scheduler runs deferred work on a single cooperative tick loop.
// Everything scheduled here executes on whichever goroutine calls Tick;
// Post is the only method safe to call from other goroutines.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/zyedidia/generic/heap"
)

type timer struct {
	deadline  time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// Handle refers to a scheduled timer
type Handle struct {
	t *timer
}

// Cancel stops the timer from firing. Safe to call on a nil handle or after the timer ran.
// Must be called from the tick goroutine.
func (h *Handle) Cancel() {
	if h == nil || h.t == nil {
		return
	}
	h.t.cancelled = true
}

// Scheduler owns the timer queue and the cross-goroutine inbox
type Scheduler struct {
	clock Clock
	queue *heap.Heap[*timer]
	seq   uint64
	ticks uint64

	inboxMu sync.Mutex
	inbox   []func()
}

// New creates a scheduler reading time from clock
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		clock: clock,
		queue: heap.New[*timer](func(a, b *timer) bool {
			if a.deadline.Equal(b.deadline) {
				return a.seq < b.seq
			}
			return a.deadline.Before(b.deadline)
		}),
	}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After schedules fn to run on the first tick at or after now+d
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	s.seq++
	t := &timer{deadline: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.queue.Push(t)
	return &Handle{t: t}
}

// Every schedules fn to run each interval until the handle is cancelled
func (s *Scheduler) Every(interval time.Duration, fn func()) *Handle {
	h := &Handle{}
	var run func()
	run = func() {
		fn()
		if h.t.cancelled {
			return
		}
		next := s.After(interval, run)
		h.t = next.t
	}
	h.t = s.After(interval, run).t
	return h
}

// Post queues fn to run at the start of the next tick. Safe for concurrent use.
func (s *Scheduler) Post(fn func()) {
	s.inboxMu.Lock()
	s.inbox = append(s.inbox, fn)
	s.inboxMu.Unlock()
}

// Pending returns the number of timers still queued, including cancelled ones
func (s *Scheduler) Pending() int {
	return s.queue.Size()
}

// Ticks returns how many ticks have run
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Tick drains the inbox, then runs every timer due at the current time in
// deadline order. Timers scheduled while ticking run on a later tick.
// Returns the number of callbacks executed.
func (s *Scheduler) Tick() int {
	s.ticks++
	ran := 0

	s.inboxMu.Lock()
	posted := s.inbox
	s.inbox = nil
	s.inboxMu.Unlock()
	for _, fn := range posted {
		fn()
		ran++
	}

	now := s.clock.Now()
	var due []*timer
	for {
		t, ok := s.queue.Peek()
		if !ok || t.deadline.After(now) {
			break
		}
		s.queue.Pop()
		due = append(due, t)
	}
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Run ticks every interval until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}
