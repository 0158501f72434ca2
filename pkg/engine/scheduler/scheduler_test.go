package scheduler

import (
	"context"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAfter_RunsOnlyWhenDue(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	fired := 0
	s.After(200*time.Millisecond, func() { fired++ })

	clock.Advance(199 * time.Millisecond)
	s.Tick()
	if fired != 0 {
		t.Fatalf("fired at 199ms = %d, want 0", fired)
	}

	clock.Advance(time.Millisecond)
	s.Tick()
	if fired != 1 {
		t.Fatalf("fired at 200ms = %d, want 1", fired)
	}

	clock.Advance(time.Second)
	s.Tick()
	if fired != 1 {
		t.Errorf("fired again = %d, want 1", fired)
	}
}

func TestTick_DeadlineOrderThenSchedulingOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	var order []string
	s.After(2*time.Second, func() { order = append(order, "late") })
	s.After(time.Second, func() { order = append(order, "first") })
	s.After(time.Second, func() { order = append(order, "second") })

	clock.Advance(3 * time.Second)
	s.Tick()

	want := []string{"first", "second", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestCancel_PreventsRun(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	fired := false
	h := s.After(time.Millisecond, func() { fired = true })
	h.Cancel()
	clock.Advance(time.Second)
	s.Tick()
	if fired {
		t.Error("cancelled timer fired")
	}

	var nilHandle *Handle
	nilHandle.Cancel() // must not panic
}

func TestTick_TimersScheduledDuringTickWaitForNextTick(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	inner := false
	s.After(0, func() {
		s.After(0, func() { inner = true })
	})
	s.Tick()
	if inner {
		t.Fatal("zero-delay timer scheduled during tick ran in the same tick")
	}
	s.Tick()
	if !inner {
		t.Error("zero-delay timer did not run on the next tick")
	}
}

func TestPost_RunsBeforeTimers(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	var order []string
	s.After(0, func() { order = append(order, "timer") })
	done := make(chan struct{})
	go func() {
		s.Post(func() { order = append(order, "posted") })
		close(done)
	}()
	<-done
	s.Tick()
	if len(order) != 2 || order[0] != "posted" || order[1] != "timer" {
		t.Errorf("order = %v, want [posted timer]", order)
	}
}

func TestEvery_RepeatsUntilCancelled(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(clock)
	count := 0
	h := s.Every(100*time.Millisecond, func() { count++ })
	for i := 0; i < 3; i++ {
		clock.Advance(100 * time.Millisecond)
		s.Tick()
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	h.Cancel()
	clock.Advance(100 * time.Millisecond)
	s.Tick()
	if count != 3 {
		t.Errorf("count after cancel = %d, want 3", count)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(RealClock{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, time.Millisecond); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
