package game

import (
	"slices"
	"testing"
	"time"
)

// TestSchedulerOrdering 到期事件按截止时间执行，同一时间按登记顺序
func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	var fired []string

	s.After("c", 30*time.Millisecond, func() { fired = append(fired, "c") })
	s.After("a", 10*time.Millisecond, func() { fired = append(fired, "a") })
	s.After("b1", 20*time.Millisecond, func() { fired = append(fired, "b1") })
	s.After("b2", 20*time.Millisecond, func() { fired = append(fired, "b2") })

	if n := s.Advance(15 * time.Millisecond); n != 1 {
		t.Fatalf("First advance fired %d events, want 1", n)
	}
	if n := s.Advance(20 * time.Millisecond); n != 3 {
		t.Fatalf("Second advance fired %d events, want 3", n)
	}

	want := []string{"a", "b1", "b2", "c"}
	if !slices.Equal(fired, want) {
		t.Errorf("Order: got %v, want %v", fired, want)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", s.Pending())
	}
}

// TestSchedulerNotDueYet 未到期的事件不执行
func TestSchedulerNotDueYet(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After("spawn", 800*time.Millisecond, func() { fired = true })

	for range 31 {
		s.Advance(25 * time.Millisecond)
	}
	if fired {
		t.Fatal("Event fired before its deadline")
	}
	if !s.Has("spawn") {
		t.Error("Has(spawn) should be true")
	}

	s.Advance(25 * time.Millisecond)
	if !fired {
		t.Fatal("Event did not fire at its deadline")
	}
	if s.Has("spawn") {
		t.Error("Has(spawn) should be false after firing")
	}
	if s.Now() != 800*time.Millisecond {
		t.Errorf("Now: got %v, want 800ms", s.Now())
	}
}

// TestSchedulerChained 回调中登记的零延迟事件在同一次推进中执行
func TestSchedulerChained(t *testing.T) {
	s := NewScheduler()
	var fired []string

	s.After("first", 10*time.Millisecond, func() {
		fired = append(fired, "first")
		s.After("second", -time.Second, func() { fired = append(fired, "second") })
		s.After("later", time.Second, func() { fired = append(fired, "later") })
	})

	s.Advance(10 * time.Millisecond)

	if !slices.Equal(fired, []string{"first", "second"}) {
		t.Errorf("Fired: got %v", fired)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending: got %d, want 1", s.Pending())
	}
}
