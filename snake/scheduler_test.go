package snake

import (
	"testing"
	"time"
)

func TestSchedulerCarriesRemainder(t *testing.T) {
	var s Scheduler
	delay := 30 * time.Millisecond

	// 20ms callbacks against a 30ms delay: moves on callbacks 2, 3, 5, 6, ...
	var moves []int
	for i := 1; i <= 6; i++ {
		s.Advance(TickInterval)
		if s.Due(delay) {
			moves = append(moves, i)
		}
	}
	want := []int{2, 3, 5, 6}
	if len(moves) != len(want) {
		t.Fatalf("expected moves on %v, got %v", want, moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("expected moves on %v, got %v", want, moves)
		}
	}
	if s.Accumulated() != 0 {
		t.Errorf("expected empty accumulator, got %v", s.Accumulated())
	}
}

func TestSchedulerOneMovePerCallback(t *testing.T) {
	var s Scheduler
	s.Advance(250 * time.Millisecond)
	if !s.Due(100 * time.Millisecond) {
		t.Fatal("expected a move")
	}
	if s.Accumulated() != 150*time.Millisecond {
		t.Errorf("excess should carry over, got %v", s.Accumulated())
	}
}

func TestSchedulerHoldFreezesAccumulator(t *testing.T) {
	var s Scheduler
	s.Advance(40 * time.Millisecond)
	s.Hold(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if s.Advance(TickInterval) {
			t.Fatalf("callback %d should be absorbed by the hold", i)
		}
	}
	if s.Accumulated() != 40*time.Millisecond {
		t.Errorf("accumulator moved during hold: %v", s.Accumulated())
	}
	if s.Holding() {
		t.Error("hold should be over")
	}
	if !s.Advance(TickInterval) || s.Accumulated() != 60*time.Millisecond {
		t.Errorf("accumulator should resume after the hold, got %v", s.Accumulated())
	}
}

func TestSchedulerHoldsDoNotStack(t *testing.T) {
	var s Scheduler
	s.Hold(50 * time.Millisecond)
	s.Hold(20 * time.Millisecond)

	n := 0
	for !s.Advance(TickInterval) {
		n++
	}
	if n != 3 {
		t.Errorf("expected a 50ms hold to absorb 3 callbacks, absorbed %d", n)
	}
}
