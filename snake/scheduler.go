package snake

import "time"

// Scheduler accumulates callback time and releases one move per threshold
// crossing. The remainder carries over to the next crossing.
type Scheduler struct {
	accumulator time.Duration
	hold        time.Duration
}

// Advance adds elapsed to the accumulator. While a hold is pending the whole
// callback is absorbed by it instead and Advance returns false.
func (s *Scheduler) Advance(elapsed time.Duration) bool {
	if s.hold > 0 {
		s.hold -= elapsed
		if s.hold < 0 {
			s.hold = 0
		}
		return false
	}
	s.accumulator += elapsed
	return true
}

// Due consumes one delay from the accumulator if enough time has built up.
// Callers invoke it at most once per callback.
func (s *Scheduler) Due(delay time.Duration) bool {
	if s.accumulator < delay {
		return false
	}
	s.accumulator -= delay
	return true
}

// Hold freezes the accumulator for d of callback time. Holds do not stack;
// the longer one wins.
func (s *Scheduler) Hold(d time.Duration) {
	if d > s.hold {
		s.hold = d
	}
}

func (s *Scheduler) Accumulated() time.Duration {
	return s.accumulator
}

func (s *Scheduler) Holding() bool {
	return s.hold > 0
}

func (s *Scheduler) Reset() {
	*s = Scheduler{}
}
