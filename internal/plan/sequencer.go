package plan

import "math"

// Comprehensive plan wizard step count.
const ComprehensiveSteps = 6

// Sequencer tracks wizard position. The comprehensive plan wizard is ungated:
// Advance always moves forward until the last step, validation happens only
// on final submit.
type Sequencer struct {
	current int
	total   int
}

// NewSequencer starts at step 1 of total.
func NewSequencer(total int) *Sequencer {
	if total < 1 {
		total = 1
	}
	return &Sequencer{current: 1, total: total}
}

// RestoreSequencer resumes at a saved step, clamped to [1, total].
func RestoreSequencer(current, total int) *Sequencer {
	s := NewSequencer(total)
	s.GoTo(current)
	return s
}

func (s *Sequencer) Current() int { return s.current }
func (s *Sequencer) Total() int   { return s.total }

// Advance moves one step forward; at the last step it does nothing.
func (s *Sequencer) Advance() {
	if s.current < s.total {
		s.current++
	}
}

// Retreat moves one step back; at the first step it does nothing.
func (s *Sequencer) Retreat() {
	if s.current > 1 {
		s.current--
	}
}

// GoTo jumps to a step, clamped to [1, total].
func (s *Sequencer) GoTo(step int) {
	switch {
	case step < 1:
		s.current = 1
	case step > s.total:
		s.current = s.total
	default:
		s.current = step
	}
}

// PercentComplete returns the rounded progress percentage.
func (s *Sequencer) PercentComplete() int {
	return int(math.Round(float64(s.current) / float64(s.total) * 100))
}
