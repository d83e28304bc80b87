package engine

// Sequence issues order numbers and match numbers. Both counters start
// at one, increment by one per assignment and are shared across all
// instruments, so issued numbers form a total order across the whole
// system for audit and replay. A number is never returned twice.
//
// The engine is single-threaded by contract, so the counters are plain
// integers.
type Sequence struct {
	nextOrderNumber uint64
	nextMatchNumber uint64
}

// NewSequence creates a Sequence with both counters at one
func NewSequence() *Sequence {
	return &Sequence{
		nextOrderNumber: 1,
		nextMatchNumber: 1,
	}
}

// NextOrderNumber returns the next order number and advances the counter
func (s *Sequence) NextOrderNumber() uint64 {
	n := s.nextOrderNumber
	s.nextOrderNumber++
	return n
}

// NextMatchNumber returns the next match number and advances the counter
func (s *Sequence) NextMatchNumber() uint64 {
	n := s.nextMatchNumber
	s.nextMatchNumber++
	return n
}
