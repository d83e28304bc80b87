package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceStartsAtOne(t *testing.T) {
	s := NewSequence()

	assert.Equal(t, uint64(1), s.NextOrderNumber())
	assert.Equal(t, uint64(1), s.NextMatchNumber())
}

func TestSequenceCountersAreIndependent(t *testing.T) {
	s := NewSequence()

	s.NextOrderNumber()
	s.NextOrderNumber()
	s.NextOrderNumber()

	assert.Equal(t, uint64(1), s.NextMatchNumber())
	assert.Equal(t, uint64(4), s.NextOrderNumber())
}

func TestSequenceNeverRepeats(t *testing.T) {
	s := NewSequence()

	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		n := s.NextOrderNumber()
		assert.False(t, seen[n])
		seen[n] = true
	}
}
