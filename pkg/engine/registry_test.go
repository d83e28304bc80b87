package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryTrackAndLookup(t *testing.T) {
	log := &eventLog{}
	s := &testSession{name: "s", log: log}
	r := NewRegistry()

	order := &Order{clientOrderID: "a", orderNumber: 7, session: s}
	r.Track(order)

	assert.Same(t, order, r.Lookup(7))
	assert.Equal(t, 1, r.Len())

	require.Len(t, log.notes, 1)
	assert.Equal(t, "track", log.notes[0].kind)
}

func TestRegistryLookupAbsentReturnsNil(t *testing.T) {
	r := NewRegistry()

	assert.Nil(t, r.Lookup(42))
}

func TestRegistryReleaseNotifiesThenRemoves(t *testing.T) {
	log := &eventLog{}
	s := &testSession{name: "s", log: log}
	r := NewRegistry()

	order := &Order{clientOrderID: "a", orderNumber: 7, session: s}
	r.Track(order)
	log.reset()

	r.Release(order)

	assert.Nil(t, r.Lookup(7))
	require.Len(t, log.notes, 1)
	assert.Equal(t, "release", log.notes[0].kind)

	// Releasing again notifies but removing the absent key is a no-op.
	r.Release(order)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryDropSkipsNotification(t *testing.T) {
	log := &eventLog{}
	s := &testSession{name: "s", log: log}
	r := NewRegistry()

	order := &Order{clientOrderID: "a", orderNumber: 7, session: s}
	r.Track(order)
	log.reset()

	r.Drop(7)

	assert.Nil(t, r.Lookup(7))
	assert.Empty(t, log.notes)

	// Dropping an absent key is a no-op.
	r.Drop(7)
}
