package shm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the attach/detach/free state machine directly on
// a hand-built Segment rather than through Zeroed, which issues real
// SysV syscalls.

func TestSegmentAttachDetachCycle(t *testing.T) {
	s := &Segment{id: 1, size: 4096, data: make([]byte, 4096)}
	assert.False(t, s.Attached())

	s.MarkAttached()
	assert.True(t, s.Attached())

	require.NoError(t, s.MarkDetached())
	assert.False(t, s.Attached())
}

func TestSegmentMarkDetachedWithoutAttach(t *testing.T) {
	s := &Segment{id: 1, size: 4096, data: make([]byte, 4096)}
	assert.ErrorIs(t, s.MarkDetached(), ErrNotAttached)
}

func TestSegmentFreeRefusesWhileAttached(t *testing.T) {
	s := &Segment{id: 1, size: 4096, data: make([]byte, 4096)}
	s.MarkAttached()
	assert.ErrorIs(t, s.Free(), ErrNotAttached)
}

func TestSegmentDataAfterFreed(t *testing.T) {
	s := &Segment{id: 1, size: 4096, data: make([]byte, 4096), freed: true}
	_, err := s.Data()
	assert.ErrorIs(t, err, ErrAlreadyFreed)
}

func TestSegmentFreeAlreadyFreed(t *testing.T) {
	s := &Segment{id: 1, size: 4096, freed: true}
	assert.ErrorIs(t, s.Free(), ErrAlreadyFreed)
}

func TestSegmentIdAndSize(t *testing.T) {
	s := &Segment{id: 42, size: 8192, data: make([]byte, 8192)}
	assert.Equal(t, Id(42), s.Id())
	assert.Equal(t, uint32(8192), s.Size())

	data, err := s.Data()
	require.NoError(t, err)
	assert.Len(t, data, 8192)
}
