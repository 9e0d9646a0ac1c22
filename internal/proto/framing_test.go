package proto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNoReplace(t *testing.T) {
	reg := NewRegistry()
	first := func(r Readable) (any, error) { return "first", nil }
	second := func(r Readable) (any, error) { return "second", nil }

	require.NoError(t, reg.When(StateStatus, 0x00, first))
	err := reg.When(StateStatus, 0x00, second)
	require.Error(t, err)
	var cannotReplace CannotReplace
	require.True(t, errors.As(err, &cannotReplace))

	decode, err := reg.Lookup(StateStatus, 0x00)
	require.NoError(t, err)
	got, err := decode(nil)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestLookupUnknownID(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup(StateStatus, 0x09)
	require.Error(t, err)
	var invalid InvalidPacketID
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, uint32(0x09), invalid.ID)
}

func TestFrameBoundaryPreserved(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.When(StateStatus, 0x01, func(r Readable) (any, error) {
		v, err := ReadUint64(r)
		return v, err
	}))

	transport := &Buffer{}
	require.NoError(t, WriteFrame(transport, 0x01, func(w Writable) error {
		return WriteUint64(w, 1234)
	}))
	require.NoError(t, WriteFrame(transport, 0x01, func(w Writable) error {
		return WriteUint64(w, 5678)
	}))

	id, packet, err := ReadFrame(transport, reg, StateStatus)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01), id)
	assert.Equal(t, uint64(1234), packet)

	id, packet, err = ReadFrame(transport, reg, StateStatus)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01), id)
	assert.Equal(t, uint64(5678), packet)
	assert.Equal(t, 0, transport.Len())
}

func TestFrameDecoderIgnoresTrailingBytes(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.When(StateHandshake, 0x00, func(r Readable) (any, error) {
		// Deliberately reads nothing; trailing scratch bytes must not
		// bleed into the next frame.
		return struct{}{}, nil
	}))

	transport := &Buffer{}
	require.NoError(t, WriteFrame(transport, 0x00, func(w Writable) error {
		return WriteString(w, "ignored body")
	}))
	require.NoError(t, WriteFrame(transport, 0x00, func(w Writable) error {
		return WriteString(w, "next frame")
	}))

	_, _, err := ReadFrame(transport, reg, StateHandshake)
	require.NoError(t, err)

	_, packet, err := ReadFrame(transport, reg, StateHandshake)
	require.NoError(t, err)
	assert.Equal(t, struct{}{}, packet)
}
