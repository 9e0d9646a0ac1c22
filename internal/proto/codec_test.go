package proto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 127, 128, 255, 2097151, -2147483648, 2147483647}
	for _, v := range values {
		buf := &Buffer{}
		require.NoError(t, WriteVarInt(buf, v))
		got, err := ReadVarInt(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, 0, buf.Len())
	}
}

func TestVarIntCanonicalBounds(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, c := range cases {
		buf := &Buffer{}
		require.NoError(t, WriteVarInt(buf, c.v))
		assert.Equal(t, c.want, buf.Bytes())
	}
}

func TestVarIntRejectsSixthContinuation(t *testing.T) {
	buf := &Buffer{bytes: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}}
	_, err := ReadVarInt(buf)
	require.Error(t, err)
	var ioErr IoError
	assert.True(t, errors.As(err, &ioErr))
}

func TestVarLongRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 128, 1 << 40, -(1 << 40)}
	for _, v := range values {
		buf := &Buffer{}
		require.NoError(t, WriteVarLong(buf, v))
		got, err := ReadVarLong(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestBigEndianIntRoundTrip(t *testing.T) {
	buf := &Buffer{}
	require.NoError(t, WriteInt8(buf, -5))
	v8, err := ReadInt8(buf)
	require.NoError(t, err)
	assert.Equal(t, int8(-5), v8)

	buf = &Buffer{}
	require.NoError(t, WriteUint16(buf, 0xBEEF))
	v16, err := ReadUint16(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v16)

	buf = &Buffer{}
	require.NoError(t, WriteInt32(buf, -123456))
	v32, err := ReadInt32(buf)
	require.NoError(t, err)
	assert.Equal(t, int32(-123456), v32)

	buf = &Buffer{}
	require.NoError(t, WriteInt64(buf, -9000000000))
	v64, err := ReadInt64(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(-9000000000), v64)

	buf = &Buffer{}
	require.NoError(t, WriteUint128(buf, 0x0102030405060708, 0x090a0b0c0d0e0f10))
	hi, lo, err := ReadUint128(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), hi)
	assert.Equal(t, uint64(0x090a0b0c0d0e0f10), lo)
}

func TestStringRoundTrip(t *testing.T) {
	s := "hello, world"
	buf := &Buffer{}
	require.NoError(t, WriteString(buf, s))
	got, err := ReadString(buf, len(s)+1)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestStringTooLong(t *testing.T) {
	s := "0123456789abcdef"
	buf := &Buffer{}
	require.NoError(t, WriteString(buf, s))
	_, err := ReadString(buf, len(s))
	require.Error(t, err)
	var tooLong StringTooLong
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, len(s), tooLong.Actual)
	assert.Equal(t, len(s), tooLong.Max)
}

func TestReadFullDisconnectsOnShortRead(t *testing.T) {
	buf := &Buffer{bytes: []byte{0x01, 0x02}}
	err := ReadFull(buf, make([]byte, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, Disconnected{})
}
