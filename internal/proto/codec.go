package proto

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

var (
	errVarIntTooBig  = errors.New("varint is too big")
	errVarLongTooBig = errors.New("varlong is too big")
)

// Readable pulls bytes from some source, failing with Disconnected on a
// short read and IoError on any other transport fault.
type Readable interface {
	Read(p []byte) (int, error)
}

// Writable pushes bytes to some sink, reporting the number written.
type Writable interface {
	Write(p []byte) (int, error)
}

// ReadFull reads exactly len(p) bytes, translating a short read into
// Disconnected the way the rest of the protocol expects.
func ReadFull(r Readable, p []byte) error {
	n, err := io.ReadFull(asIOReader(r), p)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Disconnected{}
		}
		if n < len(p) {
			return Disconnected{}
		}
		return IoError{Err: err}
	}
	return nil
}

func asIOReader(r Readable) io.Reader {
	if ir, ok := r.(io.Reader); ok {
		return ir
	}
	return readableAdapter{r}
}

type readableAdapter struct{ r Readable }

func (a readableAdapter) Read(p []byte) (int, error) { return a.r.Read(p) }

func writeAll(w Writable, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return IoError{Err: err}
	}
	if n != len(p) {
		return IoError{Err: io.ErrShortWrite}
	}
	return nil
}

// ReadUint8/WriteUint8 and friends are the big-endian fixed-width integer
// primitives every other wire type is built from.

func ReadUint8(r Readable) (uint8, error) {
	var b [1]byte
	if err := ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func WriteUint8(w Writable, v uint8) error { return writeAll(w, []byte{v}) }

func ReadInt8(r Readable) (int8, error) {
	v, err := ReadUint8(r)
	return int8(v), err
}

func WriteInt8(w Writable, v int8) error { return WriteUint8(w, uint8(v)) }

func ReadUint16(r Readable) (uint16, error) {
	var b [2]byte
	if err := ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func WriteUint16(w Writable, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return writeAll(w, b[:])
}

func ReadInt16(r Readable) (int16, error) {
	v, err := ReadUint16(r)
	return int16(v), err
}

func WriteInt16(w Writable, v int16) error { return WriteUint16(w, uint16(v)) }

func ReadUint32(r Readable) (uint32, error) {
	var b [4]byte
	if err := ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func WriteUint32(w Writable, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return writeAll(w, b[:])
}

func ReadInt32(r Readable) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}

func WriteInt32(w Writable, v int32) error { return WriteUint32(w, uint32(v)) }

func ReadUint64(r Readable) (uint64, error) {
	var b [8]byte
	if err := ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func WriteUint64(w Writable, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return writeAll(w, b[:])
}

func ReadInt64(r Readable) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

func WriteInt64(w Writable, v int64) error { return WriteUint64(w, uint64(v)) }

// ReadUint128/WriteUint128 represent the 128-bit UUID field as two
// big-endian halves, since Go has no native 128-bit integer.
func ReadUint128(r Readable) (hi uint64, lo uint64, err error) {
	if hi, err = ReadUint64(r); err != nil {
		return 0, 0, err
	}
	if lo, err = ReadUint64(r); err != nil {
		return 0, 0, err
	}
	return hi, lo, nil
}

func WriteUint128(w Writable, hi, lo uint64) error {
	if err := WriteUint64(w, hi); err != nil {
		return err
	}
	return WriteUint64(w, lo)
}

func ReadBool(r Readable) (bool, error) {
	v, err := ReadUint8(r)
	return v != 0, err
}

func WriteBool(w Writable, v bool) error {
	if v {
		return WriteUint8(w, 1)
	}
	return WriteUint8(w, 0)
}

func ReadFloat32(r Readable) (float32, error) {
	v, err := ReadUint32(r)
	return math.Float32frombits(v), err
}

func WriteFloat32(w Writable, v float32) error {
	return WriteUint32(w, math.Float32bits(v))
}

func ReadFloat64(r Readable) (float64, error) {
	v, err := ReadUint64(r)
	return math.Float64frombits(v), err
}

func WriteFloat64(w Writable, v float64) error {
	return WriteUint64(w, math.Float64bits(v))
}

// maxVarIntBytes/maxVarLongBytes bound decoding so a corrupt or hostile
// stream of continuation bytes cannot spin forever.
const (
	maxVarIntBytes  = 5
	maxVarLongBytes = 10
)

// ReadVarInt decodes a VarInt: 7-bit little-endian groups, continuation
// bit is the MSB of each byte. Each incoming group is shifted into
// successively higher bit positions.
func ReadVarInt(r Readable) (int32, error) {
	var result int32
	for i := 0; i < maxVarIntBytes; i++ {
		b, err := ReadUint8(r)
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, IoError{Err: errVarIntTooBig}
}

// WriteVarInt encodes v as a VarInt. Encoding 0 yields exactly one byte.
func WriteVarInt(w Writable, v int32) error {
	u := uint32(v)
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		if err := WriteUint8(w, b); err != nil {
			return err
		}
		if u == 0 {
			return nil
		}
	}
}

// ReadVarLong/WriteVarLong mirror ReadVarInt/WriteVarInt at 64 bits,
// bounded to 10 bytes.
func ReadVarLong(r Readable) (int64, error) {
	var result int64
	for i := 0; i < maxVarLongBytes; i++ {
		b, err := ReadUint8(r)
		if err != nil {
			return 0, err
		}
		result |= int64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, IoError{Err: errVarLongTooBig}
}

func WriteVarLong(w Writable, v int64) error {
	u := uint64(v)
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		if err := WriteUint8(w, b); err != nil {
			return err
		}
		if u == 0 {
			return nil
		}
	}
}

// ReadString reads a VarInt-prefixed UTF-8 string. A declared length at
// or beyond max fails StringTooLong — Testable Property 4 requires
// read_string(max=len(s)) to fail, so max is the smallest disallowed
// length.
func ReadString(r Readable, max int) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	length := int(n)
	if length < 0 {
		return "", Disconnected{}
	}
	if length >= max {
		partial := make([]byte, minInt(length, max))
		_ = ReadFull(r, partial)
		return "", StringTooLong{Actual: length, Max: max, Partial: string(partial)}
	}
	buf := make([]byte, length)
	if err := ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteString writes a VarInt-prefixed UTF-8 string.
func WriteString(w Writable, s string) error {
	b := []byte(s)
	if err := WriteVarInt(w, int32(len(b))); err != nil {
		return err
	}
	return writeAll(w, b)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
