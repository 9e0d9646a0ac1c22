package proto

// Buffer is an in-memory Readable/Writable used for frame assembly: Read
// consumes from the front, Write appends to the back. It backs both the
// framed channel's scratch buffer and tests that exercise the codec
// without a socket.
type Buffer struct {
	bytes []byte
}

// NewBuffer wraps an existing byte slice for reading.
func NewBuffer(b []byte) *Buffer {
	buf := &Buffer{bytes: make([]byte, len(b))}
	copy(buf.bytes, b)
	return buf
}

// Read implements Readable, consuming from the front of the buffer. A
// request for more bytes than remain fails Disconnected, matching the
// short-read contract of a real socket.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) > len(b.bytes) {
		return 0, Disconnected{}
	}
	n := copy(p, b.bytes[:len(p)])
	b.bytes = b.bytes[len(p):]
	return n, nil
}

// Write implements Writable, appending to the back of the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.bytes = append(b.bytes, p...)
	return len(p), nil
}

// Len reports the number of unread bytes.
func (b *Buffer) Len() int { return len(b.bytes) }

// Bytes returns the unread tail of the buffer. The caller must not
// mutate it.
func (b *Buffer) Bytes() []byte { return b.bytes }
