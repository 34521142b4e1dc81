// Package fast provides append-only byte writers and cursor-based byte readers
// for linear serialization.
//
// Neither type is safe for concurrent use. Reader does not bounds-check: reading
// past the end panics with a slice bounds error, so callers that decode
// untrusted input either check Remaining first (utils/parcel) or recover the
// panic (utils/cser).
package fast

// Reader consumes a byte slice from the front.
type Reader struct {
	buf    []byte
	offset int
}

// Writer accumulates bytes by appending to a slice.
type Writer struct {
	buf []byte
}

// NewReader returns a Reader positioned at the start of bb. The capacity of
// bb is clipped so that reads never reach bytes beyond len(bb).
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb[:len(bb):len(bb)],
		offset: 0,
	}
}

// NewWriter returns a Writer appending to bb. Pass make([]byte, 0, n) to
// preallocate.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends v.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Read consumes the next n bytes. The result aliases the underlying buffer.
// Panics if fewer than n bytes remain.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte consumes a single byte. Panics if the reader is empty.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// Position returns the number of bytes consumed.
func (b *Reader) Position() int {
	return b.offset
}

// Remaining returns the number of unread bytes.
func (b *Reader) Remaining() int {
	return len(b.buf) - b.offset
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty reports whether every byte has been consumed.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
