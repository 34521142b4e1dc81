// Package parcel is a fixed-width primitive stream: every int32 takes four
// big-endian bytes and every int64 takes eight, written back to back with no
// framing. It is the byte-level carrier for primlist's primitive-stream layout.
package parcel

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"

	"github.com/rony4d/go-primlist/utils/fast"
)

// ErrTruncated is returned when a read needs more bytes than remain.
var ErrTruncated = errors.New("parcel: truncated input")

const (
	int32Size = 4
	int64Size = 8
)

// Writer appends fixed-width primitives.
type Writer struct {
	bytes *fast.Writer
}

// NewWriter returns a Writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{bytes: fast.NewWriter(make([]byte, 0, sizeHint))}
}

func (w *Writer) WriteInt32(v int32) {
	w.bytes.Write(bigendian.Uint32ToBytes(uint32(v)))
}

func (w *Writer) WriteInt64(v int64) {
	w.bytes.Write(bigendian.Uint64ToBytes(uint64(v)))
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.bytes.Bytes()
}

// Reader consumes fixed-width primitives. Unlike fast.Reader it never
// panics on short input.
type Reader struct {
	bytes *fast.Reader
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{bytes: fast.NewReader(b)}
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.bytes.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.bytes.Position(), r.bytes.Remaining())
	}
	return r.bytes.Read(n), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.take(int32Size)
	if err != nil {
		return 0, err
	}
	return int32(bigendian.BytesToUint32(b)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.take(int64Size)
	if err != nil {
		return 0, err
	}
	return int64(bigendian.BytesToUint64(b)), nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return r.bytes.Remaining()
}

// Empty reports whether the whole input has been consumed.
func (r *Reader) Empty() bool {
	return r.bytes.Empty()
}
