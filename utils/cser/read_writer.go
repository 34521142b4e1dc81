package cser

import (
	"errors"
	"math"

	"github.com/rony4d/go-primlist/utils/bits"
	"github.com/rony4d/go-primlist/utils/fast"
)

var (
	// ErrNonCanonicalEncoding reports input that decodes but is not the
	// minimal encoding of its values.
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	// ErrMalformedEncoding reports truncated input or out of range values.
	ErrMalformedEncoding = errors.New("malformed encoding")
)

// Writer writes to the bit stream and the byte stream of a CSER message.
type Writer struct {
	BitsW  *bits.Writer
	BytesW *fast.Writer
}

// Reader reads from the bit stream and the byte stream of a CSER message.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	bbits := &bits.Array{Bytes: make([]byte, 0, 32)}
	bbytes := make([]byte, 0, 200)
	return &Writer{
		BitsW:  bits.NewWriter(bbits),
		BytesW: fast.NewWriter(bbytes),
	}
}

// writeUint64Compact writes v in 7-bit groups, low group first. The high bit
// is set on the last group.
func writeUint64Compact(bytesW *fast.Writer, v uint64) {
	for {
		chunk := v & 0b01111111
		v = v >> 7
		if v == 0 {
			chunk |= 0b10000000
		}
		bytesW.WriteByte(byte(chunk))
		if v == 0 {
			break
		}
	}
}

func readUint64Compact(bytesR *fast.Reader) uint64 {
	v := uint64(0)
	stop := false
	for i := 0; !stop; i++ {
		chunk := uint64(bytesR.ReadByte())
		stop = (chunk & 0b10000000) != 0
		word := chunk & 0b01111111
		v |= word << (i * 7)
		// a zero terminal group means the value was padded
		if i > 0 && stop && word == 0 {
			panic(ErrNonCanonicalEncoding)
		}
	}
	return v
}

// writeUint64BitCompact writes v little endian using the fewest bytes, but
// not fewer than minSize. It returns the number of bytes written.
func writeUint64BitCompact(bytesW *fast.Writer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		bytesW.WriteByte(byte(v))
		size++
		v = v >> 8
	}
	return
}

func readUint64BitCompact(bytesR *fast.Reader, size int) uint64 {
	var (
		v    uint64
		last byte
	)
	buf := bytesR.Read(size)
	for i, b := range buf {
		v |= uint64(b) << uint(8*i)
		last = b
	}
	if size > 1 && last == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return v
}

// readU64_bits reads the byte count (minus minSize) from the bit stream, then
// that many bytes from the byte stream.
func (r *Reader) readU64_bits(minSize int, bitsForSize int) uint64 {
	size := r.BitsR.Read(bitsForSize)
	size += uint(minSize)
	return readUint64BitCompact(r.BytesR, int(size))
}

func (w *Writer) writeU64_bits(minSize int, bitsForSize int, v uint64) {
	size := writeUint64BitCompact(w.BytesW, v, minSize)
	w.BitsW.Write(bitsForSize, uint(size-minSize))
}

// U8 writes a single byte with no size prefix.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// U32 takes 1..4 bytes, the byte count is kept in 2 bits.
func (w *Writer) U32(v uint32) {
	w.writeU64_bits(1, 2, uint64(v))
}

func (r *Reader) U32() uint32 {
	return uint32(r.readU64_bits(1, 2))
}

// U64 takes 1..8 bytes, the byte count is kept in 3 bits.
func (w *Writer) U64(v uint64) {
	w.writeU64_bits(1, 3, v)
}

func (r *Reader) U64() uint64 {
	return r.readU64_bits(1, 3)
}

// I32 writes a sign bit followed by the magnitude as U32.
func (w *Writer) I32(v int32) {
	w.Bool(v < 0)
	if v < 0 {
		// two's complement negation is exact for MinInt32 in uint32
		w.U32(uint32(-int64(v)))
	} else {
		w.U32(uint32(v))
	}
}

func (r *Reader) I32() int32 {
	neg := r.Bool()
	abs := r.U32()
	if neg && abs == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	if neg {
		if abs > 1<<31 {
			panic(ErrMalformedEncoding)
		}
		return int32(-int64(abs))
	}
	if abs > math.MaxInt32 {
		panic(ErrMalformedEncoding)
	}
	return int32(abs)
}

// I64 writes a sign bit followed by the magnitude as U64.
func (w *Writer) I64(v int64) {
	w.Bool(v < 0)
	if v < 0 {
		// -MinInt64 wraps to itself, which converts to 1<<63
		w.U64(uint64(-v))
	} else {
		w.U64(uint64(v))
	}
}

func (r *Reader) I64() int64 {
	neg := r.Bool()
	abs := r.U64()
	if neg && abs == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	if neg && abs > 1<<63 || !neg && abs > math.MaxInt64 {
		panic(ErrMalformedEncoding)
	}
	if neg {
		return -int64(abs)
	}
	return int64(abs)
}

// U56 holds lengths. Zero takes no bytes at all.
func (w *Writer) U56(v uint64) {
	const max = 1<<(8*7) - 1
	if v > max {
		panic("value too big")
	}
	w.writeU64_bits(0, 3, v)
}

func (r *Reader) U56() uint64 {
	return r.readU64_bits(0, 3)
}

// Bool takes a single bit of the bit stream.
func (w *Writer) Bool(v bool) {
	u8 := uint(0)
	if v {
		u8 = 1
	}
	w.BitsW.Write(1, u8)
}

func (r *Reader) Bool() bool {
	return r.BitsR.Read(1) != 0
}
