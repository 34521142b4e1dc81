// Package cser implements canonical compact serialization.
//
// A message is written to two streams at once: integer payload bytes go to a
// byte stream and their size prefixes (and booleans) go to a bit stream. The
// final layout is
//
//	[byte stream][bit stream][reversed varint(len(bit stream))]
//
// Decoding rejects any input that is not the unique minimal encoding of its
// values, so equal values always encode to equal bytes.
package cser

import (
	"errors"

	"github.com/rony4d/go-primlist/utils/bits"
	"github.com/rony4d/go-primlist/utils/fast"
)

// MarshalBinaryAdapter runs marshalCser against a fresh Writer and packs both
// streams into one slice.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return binaryFromCSER(w.BitsW.Array, w.BytesW.Bytes())
}

func binaryFromCSER(bbits *bits.Array, bbytes []byte) (raw []byte, err error) {
	bodyBytes := fast.NewWriter(bbytes)
	bodyBytes.Write(bbits.Bytes)

	sizeWriter := fast.NewWriter(make([]byte, 0, 4))
	writeUint64Compact(sizeWriter, uint64(len(bbits.Bytes)))
	// reversed so that the reader can decode it from the tail
	bodyBytes.Write(reversed(sizeWriter.Bytes()))

	return bodyBytes.Bytes(), nil
}

func binaryToCSER(raw []byte) (bbits *bits.Array, bbytes []byte, err error) {
	bitsSizeBuf := reversed(tail(raw, 9))
	bitsSizeReader := fast.NewReader(bitsSizeBuf)
	bitsSize := readUint64Compact(bitsSizeReader)

	raw = raw[:len(raw)-bitsSizeReader.Position()]
	if uint64(len(raw)) < bitsSize {
		err = ErrMalformedEncoding
		return
	}

	bbits = &bits.Array{Bytes: raw[uint64(len(raw))-bitsSize:]}
	bbytes = raw[:uint64(len(raw))-bitsSize]
	return
}

// UnmarshalBinaryAdapter splits raw into its two streams and runs
// unmarshalCser. Truncated input is reported as ErrMalformedEncoding, and
// any unread trailing data as ErrNonCanonicalEncoding.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(reader *Reader) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredErr(r)
		}
	}()

	bbits, bbytes, err := binaryToCSER(raw)
	if err != nil {
		return err
	}

	bodyReader := &Reader{
		BitsR:  bits.NewReader(bbits),
		BytesR: fast.NewReader(bbytes),
	}
	if err = unmarshalCser(bodyReader); err != nil {
		return err
	}

	if bodyReader.BitsR.NonReadBytes() > 1 {
		return ErrNonCanonicalEncoding
	}
	// padding bits of the last byte must be zero
	if tail := bodyReader.BitsR.Read(bodyReader.BitsR.NonReadBits()); tail != 0 {
		return ErrNonCanonicalEncoding
	}
	if !bodyReader.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}
	return nil
}

// recoveredErr keeps the package's own sentinels and maps everything else
// (slice bounds panics from the readers) to ErrMalformedEncoding.
func recoveredErr(r interface{}) error {
	if e, ok := r.(error); ok {
		for _, known := range []error{ErrNonCanonicalEncoding, ErrMalformedEncoding} {
			if errors.Is(e, known) {
				return known
			}
		}
	}
	return ErrMalformedEncoding
}

func tail(b []byte, cap int) []byte {
	if len(b) > cap {
		return b[len(b)-cap:]
	}
	return b
}

func reversed(b []byte) []byte {
	reversed := make([]byte, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}
	return reversed
}
