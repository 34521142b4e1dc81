package primlist

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-primlist/utils/cser"
	"github.com/rony4d/go-primlist/utils/parcel"
)

// PrimitiveWriter accepts a sequence of fixed-width primitives.
type PrimitiveWriter interface {
	WriteInt32(v int32)
	WriteInt64(v int64)
}

// PrimitiveReader yields a sequence of fixed-width primitives. Reads fail
// once the input is exhausted.
type PrimitiveReader interface {
	ReadInt32() (int32, error)
	ReadInt64() (int64, error)
}

// Encode writes the list as
//
//	int32 length
//	int32 capacity
//	capacity elements
//
// The whole backing storage is written, including slots past Len.
func (l *List[T]) Encode(w PrimitiveWriter) {
	w.WriteInt32(int32(l.size))
	w.WriteInt32(int32(len(l.items)))
	writeElements(w, l.items)
}

// Decode reads a list written by Encode. The result has exactly the
// encoded length and capacity.
func Decode[T Element](r PrimitiveReader) (*List[T], error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("%w: length: %w", ErrMalformedEncoding, err)
	}
	capacity, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("%w: capacity: %w", ErrMalformedEncoding, err)
	}
	if size < 0 || capacity < size {
		return nil, fmt.Errorf("%w: length %d, capacity %d", ErrMalformedEncoding, size, capacity)
	}
	if capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLargeAlloc, capacity, MaxCapacity)
	}

	items := make([]T, capacity)
	if err := readElements(r, items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEncoding, err)
	}
	return &List[T]{items: items, size: int(size)}, nil
}

func writeElements[T Element](w PrimitiveWriter, items []T) {
	switch s := any(items).(type) {
	case []int32:
		for _, v := range s {
			w.WriteInt32(v)
		}
	case []int64:
		for _, v := range s {
			w.WriteInt64(v)
		}
	}
}

func readElements[T Element](r PrimitiveReader, items []T) error {
	switch s := any(items).(type) {
	case []int32:
		for i := range s {
			v, err := r.ReadInt32()
			if err != nil {
				return fmt.Errorf("element %d of %d: %w", i, len(s), err)
			}
			s[i] = v
		}
	case []int64:
		for i := range s {
			v, err := r.ReadInt64()
			if err != nil {
				return fmt.Errorf("element %d of %d: %w", i, len(s), err)
			}
			s[i] = v
		}
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the Encode layout
// over big-endian fixed-width primitives. Lists whose capacity exceeds
// MaxCapacity are refused since Decode would not read them back.
func (l *List[T]) MarshalBinary() ([]byte, error) {
	if len(l.items) > MaxCapacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLargeAlloc, len(l.items), MaxCapacity)
	}
	w := parcel.NewWriter(8 + len(l.items)*int(l.Kind()))
	l.Encode(w)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are
// rejected.
func (l *List[T]) UnmarshalBinary(data []byte) error {
	r := parcel.NewReader(data)
	decoded, err := Decode[T](r)
	if err != nil {
		return err
	}
	if !r.Empty() {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedEncoding, r.Remaining())
	}
	*l = *decoded
	return nil
}

// MarshalCSER writes the element kind, the length and then the elements in
// compact form. Unlike Encode, only [0, Len) is written.
func (l *List[T]) MarshalCSER(w *cser.Writer) error {
	if l.size > MaxCapacity {
		return fmt.Errorf("%w: %d > %d", ErrTooLargeAlloc, l.size, MaxCapacity)
	}
	w.U8(uint8(l.Kind()))
	w.U56(uint64(l.size))
	switch s := any(l.items[:l.size]).(type) {
	case []int32:
		for _, v := range s {
			w.I32(v)
		}
	case []int64:
		for _, v := range s {
			w.I64(v)
		}
	}
	return nil
}

// UnmarshalCSER reads a list written by MarshalCSER for the same element kind.
func (l *List[T]) UnmarshalCSER(r *cser.Reader) error {
	if kind := Kind(r.U8()); kind != KindOf[T]() {
		return fmt.Errorf("%w: kind %d, want %d", ErrMalformedEncoding, uint8(kind), uint8(KindOf[T]()))
	}
	n := r.U56()
	if n > MaxCapacity {
		return fmt.Errorf("%w: %d > %d", ErrTooLargeAlloc, n, MaxCapacity)
	}
	// every element takes at least one byte
	if n > uint64(r.BytesR.Remaining()) {
		return fmt.Errorf("%w: length %d, %d bytes left", ErrMalformedEncoding, n, r.BytesR.Remaining())
	}
	items := make([]T, newCapacity(int(n)))
	switch s := any(items[:n]).(type) {
	case []int32:
		for i := range s {
			s[i] = r.I32()
		}
	case []int64:
		for i := range s {
			s[i] = r.I64()
		}
	}
	l.items = items
	l.size = int(n)
	return nil
}

// MarshalCompact returns the canonical CSER encoding of the list.
func (l *List[T]) MarshalCompact() ([]byte, error) {
	return cser.MarshalBinaryAdapter(l.MarshalCSER)
}

// UnmarshalCompact replaces the contents of l with the decoded list. l is
// left untouched on error.
func (l *List[T]) UnmarshalCompact(raw []byte) error {
	decoded := &List[T]{}
	if err := cser.UnmarshalBinaryAdapter(raw, decoded.UnmarshalCSER); err != nil {
		return err
	}
	*l = *decoded
	return nil
}

// EncodeRLP implements rlp.Encoder. The MarshalBinary bytes are written as
// one RLP string.
func (l *List[T]) EncodeRLP(w io.Writer) error {
	b, err := l.MarshalBinary()
	if err != nil {
		return err
	}
	return rlp.Encode(w, b)
}

// DecodeRLP implements rlp.Decoder.
func (l *List[T]) DecodeRLP(s *rlp.Stream) error {
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	return l.UnmarshalBinary(b)
}
