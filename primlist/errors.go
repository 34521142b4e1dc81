package primlist

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is wrapped by every IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrMalformedEncoding reports input that is truncated or whose header
	// fields are inconsistent.
	ErrMalformedEncoding = errors.New("malformed list encoding")
	// ErrTooLargeAlloc reports a capacity or length above MaxCapacity.
	ErrTooLargeAlloc = errors.New("list capacity exceeds limit")
)

// IndexError is returned by positional operations given an index outside
// [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid index %d, size is %d", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
