// Package primlist provides growable, index-addressable lists of fixed-width
// integers. A List stores its elements unboxed in one backing slice and
// manages that slice's capacity itself, so the growth schedule and the
// serialized capacity field are deterministic.
//
// A List is not safe for concurrent use.
package primlist

import (
	"strconv"
	"strings"
)

// Element is the set of element kinds a List can hold.
type Element interface {
	int32 | int64
}

// Kind identifies the element kind by its width in bytes.
type Kind uint8

const (
	// KindInt is the kind of 32-bit elements.
	KindInt Kind = 4
	// KindLong is the kind of 64-bit elements.
	KindLong Kind = 8
)

// String returns the display name of lists holding this kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "IntArrayList"
	case KindLong:
		return "LongArrayList"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindOf returns the Kind for T.
func KindOf[T Element]() Kind {
	var zero T
	if _, ok := any(zero).(int32); ok {
		return KindInt
	}
	return KindLong
}

// List is a growable sequence of T. Elements at [0, Len()) are meaningful,
// the rest of the backing slice is scratch space.
type List[T Element] struct {
	items []T
	size  int
}

type (
	// IntList is a list of int32, displayed as IntArrayList.
	IntList = List[int32]
	// LongList is a list of int64, displayed as LongArrayList.
	LongList = List[int64]
)

// New returns an empty list with DefaultCapacity.
func New[T Element]() *List[T] {
	return NewWithCapacity[T](DefaultCapacity)
}

// NewWithCapacity returns an empty list with room for n elements.
func NewWithCapacity[T Element](n int) *List[T] {
	if n < 0 {
		n = 0
	}
	return &List[T]{items: make([]T, n)}
}

// NewIntList returns an empty IntList with DefaultCapacity.
func NewIntList() *IntList {
	return New[int32]()
}

// NewLongList returns an empty LongList with DefaultCapacity.
func NewLongList() *LongList {
	return New[int64]()
}

// Of returns a list holding values in order.
func Of[T Element](values ...T) *List[T] {
	l := New[T]()
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// Copy returns an independent list with the same contents. The copy's
// capacity is derived from Len, not from the source capacity.
func (l *List[T]) Copy() *List[T] {
	items := make([]T, newCapacity(l.size))
	copy(items, l.items[:l.size])
	return &List[T]{items: items, size: l.size}
}

// Add appends v.
func (l *List[T]) Add(v T) {
	s := l.size
	l.ensureCapacity(s + 1)
	l.items[s] = v
	l.size = s + 1
}

// Insert places v at index, shifting the elements at [index, Len()) one to
// the right. index must satisfy 0 <= index < Len(); use Add to append.
func (l *List[T]) Insert(index int, v T) error {
	s := l.size
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.ensureCapacity(s + 1)
	copy(l.items[index+1:s+1], l.items[index:s])
	l.items[index] = v
	l.size = s + 1
	return nil
}

// Set overwrites the element at index and returns the previous value.
func (l *List[T]) Set(index int, v T) (T, error) {
	if err := l.checkIndex(index); err != nil {
		return 0, err
	}
	old := l.items[index]
	l.items[index] = v
	return old, nil
}

// Get returns the element at index.
func (l *List[T]) Get(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		return 0, err
	}
	return l.items[index], nil
}

// RemoveAt deletes the element at index and returns it.
func (l *List[T]) RemoveAt(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		return 0, err
	}
	res := l.items[index]
	s := l.size - 1
	copy(l.items[index:s], l.items[index+1:l.size])
	l.items[s] = 0
	l.size = s
	return res, nil
}

// IndexOf returns the position of the first element equal to v, or -1.
func (l *List[T]) IndexOf(v T) int {
	for i, e := range l.items[:l.size] {
		if e == v {
			return i
		}
	}
	return -1
}

func (l *List[T]) Contains(v T) bool {
	return l.IndexOf(v) >= 0
}

// Clear empties the list. The backing storage is kept for reuse.
func (l *List[T]) Clear() {
	l.size = 0
}

func (l *List[T]) Len() int {
	return l.size
}

// Cap returns the size of the backing storage.
func (l *List[T]) Cap() int {
	return len(l.items)
}

func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// Kind returns the element kind of the list.
func (l *List[T]) Kind() Kind {
	return KindOf[T]()
}

// ToSlice returns a copy of the elements.
func (l *List[T]) ToSlice() []T {
	res := make([]T, l.size)
	copy(res, l.items[:l.size])
	return res
}

// String renders the list as "IntArrayList [ 1, 2, 3 ]". An empty list
// renders as "IntArrayList [ ]".
func (l *List[T]) String() string {
	var sb strings.Builder
	sb.WriteString(l.Kind().String())
	sb.WriteString(" [")
	for i, v := range l.items[:l.size] {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	sb.WriteString(" ]")
	return sb.String()
}

func (l *List[T]) checkIndex(index int) error {
	if index < 0 || index >= l.size {
		return &IndexError{Index: index, Len: l.size}
	}
	return nil
}
