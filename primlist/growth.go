package primlist

const (
	// DefaultCapacity is the backing size of a new list.
	DefaultCapacity = 16
	// MinCapacityIncrement is the growth step for small lists.
	MinCapacityIncrement = 12
	// MaxCapacity bounds the capacity a list may be encoded or decoded with.
	MaxCapacity = 1 << 24
)

// newCapacity returns the storage size that follows c: a fixed step of
// MinCapacityIncrement below 6 elements, half of c above.
func newCapacity(c int) int {
	increment := c >> 1
	if c < MinCapacityIncrement/2 {
		increment = MinCapacityIncrement
	}
	return c + increment
}

// ensureCapacity reallocates the backing storage when it cannot hold minCap
// elements. Only [0, size) is carried over.
func (l *List[T]) ensureCapacity(minCap int) {
	if minCap <= len(l.items) {
		return
	}
	n := newCapacity(len(l.items))
	if n < minCap {
		n = minCap
	}
	items := make([]T, n)
	copy(items, l.items[:l.size])
	l.items = items
}
