package primlist

import (
	"github.com/Fantom-foundation/lachesis-base/hash"

	"github.com/rony4d/go-primlist/utils/parcel"
)

// Equal reports whether l and other hold the same elements in the same
// order. Capacity is not compared.
func (l *List[T]) Equal(other *List[T]) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil || l.size != other.size {
		return false
	}
	for i, v := range l.items[:l.size] {
		if other.items[i] != v {
			return false
		}
	}
	return true
}

// Hash returns an order-sensitive hash of the elements. It equals
// HashSlice(l.ToSlice()), and matches the hash JVM clients compute for an
// int[] or long[] with the same values.
func (l *List[T]) Hash() int32 {
	return HashSlice(l.items[:l.size])
}

// HashSlice hashes values as h = 31*h + e, seeded with 1. Wide elements are
// folded to 32 bits by xoring their high and low halves.
func HashSlice[T Element](values []T) int32 {
	wide := KindOf[T]() == KindLong
	h := int32(1)
	for _, v := range values {
		var e int32
		if wide {
			x := int64(v)
			e = int32(x ^ int64(uint64(x)>>32))
		} else {
			e = int32(v)
		}
		h = 31*h + e
	}
	return h
}

// Digest returns the SHA-256 of the element kind, the length and the
// elements in fixed-width big-endian form. Equal lists have equal digests
// regardless of capacity.
func (l *List[T]) Digest() hash.Hash {
	w := parcel.NewWriter(8 + l.size*int(l.Kind()))
	w.WriteInt32(int32(l.Kind()))
	w.WriteInt32(int32(l.size))
	writeElements(w, l.items[:l.size])
	return hash.Of(w.Bytes())
}
