package bits

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWord struct {
	bits int
	v    uint
}

func bytesToFit(bits int) int {
	return (bits + 7) / 8
}

func genTestWords(r *rand.Rand, maxCount int, maxBits int) []testWord {
	words := make([]testWord, r.Intn(maxCount))
	for i := range words {
		words[i].bits = 1
		if maxBits > 1 {
			words[i].bits += r.Intn(maxBits - 1)
		}
		words[i].v = uint(r.Intn(1 << words[i].bits))
	}
	return words
}

func testBitArray(t *testing.T, words []testWord) {
	arr := Array{make([]byte, 0, 100)}
	writer := NewWriter(&arr)
	reader := NewReader(&arr)

	total := 0
	for _, w := range words {
		writer.Write(w.bits, w.v)
		total += w.bits
	}
	require.Equal(t, bytesToFit(total), len(arr.Bytes))

	read := 0
	for i, w := range words {
		assert.Equal(t, bytesToFit(total)*8-read, reader.NonReadBits())
		assert.Equal(t, w.v, reader.Read(w.bits), "word %d", i)
		read += w.bits
	}

	assert.Equal(t, bytesToFit(total)*8-total, reader.NonReadBits())
	assert.Equal(t, uint(0), reader.Read(reader.NonReadBits()), "padding bits must be zero")
	assert.Equal(t, 0, reader.NonReadBytes())
}

func TestBitArrayEmpty(t *testing.T) {
	testBitArray(t, nil)
}

func TestBitArrayFixed(t *testing.T) {
	testBitArray(t, []testWord{
		{1, 1}, {3, 5}, {8, 0xAB}, {2, 2}, {7, 0x7F}, {1, 0}, {9, 0x1FF},
	})
}

func TestBitArrayRand(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBitArray(t, genTestWords(r, 64, 17))
	}
	for i := 0; i < 50; i++ {
		testBitArray(t, genTestWords(r, 64, 1))
	}
}

func TestReadPastEndPanics(t *testing.T) {
	arr := Array{}
	NewWriter(&arr).Write(3, 5)
	reader := NewReader(&arr)
	reader.Read(8)
	require.Panics(t, func() { reader.Read(1) })
}
