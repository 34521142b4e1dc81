package primlist

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-primlist/utils/cser"
	"github.com/rony4d/go-primlist/utils/parcel"
)

// memParcel records primitives in write order and replays them, checking
// that each read asks for the width that was written.
type memParcel struct {
	values []int64
	wide   []bool
	pos    int
}

func (p *memParcel) WriteInt32(v int32) {
	p.values = append(p.values, int64(v))
	p.wide = append(p.wide, false)
}

func (p *memParcel) WriteInt64(v int64) {
	p.values = append(p.values, v)
	p.wide = append(p.wide, true)
}

func (p *memParcel) next(wide bool) (int64, error) {
	if p.pos >= len(p.values) {
		return 0, io.ErrUnexpectedEOF
	}
	if p.wide[p.pos] != wide {
		return 0, errors.New("primitive width mismatch")
	}
	v := p.values[p.pos]
	p.pos++
	return v, nil
}

func (p *memParcel) ReadInt32() (int32, error) {
	v, err := p.next(false)
	return int32(v), err
}

func (p *memParcel) ReadInt64() (int64, error) {
	return p.next(true)
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteInt32(v int32) { m.Called(v) }
func (m *mockWriter) WriteInt64(v int64) { m.Called(v) }

func TestEncodeLayout(t *testing.T) {
	l := Of[int64](100, 200, 300)
	p := &memParcel{}
	l.Encode(p)

	require.Len(t, p.values, 2+DefaultCapacity)
	require.Equal(t, []int64{3, DefaultCapacity, 100, 200, 300}, p.values[:5])
	require.Equal(t, []bool{false, false, true}, p.wide[:3])
	for _, v := range p.values[5:] {
		require.Zero(t, v)
	}
}

func TestEncodeCalls(t *testing.T) {
	l := NewWithCapacity[int32](4)
	l.Add(7)
	l.Add(8)

	m := &mockWriter{}
	m.On("WriteInt32", int32(2)).Once()
	m.On("WriteInt32", int32(4)).Once()
	m.On("WriteInt32", int32(7)).Once()
	m.On("WriteInt32", int32(8)).Once()
	m.On("WriteInt32", int32(0)).Twice()

	l.Encode(m)
	m.AssertExpectations(t)
	m.AssertNotCalled(t, "WriteInt64", mock.Anything)
}

func TestDecodeFromParcel(t *testing.T) {
	src := Of[int32](100, 200, 300)
	p := &memParcel{}
	src.Encode(p)

	out, err := Decode[int32](p)
	require.NoError(t, err)
	require.True(t, src.Equal(out))
	require.Equal(t, src.Cap(), out.Cap())
}

func TestDecodeWidthMismatch(t *testing.T) {
	p := &memParcel{}
	Of[int64](1).Encode(p)

	_, err := Decode[int32](p)
	require.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestBinaryRoundTrip(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		in := Of[int64](100, 200, 300)
		b, err := in.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, b, 8+DefaultCapacity*8)

		out := &LongList{}
		require.NoError(t, out.UnmarshalBinary(b))
		require.True(t, in.Equal(out))
		require.Equal(t, in.Cap(), out.Cap())
	})

	t.Run("empty", func(t *testing.T) {
		in := NewIntList()
		b, err := in.MarshalBinary()
		require.NoError(t, err)

		out := &IntList{}
		require.NoError(t, out.UnmarshalBinary(b))
		require.True(t, in.Equal(out))
		require.Equal(t, 0, out.Len())
	})

	t.Run("stale slots persisted", func(t *testing.T) {
		in := Of[int32](1, 2)
		in.Clear()
		b, err := in.MarshalBinary()
		require.NoError(t, err)

		out := &IntList{}
		require.NoError(t, out.UnmarshalBinary(b))
		require.True(t, out.IsEmpty())
		require.Equal(t, []int32{1, 2}, out.items[:2])
	})
}

func TestBinaryLayout(t *testing.T) {
	l := NewWithCapacity[int32](2)
	l.Add(7)

	b, err := l.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0, 0, 0, 1,
		0, 0, 0, 2,
		0, 0, 0, 7,
		0, 0, 0, 0,
	}, b)
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Of[int32](100, 200, 300).MarshalBinary()
	require.NoError(t, err)

	header := func(size, capacity int32) []byte {
		w := parcel.NewWriter(8)
		w.WriteInt32(size)
		w.WriteInt32(capacity)
		return w.Bytes()
	}

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"nil", nil, ErrMalformedEncoding},
		{"no capacity", valid[:4], ErrMalformedEncoding},
		{"truncated elements", valid[:len(valid)-2], ErrMalformedEncoding},
		{"trailing bytes", append(append([]byte{}, valid...), 0), ErrMalformedEncoding},
		{"negative length", header(-1, 4), ErrMalformedEncoding},
		{"capacity below length", header(5, 4), ErrMalformedEncoding},
		{"capacity too large", header(0, MaxCapacity+1), ErrTooLargeAlloc},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Of[int32](9)
			err := out.UnmarshalBinary(tc.data)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, []int32{9}, out.ToSlice(), "target must be untouched")
		})
	}

	_, err = Decode[int32](parcel.NewReader(valid[:len(valid)-2]))
	require.ErrorIs(t, err, parcel.ErrTruncated)
}

func TestCompactRoundTrip(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		in := Of[int32](100, -200, 300, math.MinInt32, math.MaxInt32, 0)
		b, err := in.MarshalCompact()
		require.NoError(t, err)

		out := NewIntList()
		require.NoError(t, out.UnmarshalCompact(b))
		require.True(t, in.Equal(out))
	})

	t.Run("long", func(t *testing.T) {
		in := Of[int64](100, 200, 300, math.MinInt64, math.MaxInt64, -1)
		b, err := in.MarshalCompact()
		require.NoError(t, err)

		out := NewLongList()
		require.NoError(t, out.UnmarshalCompact(b))
		require.True(t, in.Equal(out))
	})

	t.Run("empty", func(t *testing.T) {
		b, err := NewLongList().MarshalCompact()
		require.NoError(t, err)

		out := Of[int64](1)
		require.NoError(t, out.UnmarshalCompact(b))
		require.True(t, out.IsEmpty())
	})

	t.Run("smaller than fixed width", func(t *testing.T) {
		in := Of[int64](1, 2, 3)
		compact, err := in.MarshalCompact()
		require.NoError(t, err)
		fixed, err := in.MarshalBinary()
		require.NoError(t, err)
		require.Less(t, len(compact), len(fixed))
	})

	t.Run("ignores stale slots", func(t *testing.T) {
		a := Of[int32](1, 2, 3)
		b := Of[int32](1, 2, 3, 4)
		_, err := b.RemoveAt(3)
		require.NoError(t, err)

		ab, err := a.MarshalCompact()
		require.NoError(t, err)
		bb, err := b.MarshalCompact()
		require.NoError(t, err)
		require.Equal(t, ab, bb)
	})
}

func TestCompactMalformed(t *testing.T) {
	b, err := Of[int32](1, 2, 3).MarshalCompact()
	require.NoError(t, err)

	out := Of[int32](9)
	require.Error(t, out.UnmarshalCompact(b[1:]))
	require.Error(t, out.UnmarshalCompact(nil))
	require.Equal(t, []int32{9}, out.ToSlice())
}

func TestCompactDeclaredLength(t *testing.T) {
	header := func(kind Kind, n uint64) []byte {
		b, err := cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
			w.U8(uint8(kind))
			w.U56(n)
			return nil
		})
		require.NoError(t, err)
		return b
	}

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"longer than input", header(KindInt, MaxCapacity), ErrMalformedEncoding},
		{"above limit", header(KindInt, MaxCapacity+1), ErrTooLargeAlloc},
		{"wrong kind", header(KindLong, 0), ErrMalformedEncoding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Of[int32](9)
			require.ErrorIs(t, out.UnmarshalCompact(tc.data), tc.want)
			require.Equal(t, []int32{9}, out.ToSlice())
		})
	}

	t.Run("other kind's payload", func(t *testing.T) {
		b, err := Of[int64](1, 2).MarshalCompact()
		require.NoError(t, err)
		require.ErrorIs(t, NewIntList().UnmarshalCompact(b), ErrMalformedEncoding)
	})
}

func TestMarshalRefusesOversizedList(t *testing.T) {
	l := &IntList{items: make([]int32, MaxCapacity+1), size: MaxCapacity + 1}

	_, err := l.MarshalBinary()
	require.ErrorIs(t, err, ErrTooLargeAlloc)

	_, err = l.MarshalCompact()
	require.ErrorIs(t, err, ErrTooLargeAlloc)

	_, err = rlp.EncodeToBytes(l)
	require.ErrorIs(t, err, ErrTooLargeAlloc)

	// a list at the limit still round trips
	l.items = l.items[:MaxCapacity]
	l.size = MaxCapacity
	b, err := l.MarshalBinary()
	require.NoError(t, err)

	var out IntList
	require.NoError(t, out.UnmarshalBinary(b))
	require.Equal(t, MaxCapacity, out.Len())
	require.Equal(t, MaxCapacity, out.Cap())
}

func TestRLPRoundTrip(t *testing.T) {
	in := Of[int64](100, 200, 300)
	b, err := rlp.EncodeToBytes(in)
	require.NoError(t, err)

	var out LongList
	require.NoError(t, rlp.DecodeBytes(b, &out))
	require.True(t, in.Equal(&out))
	require.Equal(t, in.Cap(), out.Cap())
}
