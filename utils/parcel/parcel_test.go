package parcel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter(0)
	w.WriteInt32(3)
	w.WriteInt32(math.MinInt32)
	w.WriteInt64(-1)
	w.WriteInt64(math.MaxInt64)
	require.Len(w.Bytes(), 2*int32Size+2*int64Size)

	r := NewReader(w.Bytes())
	v32, err := r.ReadInt32()
	require.NoError(err)
	require.Equal(int32(3), v32)

	v32, err = r.ReadInt32()
	require.NoError(err)
	require.Equal(int32(math.MinInt32), v32)

	v64, err := r.ReadInt64()
	require.NoError(err)
	require.Equal(int64(-1), v64)

	v64, err = r.ReadInt64()
	require.NoError(err)
	require.Equal(int64(math.MaxInt64), v64)

	require.True(r.Empty())
}

func TestBigEndianLayout(t *testing.T) {
	w := NewWriter(4)
	w.WriteInt32(0x01020304)
	require.Equal(t, []byte{1, 2, 3, 4}, w.Bytes())
}

func TestTruncated(t *testing.T) {
	r := NewReader([]byte{0, 0, 0, 7, 1, 2})

	v, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(7), v)

	_, err = r.ReadInt32()
	require.ErrorIs(t, err, ErrTruncated)
	require.Equal(t, 2, r.Remaining(), "failed read must not consume input")

	_, err = r.ReadInt64()
	require.ErrorIs(t, err, ErrTruncated)
}
