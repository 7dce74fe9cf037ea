package serialize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeIntKnownValues(t *testing.T) {
	require.Nil(t, EncodeInt(0))
	require.Equal(t, []byte{5}, EncodeInt(5))
	require.Equal(t, []byte{0x85}, EncodeInt(-5))
	require.Equal(t, []byte{0xff, 0x00}, EncodeInt(255))
	require.Equal(t, []byte{0xff, 0x80}, EncodeInt(-255))
}

func TestEncodeIntVecToIntRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 5, -5, 127, -127, 128, -128, 255, -255, 65535, -65535, 1 << 32, -(1 << 32)}
	for _, n := range cases {
		require.Equal(t, n, VecToInt(EncodeInt(n)), "round trip for %d", n)
	}
}

func TestEncodeIntNPadding(t *testing.T) {
	enc := EncodeIntN(5, 4)
	require.Equal(t, 4, len(enc))
	require.Equal(t, int64(5), VecToInt(enc))

	enc = EncodeIntN(-5, 4)
	require.Equal(t, 4, len(enc))
	require.Equal(t, int64(-5), VecToInt(enc))
}

func TestEncodeBool(t *testing.T) {
	require.Equal(t, []byte{1}, EncodeBool(true))
	require.Nil(t, EncodeBool(false))
}
