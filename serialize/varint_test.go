package serialize

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xff, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, n := range cases {
		buf := &bytes.Buffer{}
		require.Nil(t, WriteVarInt(buf, n))
		got, err := ReadVarInt(buf)
		require.Nil(t, err)
		require.Equal(t, n, got)
	}
}

func TestVarIntEncodingLength(t *testing.T) {
	require.Equal(t, 1, len(VarIntToVec(0xfc)))
	require.Equal(t, 3, len(VarIntToVec(0xfd)))
	require.Equal(t, 5, len(VarIntToVec(0x10000)))
	require.Equal(t, 9, len(VarIntToVec(0x100000000)))
}
