package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.Equal(t, "OP_CHECKSIG", OP_CHECKSIG.String())
	require.Equal(t, "OP_CAT", OP_CAT.String())
	require.Equal(t, "OP_UNKNOWN", Opcode(0x01).String())
}

func TestIsSmallInt(t *testing.T) {
	cases := []struct {
		op    Opcode
		small bool
		value int
	}{
		{OP_0, true, 0},
		{OP_1NEGATE, true, -1},
		{OP_1, true, 1},
		{OP_16, true, 16},
		{OP_CHECKSIG, false, 0},
	}
	for _, c := range cases {
		require.Equal(t, c.small, IsSmallInt(c.op))
		if c.small {
			require.Equal(t, c.value, SmallIntValue(c.op))
		}
	}
}
