package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCashAddrRoundTripP2PKH(t *testing.T) {
	var b [20]byte
	for i := range b {
		b[i] = byte(i)
	}
	addr := FromBytes(TypeP2PKH, b)
	require.NotEmpty(t, addr.CashAddr())

	parsed, err := FromCashAddr(addr.CashAddr())
	require.Nil(t, err)
	require.Equal(t, b, parsed.Bytes())
	require.Equal(t, TypeP2PKH, parsed.AddrType())
}

func TestCashAddrRoundTripP2SH(t *testing.T) {
	var b [20]byte
	for i := range b {
		b[i] = byte(255 - i)
	}
	addr := FromBytes(TypeP2SH, b)
	parsed, err := FromCashAddr(addr.CashAddr())
	require.Nil(t, err)
	require.Equal(t, b, parsed.Bytes())
	require.Equal(t, TypeP2SH, parsed.AddrType())
}

func TestCashAddrWithoutPrefix(t *testing.T) {
	var b [20]byte
	addr := FromBytes(TypeP2PKH, b)
	withoutPrefix := addr.CashAddr()[len("bitcoincash:"):]
	parsed, err := FromCashAddr(withoutPrefix)
	require.Nil(t, err)
	require.Equal(t, b, parsed.Bytes())
}

func TestCashAddrBadChecksum(t *testing.T) {
	var b [20]byte
	addr := FromBytes(TypeP2PKH, b)
	s := addr.CashAddr()
	mutated := s[:len(s)-1] + flipChar(s[len(s)-1])
	_, err := FromCashAddr(mutated)
	require.NotNil(t, err)
	require.True(t, ErrInvalidChecksum.Is(err))
}

func flipChar(c byte) string {
	if c == 'q' {
		return "p"
	}
	return "q"
}

func TestFromSliceWrongLength(t *testing.T) {
	_, err := FromSlice(TypeP2PKH, make([]byte, 19))
	require.NotNil(t, err)
	require.True(t, ErrInvalidLength.Is(err))
}

func TestFromSerializedPubKey(t *testing.T) {
	pubKey := make([]byte, 33)
	pubKey[0] = 0x02
	addr := FromSerializedPubKey("bitcoincash", TypeP2PKH, pubKey)
	require.Equal(t, TypeP2PKH, addr.AddrType())
	require.NotEmpty(t, addr.CashAddr())
}
