package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/opcode"
)

func TestRoundTripSimple(t *testing.T) {
	s := New(
		Code(opcode.OP_DUP),
		Code(opcode.OP_HASH160),
		Push(make([]byte, 20)),
		Code(opcode.OP_EQUALVERIFY),
		Code(opcode.OP_CHECKSIG),
	)
	enc := s.ToVec()
	parsed, err := Parse(enc)
	require.Nil(t, err)
	require.Equal(t, enc, parsed.ToVec())
	require.Equal(t, 5, len(parsed.Ops()))
}

func TestSmallIntPush(t *testing.T) {
	s := New(Push([]byte{5}))
	enc := s.ToVec()
	require.Equal(t, []byte{0x55}, enc)
}

func TestEmptyPushMinimal(t *testing.T) {
	s := New(Push(nil))
	require.Equal(t, []byte{byte(opcode.OP_0)}, s.ToVec())
}

func TestEmptyPushNonMinimal(t *testing.T) {
	s := NewNonMinimalPush(Push(nil))
	require.Equal(t, []byte{byte(opcode.OP_PUSHDATA1), 0x00}, s.ToVec())
}

func TestToVecSigStripsCodeSeparator(t *testing.T) {
	s := New(
		Push([]byte{1, 2, 3}),
		Code(opcode.OP_CODESEPARATOR),
		Code(opcode.OP_CHECKSIG),
	)
	sig := s.ToVecSig()
	parsed, err := Parse(s.ToVec())
	require.Nil(t, err)
	full := parsed.ToVec()
	require.NotEqual(t, full, sig)
	require.Equal(t, []byte{byte(opcode.OP_CHECKSIG)}, sig)
}

func TestParseTruncatedPush(t *testing.T) {
	_, err := Parse([]byte{0x02, 0x01})
	require.NotNil(t, err)
	require.True(t, ErrTruncatedPush.Is(err))
}

func TestParsePreservesSerializedForm(t *testing.T) {
	// A non-minimal but otherwise valid encoding: OP_PUSHDATA1 of a single
	// byte that could have been encoded as a direct 1-byte push.
	data := []byte{byte(opcode.OP_PUSHDATA1), 0x01, 0x05}
	parsed, err := Parse(data)
	require.Nil(t, err)
	require.Equal(t, data, parsed.ToVec())
}
