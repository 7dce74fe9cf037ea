package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/script"
)

func TestTxHexHashRoundTrip(t *testing.T) {
	hexID := "00112233445566778899aabbccddeeff0011223344556677889900aabbccdd"
	h, err := TxHexToHash(hexID)
	require.Nil(t, err)
	require.Equal(t, hexID, TxHashToHex(h))
}

func TestTxHexToHashInvalidLength(t *testing.T) {
	_, err := TxHexToHash("aabb")
	require.NotNil(t, err)
	require.True(t, ErrInvalidTxHash.Is(err))
}

func TestTxRoundTrip(t *testing.T) {
	s := script.New(
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_HASH160),
		script.Push(make([]byte, 20)),
		script.Code(opcode.OP_EQUALVERIFY),
		script.Code(opcode.OP_CHECKSIG),
	)
	tx := Tx{
		Version: 2,
		Inputs: []TxInput{
			{Outpoint: TxOutpoint{Vout: 1}, Script: script.Empty(), Sequence: 0xffffffff},
		},
		Outputs: []TxOutput{
			{Value: 5000, Script: s},
		},
		LockTime: 0,
	}
	enc := tx.ToVec()
	parsed, err := ReadTx(bytes.NewReader(enc))
	require.Nil(t, err)
	require.Equal(t, tx.Version, parsed.Version)
	require.Equal(t, len(tx.Inputs), len(parsed.Inputs))
	require.Equal(t, len(tx.Outputs), len(parsed.Outputs))
	require.Equal(t, tx.Outputs[0].Value, parsed.Outputs[0].Value)
	require.Equal(t, s.ToVec(), parsed.Outputs[0].Script.ToVec())
	require.Equal(t, enc, parsed.ToVec())
}

func TestTxHash(t *testing.T) {
	tx := Tx{Version: 1, LockTime: 0}
	h1 := tx.Hash()
	h2 := tx.Hash()
	require.Equal(t, h1, h2)
}
