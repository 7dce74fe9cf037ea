package outputs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/opcode"
)

func TestP2PKHDropNScript(t *testing.T) {
	o := P2PKHDropNOutput{Amount: 500, Address: testAddress(), DropNumber: 2}
	ops := o.Script().Ops()
	// 5 plain P2PKH ops + 2 OP_NIP
	require.Equal(t, 7, len(ops))
	require.Equal(t, opcode.OP_NIP, ops[5].Opcode())
	require.Equal(t, opcode.OP_NIP, ops[6].Opcode())
}

func TestP2PKHDropNSigScript(t *testing.T) {
	o := P2PKHDropNOutput{
		Amount: 500, Address: testAddress(), DropNumber: 2,
		PushData: [][]byte{{1}, {2}},
	}
	s := o.SigScript([]byte{0xaa}, []byte{0xbb}, nil, nil)
	ops := s.Ops()
	require.Equal(t, 4, len(ops))
	require.Equal(t, []byte{1}, ops[0].PushData())
	require.Equal(t, []byte{2}, ops[1].PushData())
}

func TestP2PKHDropNSigScriptPanicsOnMismatch(t *testing.T) {
	o := P2PKHDropNOutput{Amount: 500, Address: testAddress(), DropNumber: 2, PushData: [][]byte{{1}}}
	require.Panics(t, func() { o.SigScript(nil, nil, nil, nil) })
}
