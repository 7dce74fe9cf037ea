package outputs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/opcode"
)

func testAddress() address.Address {
	var b [20]byte
	for i := range b {
		b[i] = byte(i + 1)
	}
	return address.FromBytes(address.TypeP2PKH, b)
}

func TestP2PKHOutputScript(t *testing.T) {
	addr := testAddress()
	o := P2PKHOutput{Amount: 1000, Address: addr}
	require.Equal(t, uint64(1000), o.Value())
	ops := o.Script().Ops()
	require.Equal(t, 5, len(ops))
	require.Equal(t, opcode.OP_CHECKSIG, ops[4].Opcode())
}

func TestP2PKHSigScript(t *testing.T) {
	o := P2PKHOutput{Amount: 1000, Address: testAddress()}
	sig := []byte{0xde, 0xad}
	pub := []byte{0xbe, 0xef}
	s := o.SigScript(sig, pub, nil, nil)
	ops := s.Ops()
	require.Equal(t, 2, len(ops))
	require.Equal(t, sig, ops[0].PushData())
	require.Equal(t, pub, ops[1].PushData())
}

func TestP2SHOutputWrapsInner(t *testing.T) {
	inner := P2PKHOutput{Amount: 2000, Address: testAddress()}
	o := P2SHOutput{Inner: inner}
	require.Equal(t, uint64(2000), o.Value())
	ops := o.Script().Ops()
	require.Equal(t, 3, len(ops))
	require.Equal(t, opcode.OP_HASH160, ops[0].Opcode())
	require.Equal(t, opcode.OP_EQUAL, ops[2].Opcode())
}

func TestOpReturnOutputUnspendable(t *testing.T) {
	o := OpReturnOutput{Pushes: [][]byte{[]byte("hi")}, IsMinimalPush: true}
	require.Equal(t, uint64(0), o.Value())
	require.Panics(t, func() { o.ScriptCode() })
	require.Panics(t, func() { o.SigScript(nil, nil, nil, nil) })
}

func TestSLPSendPayload(t *testing.T) {
	var tokenID [32]byte
	tokenID[0] = 0xaa
	send := SLPSend{TokenType: 1, TokenID: tokenID, OutputQuantities: []uint64{100, 200}}
	out := send.IntoOutput()
	require.Equal(t, 6, len(out.Pushes))
	require.Equal(t, []byte("SLP\x00"), out.Pushes[0])
	require.Equal(t, []byte("SEND"), out.Pushes[2])
	// token id is reversed relative to its big-endian display form
	require.Equal(t, byte(0xaa), out.Pushes[3][31])
}
