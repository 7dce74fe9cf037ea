package ascendingnonce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

func samplePubKey() []byte {
	pub := make([]byte, 33)
	pub[0] = 0x02
	pub[1] = 0x01
	return pub
}

func sampleCovenant() *P2AscendingNonce {
	return &P2AscendingNonce{
		LokadID:   []byte("NONC"),
		OldValue:  10000,
		OwnerPK:   samplePubKey(),
		OldNonce:  5,
		DustLimit: 546,
	}
}

func TestLockingScriptBuilds(t *testing.T) {
	n := sampleCovenant()
	s := n.Script()
	require.NotEmpty(t, s.ToVec())
}

func TestP2PKSigScript(t *testing.T) {
	n := sampleCovenant()
	n.SpendParams = &SpendParams{Kind: KindP2PK}
	s := n.SigScript([]byte{0x30, 0x01, 0x41}, nil, nil, nil)
	require.Equal(t, 2, len(s.Ops()))
}

func TestNonceRedeemSigScript(t *testing.T) {
	n := sampleCovenant()
	n.SpendParams = &SpendParams{
		Kind:          KindNonceRedeem,
		PaymentAmount: 1000,
		NewNonce:      3,
		OwnerSig:      []byte{0xaa},
		IsTerminal:    false,
	}
	preImage := txbuilder.EmptyPreImage(n.ScriptCode())
	outs := []wire.TxOutput{{Value: 1}, {Value: 2}}
	s := n.SigScript([]byte{0x30, 0x01, 0x41}, samplePubKey(), &preImage, outs)
	require.Equal(t, 13, len(s.Ops()))
}

func TestNonceRefillSigScript(t *testing.T) {
	n := sampleCovenant()
	n.SpendParams = &SpendParams{Kind: KindNonceRefill, PaymentAmount: 2000}
	preImage := txbuilder.EmptyPreImage(n.ScriptCode())
	outs := []wire.TxOutput{{Value: 1}, {Value: 2}}
	s := n.SigScript([]byte{0x30, 0x01, 0x41}, samplePubKey(), &preImage, outs)
	require.Equal(t, 13, len(s.Ops()))
}
