package tradeoffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

func testAddress(seed byte) address.Address {
	var b [20]byte
	for i := range b {
		b[i] = seed + byte(i)
	}
	return address.FromBytes(address.TypeP2PKH, b)
}

func sampleOffer() *AdvancedTradeOffer {
	return &AdvancedTradeOffer{
		TradeValue:      1000,
		LokadID:         []byte("SPL0"),
		Version:         1,
		Power:           0,
		TokenID:         [32]byte{1, 2, 3},
		TokenType:       1,
		SellAmountToken: 1_000_000,
		Price:           500,
		DustAmount:      546,
		Address:         testAddress(1),
	}
}

func TestLockingScriptBuildsWithoutFee(t *testing.T) {
	o := sampleOffer()
	s := o.Script()
	require.NotEmpty(t, s.ToVec())
	require.Equal(t, o.Script().ToVec(), s.ToVec())
}

func TestLockingScriptBuildsWithFee(t *testing.T) {
	o := sampleOffer()
	feeAddr := testAddress(9)
	divisor := uint64(20)
	o.FeeAddress = &feeAddr
	o.FeeDivisor = &divisor
	require.NotPanics(t, func() { o.Script() })
}

func TestMismatchedFeeConfigPanics(t *testing.T) {
	o := sampleOffer()
	feeAddr := testAddress(9)
	o.FeeAddress = &feeAddr
	// FeeDivisor left nil: mismatched config must be rejected.
	require.Panics(t, func() { o.Script() })
}

func TestCancelSigScript(t *testing.T) {
	o := sampleOffer()
	o.SpendParams = &SpendParams{Kind: KindCancel}
	s := o.SigScript([]byte{0x30, 0x01, 0x41}, []byte{0x02, 0x03}, nil, nil)
	require.Equal(t, 3, len(s.Ops()))
}

func TestAcceptFullySigScriptRebuildsPreimage(t *testing.T) {
	o := sampleOffer()
	o.SpendParams = &SpendParams{Kind: KindAcceptFully}
	preImage := txbuilder.EmptyPreImage(o.ScriptCode())
	outs := []wire.TxOutput{{Value: 1}, {Value: 2}, {Value: 3}}
	s := o.SigScript([]byte{0x30, 0x01, 0x41}, []byte{0x02, 0x03}, &preImage, outs)
	require.Equal(t, 14, len(s.Ops()))
}
