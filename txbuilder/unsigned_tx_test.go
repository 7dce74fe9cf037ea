package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/wire"
)

func testAddress() address.Address {
	var b [20]byte
	for i := range b {
		b[i] = byte(i + 1)
	}
	return address.FromBytes(address.TypeP2PKH, b)
}

// plainP2PKH is a minimal Output used only within this test file, so
// txbuilder's tests don't need to import the outputs package (which
// itself imports txbuilder).
type plainP2PKH struct {
	amount uint64
	addr   address.Address
}

func (o plainP2PKH) Value() uint64 { return o.amount }

func (o plainP2PKH) Script() script.Script {
	b := o.addr.Bytes()
	return script.New(
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_HASH160),
		script.Push(b[:]),
		script.Code(opcode.OP_EQUALVERIFY),
		script.Code(opcode.OP_CHECKSIG),
	)
}

func (o plainP2PKH) ScriptCode() script.Script { return o.Script() }

func (o plainP2PKH) SigScript(sig, pubKey []byte, _ *PreImage, _ []wire.TxOutput) script.Script {
	return script.New(script.Push(sig), script.Push(pubKey))
}

func sampleTx() *UnsignedTx {
	tx := NewSimple()
	tx.AddInput(UnsignedInput{
		Output:   plainP2PKH{amount: 100000, addr: testAddress()},
		Outpoint: wire.TxOutpoint{Vout: 0},
		Sequence: 0xffffffff,
	})
	tx.AddOutput(wire.TxOutput{Value: 90000, Script: plainP2PKH{amount: 90000, addr: testAddress()}.Script()})
	return tx
}

func TestPreImagesSharedDigests(t *testing.T) {
	tx := sampleTx()
	tx.AddInput(UnsignedInput{
		Output:   plainP2PKH{amount: 5000, addr: testAddress()},
		Outpoint: wire.TxOutpoint{Vout: 1},
		Sequence: 0xffffffff,
	})
	preImages, err := tx.PreImages(0x41)
	require.Nil(t, err)
	require.Len(t, preImages, 2)
	require.Equal(t, preImages[0].HashPrevouts, preImages[1].HashPrevouts)
	require.Equal(t, preImages[0].HashOutputs, preImages[1].HashOutputs)
}

func TestEstimateSizePositive(t *testing.T) {
	tx := sampleTx()
	size, err := tx.EstimateSize()
	require.Nil(t, err)
	require.Greater(t, size, 0)
}

func TestAddLeftoverOutputSuccess(t *testing.T) {
	tx := sampleTx()
	tx.AddInput(UnsignedInput{
		Output:   plainP2PKH{amount: 900000, addr: testAddress()},
		Outpoint: wire.TxOutpoint{Vout: 1},
		Sequence: 0xffffffff,
	})
	idx, shortfall, err := tx.AddLeftoverOutput(testAddress(), 1000, 546)
	require.Nil(t, err)
	require.Equal(t, uint64(0), shortfall)
	require.NotNil(t, idx)
	require.Equal(t, 2, len(tx.Outputs()))
}

func TestAddLeftoverOutputBelowDust(t *testing.T) {
	tx := NewSimple()
	tx.AddInput(UnsignedInput{
		Output:   plainP2PKH{amount: 90300, addr: testAddress()},
		Outpoint: wire.TxOutpoint{Vout: 0},
		Sequence: 0xffffffff,
	})
	tx.AddOutput(wire.TxOutput{Value: 90000, Script: plainP2PKH{amount: 90000, addr: testAddress()}.Script()})
	idx, shortfall, err := tx.AddLeftoverOutput(testAddress(), 1000, 546)
	require.Nil(t, err)
	require.Equal(t, uint64(0), shortfall)
	require.Nil(t, idx)
	require.Equal(t, 1, len(tx.Outputs()))
}

func TestAddLeftoverOutputShortfall(t *testing.T) {
	tx := NewSimple()
	tx.AddInput(UnsignedInput{
		Output:   plainP2PKH{amount: 100, addr: testAddress()},
		Outpoint: wire.TxOutpoint{Vout: 0},
		Sequence: 0xffffffff,
	})
	tx.AddOutput(wire.TxOutput{Value: 90000, Script: plainP2PKH{amount: 90000, addr: testAddress()}.Script()})
	idx, shortfall, err := tx.AddLeftoverOutput(testAddress(), 1000, 546)
	require.Nil(t, err)
	require.Nil(t, idx)
	require.Greater(t, shortfall, uint64(0))
}

func TestSignProducesFinalTx(t *testing.T) {
	tx := sampleTx()
	finalTx, err := tx.Sign([][]byte{{0x30, 0x01}}, [][]byte{{0x02, 0x03}})
	require.Nil(t, err)
	require.Equal(t, 1, len(finalTx.Inputs))
	ops := finalTx.Inputs[0].Script.Ops()
	require.Equal(t, 2, len(ops))
	require.Equal(t, byte(0x41), ops[0].PushData()[len(ops[0].PushData())-1])
}

func TestSignInputCountMismatch(t *testing.T) {
	tx := sampleTx()
	_, err := tx.Sign([][]byte{}, [][]byte{})
	require.NotNil(t, err)
	require.True(t, ErrInputCountMismatch.Is(err))
}
