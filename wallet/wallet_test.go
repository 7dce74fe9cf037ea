package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/address"
)

func testCashAddr() string {
	var b [20]byte
	for i := range b {
		b[i] = byte(i + 1)
	}
	return address.FromBytes(address.TypeP2PKH, b).CashAddr()
}

func TestFromCashAddr(t *testing.T) {
	w, err := FromCashAddr(testCashAddr())
	require.Nil(t, err)
	require.Equal(t, uint64(DustAmount), w.DustAmount())
}

func TestInitTxBuildsInputs(t *testing.T) {
	w, err := FromCashAddr(testCashAddr())
	require.Nil(t, err)
	tx, err := w.InitTx([]UtxoEntry{
		{TxIDHex: "00112233445566778899aabbccddeeff0011223344556677889900aabbccdd", Vout: 0, Amount: 10000},
	})
	require.Nil(t, err)
	require.Len(t, tx.Inputs(), 1)
}

func TestSendToAddressAddsChange(t *testing.T) {
	w, err := FromCashAddr(testCashAddr())
	require.Nil(t, err)
	destAddr, err := address.FromCashAddr(testCashAddr())
	require.Nil(t, err)

	tx, shortfall, err := w.SendToAddress(destAddr, 5000, []UtxoEntry{
		{TxIDHex: "00112233445566778899aabbccddeeff0011223344556677889900aabbccdd", Vout: 0, Amount: 100000},
	})
	require.Nil(t, err)
	require.Equal(t, uint64(0), shortfall)
	require.Equal(t, 2, len(tx.Outputs()))
}

func TestSendToAddressShortfall(t *testing.T) {
	w, err := FromCashAddr(testCashAddr())
	require.Nil(t, err)
	destAddr, err := address.FromCashAddr(testCashAddr())
	require.Nil(t, err)

	_, shortfall, err := w.SendToAddress(destAddr, 5000, []UtxoEntry{
		{TxIDHex: "00112233445566778899aabbccddeeff0011223344556677889900aabbccdd", Vout: 0, Amount: 100},
	})
	require.Nil(t, err)
	require.Greater(t, shortfall, uint64(0))
}
