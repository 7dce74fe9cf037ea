// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet provides the minimal plain-P2PKH transaction assembly a
// caller needs once it already has UTXOs in hand: build an UnsignedTx
// spending a known UTXO set, add a payment output, and let the builder
// insert a fee-aware change output back to the wallet's own address.
//
// Discovering UTXOs, persisting wallet state, and broadcasting the
// signed result are all out of scope; this package only assembles the
// unsigned transaction.
package wallet

import (
	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/chaincfg"
	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/outputs"
	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

// DustAmount is the minimum value, in satoshis, that a change output may
// carry before the builder drops it rather than create an output too
// small to ever be worth spending.
const DustAmount = chaincfg.DustAmount

// UtxoEntry is one spendable coin a caller already knows about: a
// transaction id in big-endian display form, the output index, and the
// coin's value.
type UtxoEntry struct {
	TxIDHex string
	Vout    uint32
	Amount  uint64
}

// Wallet assembles plain-P2PKH transactions for a single address.
type Wallet struct {
	addr     address.Address
	feePerKB uint64
}

// FromCashAddr parses a CashAddr string and returns a Wallet paying its
// change and receiving its spends at that address, using the default fee
// rate of 1000 satoshis per kilobyte.
func FromCashAddr(cashAddr string) (Wallet, er.R) {
	addr, err := address.FromCashAddr(cashAddr)
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{addr: addr, feePerKB: chaincfg.DefaultFeePerKB}, nil
}

// Address returns the wallet's own address.
func (w Wallet) Address() address.Address { return w.addr }

// InitTx builds an UnsignedTx whose inputs spend exactly the given UTXOs,
// each locked with the wallet's own P2PKH script, and no outputs yet.
func (w Wallet) InitTx(utxos []UtxoEntry) (*txbuilder.UnsignedTx, er.R) {
	tx := txbuilder.NewSimple()
	for _, utxo := range utxos {
		txHash, err := wire.TxHexToHash(utxo.TxIDHex)
		if err != nil {
			return nil, err
		}
		tx.AddInput(txbuilder.UnsignedInput{
			Output: outputs.P2PKHOutput{
				Amount:  utxo.Amount,
				Address: w.addr,
			},
			Outpoint: wire.TxOutpoint{
				TxHash: txHash,
				Vout:   utxo.Vout,
			},
			Sequence: 0xffffffff,
		})
	}
	return tx, nil
}

// SendToAddress builds an UnsignedTx spending utxos, paying amount to
// addr, and routing the remainder back to the wallet as a fee-aware
// change output. It returns the numeric shortfall if utxos don't cover
// amount plus the fee.
func (w Wallet) SendToAddress(addr address.Address, amount uint64, utxos []UtxoEntry) (*txbuilder.UnsignedTx, uint64, er.R) {
	tx, err := w.InitTx(utxos)
	if err != nil {
		return nil, 0, err
	}
	tx.AddOutput(txbuilder.ToTxOutput(outputs.P2PKHOutput{
		Amount:  amount,
		Address: addr,
	}))
	_, shortfall, err := tx.AddLeftoverOutput(w.addr, w.feePerKB, w.DustAmount())
	if err != nil {
		return nil, 0, err
	}
	if shortfall > 0 {
		return nil, shortfall, nil
	}
	return tx, 0, nil
}

// DustAmount is the minimum change-output value this wallet will create.
func (w Wallet) DustAmount() uint64 { return DustAmount }
