// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txbuilder assembles an unsigned transaction from typed
// Outputs, computes BIP-143-style sighash pre-images for them, and
// turns caller-supplied signatures into a final wire.Tx.
package txbuilder

import (
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/wire"
)

// Output is the capability every spendable or creatable output
// implements: its own value and locking script, the script used for
// sighash purposes (normally identical to Script, except for P2SH where
// it's the redeem script), and how to build the unlocking script once a
// signature and public key are available.
type Output interface {
	Value() uint64
	Script() script.Script
	ScriptCode() script.Script
	SigScript(serializedSig, serializedPubKey []byte, preImage *PreImage, outputs []wire.TxOutput) script.Script
}

// ToTxOutput converts an Output into the wire.TxOutput it would create.
func ToTxOutput(o Output) wire.TxOutput {
	return wire.TxOutput{
		Value:  o.Value(),
		Script: o.Script(),
	}
}
