// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package outputs

import (
	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

// P2PKHDropNOutput is a plain P2PKH check followed by DropNumber
// OP_NIPs, so that a spender can push extra data items ahead of the
// signature and public key and have the script discard them once the
// signature check succeeds.
type P2PKHDropNOutput struct {
	Amount     uint64
	Address    address.Address
	DropNumber int
	// PushData holds the extra items a spend must push, one per entry,
	// exactly DropNumber long. Required by SigScript.
	PushData [][]byte
}

func (o P2PKHDropNOutput) Value() uint64 { return o.Amount }

func (o P2PKHDropNOutput) Script() script.Script {
	b := o.Address.Bytes()
	ops := []script.Op{
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_HASH160),
		script.Push(b[:]),
		script.Code(opcode.OP_EQUALVERIFY),
		script.Code(opcode.OP_CHECKSIG),
	}
	for i := 0; i < o.DropNumber; i++ {
		ops = append(ops, script.Code(opcode.OP_NIP))
	}
	return script.New(ops...)
}

func (o P2PKHDropNOutput) ScriptCode() script.Script { return o.Script() }

func (o P2PKHDropNOutput) SigScript(serializedSig, serializedPubKey []byte, _ *txbuilder.PreImage, _ []wire.TxOutput) script.Script {
	if len(o.PushData) != o.DropNumber {
		panic("push_data must have exactly DropNumber entries")
	}
	ops := make([]script.Op, 0, len(o.PushData)+2)
	for _, p := range o.PushData {
		ops = append(ops, script.Push(p))
	}
	ops = append(ops, script.Push(serializedSig), script.Push(serializedPubKey))
	return script.New(ops...)
}
