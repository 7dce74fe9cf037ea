// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package outputs implements the txbuilder.Output variants that aren't
// covenants: plain P2PKH, P2SH wrapping any other Output, OP_RETURN data
// carriers (including the two SLP payload shapes), and the
// drop-N-extra-pushes P2PKH variant.
package outputs

import (
	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/hash"
	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

var Err = er.NewErrorType("outputs.Err")

var ErrUnspendable = Err.Code("ErrUnspendable")

// P2PKHOutput pays a single public-key hash.
type P2PKHOutput struct {
	Amount  uint64
	Address address.Address
}

func (o P2PKHOutput) scriptOps() script.Script {
	b := o.Address.Bytes()
	return script.New(
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_HASH160),
		script.Push(b[:]),
		script.Code(opcode.OP_EQUALVERIFY),
		script.Code(opcode.OP_CHECKSIG),
	)
}

func (o P2PKHOutput) Value() uint64 { return o.Amount }

func (o P2PKHOutput) Script() script.Script     { return o.scriptOps() }
func (o P2PKHOutput) ScriptCode() script.Script { return o.scriptOps() }

func (o P2PKHOutput) SigScript(serializedSig, serializedPubKey []byte, _ *txbuilder.PreImage, _ []wire.TxOutput) script.Script {
	return script.New(script.Push(serializedSig), script.Push(serializedPubKey))
}

// P2SHOutput wraps any other Output behind a pay-to-script-hash locking
// script; spending it requires pushing the wrapped output's serialized
// script after whatever the wrapped output's own unlocking data is.
type P2SHOutput struct {
	Inner txbuilder.Output
}

func (o P2SHOutput) Value() uint64 { return o.Inner.Value() }

func (o P2SHOutput) Script() script.Script {
	h := hash.Hash160(o.Inner.Script().ToVec())
	return script.New(
		script.Code(opcode.OP_HASH160),
		script.Push(h),
		script.Code(opcode.OP_EQUAL),
	)
}

func (o P2SHOutput) ScriptCode() script.Script {
	return o.Inner.Script()
}

func (o P2SHOutput) SigScript(serializedSig, serializedPubKey []byte, preImage *txbuilder.PreImage, outputs []wire.TxOutput) script.Script {
	s := o.Inner.SigScript(serializedSig, serializedPubKey, preImage, outputs)
	innerScript := o.Inner.Script()
	s.AddOp(script.Push(innerScript.ToVec()))
	return s
}

// OpReturnOutput carries arbitrary pushed data after OP_RETURN. It is
// zero-value and permanently unspendable; calling ScriptCode or
// SigScript on it is a programmer error.
type OpReturnOutput struct {
	Pushes        [][]byte
	IsMinimalPush bool
}

func (o OpReturnOutput) Value() uint64 { return 0 }

func (o OpReturnOutput) Script() script.Script {
	ops := make([]script.Op, 0, len(o.Pushes)+1)
	ops = append(ops, script.Code(opcode.OP_RETURN))
	for _, p := range o.Pushes {
		ops = append(ops, script.Push(p))
	}
	if o.IsMinimalPush {
		return script.New(ops...)
	}
	return script.NewNonMinimalPush(ops...)
}

func (o OpReturnOutput) ScriptCode() script.Script {
	panic("tried signing an OP_RETURN output, which is impossible to spend")
}

func (o OpReturnOutput) SigScript(_, _ []byte, _ *txbuilder.PreImage, _ []wire.TxOutput) script.Script {
	panic("tried signing an OP_RETURN output, which is impossible to spend")
}

// SLPSend builds the OP_RETURN payload for an SLP SEND message: a
// transfer of existing token balance among this transaction's outputs.
type SLPSend struct {
	TokenType        uint8
	TokenID          [32]byte
	OutputQuantities []uint64
}

// IntoOutput renders the SEND message as an OpReturnOutput, per the SLP
// spec:
//
//	OP_RETURN
//	<lokad id: 'SLP\0'> (4 bytes)
//	<token_type> (1 byte)
//	<transaction_type: 'SEND'> (4 bytes)
//	<token_id> (32 bytes)
//	<output_quantity> (8 bytes) ... up to 19 of them
func (s SLPSend) IntoOutput() OpReturnOutput {
	reversedID := make([]byte, 32)
	for i, b := range s.TokenID {
		reversedID[31-i] = b
	}
	pushes := [][]byte{
		[]byte("SLP\x00"),
		{s.TokenType},
		[]byte("SEND"),
		reversedID,
	}
	for _, q := range s.OutputQuantities {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[7-i] = byte(q >> (8 * uint(i)))
		}
		pushes = append(pushes, b[:])
	}
	return OpReturnOutput{IsMinimalPush: false, Pushes: pushes}
}

// SLPGenesis builds the OP_RETURN payload that creates a new SLP token.
type SLPGenesis struct {
	TokenType               uint8
	TokenTicker             []byte
	TokenName               []byte
	TokenDocumentURL        []byte
	TokenDocumentHash       []byte
	Decimals                uint8
	MintBatonVout           *uint8
	InitialTokenMintQuantity uint64
}

// IntoOutput renders the GENESIS message as an OpReturnOutput.
func (s SLPGenesis) IntoOutput() OpReturnOutput {
	var mintBatonVout []byte
	if s.MintBatonVout != nil {
		mintBatonVout = []byte{*s.MintBatonVout}
	}
	var quantity [8]byte
	for i := 0; i < 8; i++ {
		quantity[7-i] = byte(s.InitialTokenMintQuantity >> (8 * uint(i)))
	}
	pushes := [][]byte{
		[]byte("SLP\x00"),
		{s.TokenType},
		[]byte("GENESIS"),
		s.TokenTicker,
		s.TokenName,
		s.TokenDocumentURL,
		s.TokenDocumentHash,
		{s.Decimals},
		mintBatonVout,
		quantity[:],
	}
	return OpReturnOutput{IsMinimalPush: false, Pushes: pushes}
}
