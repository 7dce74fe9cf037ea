// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ascendingnonce implements the P2 Ascending Nonce covenant: an
// output that can only be spent into a successor carrying a strictly
// greater nonce (Redeem), or into an identical nonce with a different
// payment amount (Refill), until a terminal spend drops the covenant
// and pays out as a plain signature check (P2PK).
package ascendingnonce

import (
	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/serialize"
	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

var Err = er.NewErrorType("ascendingnonce.Err")

var ErrMissingSpendParams = Err.Code("ErrMissingSpendParams")

// nonceSize is len("PUSH <oldNonce>"): a 1-byte push opcode plus the
// 8-byte little-endian sign-magnitude nonce encoding.
const nonceSize = 9

// pkSize is len("PUSH <pubkey>"): a 1-byte push opcode plus a 33-byte
// compressed public key.
const pkSize = 34

// SpendKind selects how a spend of this covenant is exercised.
type SpendKind int

const (
	KindNonceRedeem SpendKind = iota
	KindNonceRefill
	KindP2PK
)

// SpendParams carries the parameters for whichever SpendKind is chosen.
// PaymentAmount applies to Redeem and Refill; NewNonce, OwnerSig and
// IsTerminal apply only to Redeem (a Refill always uses OldNonce, no
// owner signature, and a non-terminal spend).
type SpendParams struct {
	Kind          SpendKind
	PaymentAmount int64
	NewNonce      int64
	OwnerSig      []byte
	IsTerminal    bool
}

// P2AscendingNonce is a covenant output carrying a monotonic counter:
// every redemption must either strictly decrease OldNonce (a "redeem")
// or leave it unchanged while paying down OldValue (a "refill"), until
// a terminal redemption drops the covenant entirely.
type P2AscendingNonce struct {
	LokadID     []byte
	OldValue    uint64
	OwnerPK     []byte
	OldNonce    int64
	DustLimit   int64
	SpendParams *SpendParams
}

func nonceFieldBytes(oldNonce int64) []byte {
	signByte := byte(0)
	abs := oldNonce
	if abs < 0 {
		signByte = 0x80
		abs = -abs
	}
	v := uint32(abs)
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		0, 0, 0, signByte,
	}
}

// ops builds the full locking script. The top-level OP_ROT + OP_IF
// splits into the covenant branch (nonce redeem/refill) and the
// terminal P2PK branch once the covenant has been dropped.
func (n *P2AscendingNonce) ops() []script.Op {
	ops := []script.Op{
		script.Push(nonceFieldBytes(n.OldNonce)),
		script.Push(n.OwnerPK),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_IF),
	}

	// case: covenant still active (redeem or refill)
	ops = append(ops,
		script.Code(opcode.OP_TOALTSTACK),
		script.Code(opcode.OP_BIN2NUM),
		script.Code(opcode.OP_OVER),
		script.Push(serialize.EncodeInt(6)),
		script.Code(opcode.OP_PICK),
		script.Push(nil),
		script.Code(opcode.OP_GREATERTHANOREQUAL),
		script.Code(opcode.OP_IF),
	)
	// case: redeem requires new_nonce < old_nonce
	ops = append(ops, script.Code(opcode.OP_LESSTHAN))
	ops = append(ops, script.Code(opcode.OP_ELSE))
	// case: refill requires new_nonce == old_nonce
	ops = append(ops, script.Code(opcode.OP_EQUAL))
	ops = append(ops, script.Code(opcode.OP_ENDIF))

	ops = append(ops,
		script.Code(opcode.OP_VERIFY),
		script.Push([]byte{8}),
		script.Code(opcode.OP_NUM2BIN),
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_TOALTSTACK),
		script.Push([]byte{0x08}),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_TUCK),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_HASH160),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_TOALTSTACK),
		script.Code(opcode.OP_TOALTSTACK),
		script.Code(opcode.OP_2DUP),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_SUB),
		script.Code(opcode.OP_DUP),
		script.Push(serialize.EncodeInt(n.DustLimit)),
		script.Code(opcode.OP_GREATERTHANOREQUAL),
		script.Code(opcode.OP_IF),
	)
	// case: remaining value stays above dust, keep a covenant successor
	ops = append(ops,
		script.Push([]byte{8}),
		script.Code(opcode.OP_NUM2BIN),
		script.Push([]byte{23, byte(opcode.OP_HASH160), 20}),
		script.Code(opcode.OP_FROMALTSTACK),
		script.Push([]byte{byte(opcode.OP_EQUAL)}),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
	)
	ops = append(ops, script.Code(opcode.OP_ELSE))
	// case: remaining value below dust, no successor output
	ops = append(ops,
		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_2DROP),
		script.Push(nil),
	)
	ops = append(ops, script.Code(opcode.OP_ENDIF))

	ops = append(ops,
		script.Push(serialize.EncodeInt(7)),
		script.Code(opcode.OP_ROLL),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_HASH256),
		script.Code(opcode.OP_SWAP),
		script.Push([]byte{8}),
		script.Code(opcode.OP_NUM2BIN),
		script.Push(serialize.EncodeInt(4)),
		script.Code(opcode.OP_ROLL),
		script.Code(opcode.OP_SIZE),
		script.Push(serialize.EncodeInt(4+32+32+(32+4)+1+9)),
		script.Code(opcode.OP_NUMEQUALVERIFY),
		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Push([]byte{0xff, 0xff, 0xff, 0xff}),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_SIZE),
		script.Push([]byte{8}),
		script.Code(opcode.OP_NUMEQUALVERIFY),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SHA256),
		script.Code(opcode.OP_2SWAP),
		script.Code(opcode.OP_OVER),
		script.Code(opcode.OP_TOALTSTACK),
		script.Code(opcode.OP_2DUP),
		script.Push([]byte{0x41}),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CHECKSIGVERIFY),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_CHECKDATASIGVERIFY),
		script.Code(opcode.OP_DUP),
		script.Push(nil),
		script.Code(opcode.OP_GREATERTHANOREQUAL),
		script.Code(opcode.OP_IF),
	)
	// case: redeeming, authenticate against owner's data signature too
	ops = append(ops,
		script.Push([]byte{8}),
		script.Code(opcode.OP_NUM2BIN),
		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_HASH160),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_CHECKDATASIGVERIFY),
		script.Push(n.LokadID),
		script.Code(opcode.OP_EQUAL),
	)
	ops = append(ops, script.Code(opcode.OP_ELSE))
	// case: refilling, owner authentication isn't required
	ops = append(ops, script.Code(opcode.OP_2DROP))
	ops = append(ops, script.Code(opcode.OP_ENDIF))

	ops = append(ops, script.Code(opcode.OP_ELSE))
	// case: covenant dropped, plain pay-to-public-key
	ops = append(ops,
		script.Code(opcode.OP_NIP),
		script.Code(opcode.OP_CHECKSIG),
	)
	ops = append(ops, script.Code(opcode.OP_ENDIF))

	return ops
}

// Value satisfies txbuilder.Output.
func (n *P2AscendingNonce) Value() uint64 { return n.OldValue }

func (n *P2AscendingNonce) Script() script.Script {
	return script.New(n.ops()...)
}

func (n *P2AscendingNonce) ScriptCode() script.Script {
	return n.Script()
}

type byteSink struct {
	b []byte
}

func (s *byteSink) Write(p []byte) (int, error) {
	s.b = append(s.b, p...)
	return len(p), nil
}

// SigScript builds the unlocking script for whichever SpendParams this
// covenant output carries.
func (n *P2AscendingNonce) SigScript(serializedSig, serializedPubKey []byte, preImage *txbuilder.PreImage, txOutputs []wire.TxOutput) script.Script {
	if n.SpendParams == nil {
		panic("must provide spend params")
	}
	if n.SpendParams.Kind == KindP2PK {
		return script.New(
			script.Push(serializedSig),
			script.Push(serialize.EncodeInt(0)),
		)
	}

	paymentAmount := n.SpendParams.PaymentAmount
	newNonce := n.SpendParams.NewNonce
	ownerSig := n.SpendParams.OwnerSig
	isTerminal := n.SpendParams.IsTerminal
	if n.SpendParams.Kind == KindNonceRefill {
		newNonce = n.OldNonce
		ownerSig = nil
		isTerminal = false
	}

	sig := serializedSig[:len(serializedSig)-1]
	scriptCode := n.ScriptCode().ToVecSig()

	outputsPostStart := 1
	if isTerminal {
		outputsPostStart = 0
	}
	outputsPost := &byteSink{}
	for _, out := range txOutputs[outputsPostStart:] {
		_ = out.WriteTo(outputsPost)
	}

	prefixPart, _ := preImage.WriteToStreamFlags(txbuilder.PreImageWriteFlags{
		Version: true, HashPrevouts: true, HashSequence: true, Outpoint: true,
	})
	prefixPart = append(prefixPart, serialize.VarIntToVec(uint64(len(scriptCode)))...)
	prefixPart = append(prefixPart, scriptCode[:nonceSize]...)

	suffixPart, _ := preImage.WriteToStreamFlags(txbuilder.PreImageWriteFlags{
		LockTime: true, SighashType: true,
	})

	return script.New(
		script.Push(n.LokadID),
		script.Push(ownerSig),
		script.Push(outputsPost.b),
		script.Push(serializedPubKey),
		script.Push(sig),
		script.Push(prefixPart),
		script.Push(suffixPart),
		script.Push(serialize.EncodeInt(paymentAmount)),
		script.Push(serialize.EncodeInt(int64(n.OldValue))),
		script.Push(scriptCode[nonceSize:nonceSize+pkSize]),
		script.Push(scriptCode[nonceSize+pkSize:]),
		script.Push(serialize.EncodeInt(newNonce)),
		script.Push([]byte{1}),
	)
}
