// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tradeoffer implements the Advanced Trade Offer covenant: a
// P2SH-style sell order that can be filled in full, filled partially
// (spawning a successor offer for the unsold remainder), or cancelled
// by the original seller.
package tradeoffer

import (
	"encoding/binary"

	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/outputs"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/serialize"
	"github.com/cashcovenants/cashtx/txbuilder"
	"github.com/cashcovenants/cashtx/wire"
)

var Err = er.NewErrorType("tradeoffer.Err")

var (
	ErrMissingSpendParams = Err.Code("ErrMissingSpendParams")
	ErrFeeConfig          = Err.Code("ErrFeeConfig")
)

// SpendParams selects how a given spend of an offer is exercised.
type SpendParams struct {
	// Kind is one of KindAcceptPartially, KindAcceptFully, KindCancel.
	Kind SpendKind
	// BuyAmount is only read when Kind == KindAcceptPartially.
	BuyAmount uint64
}

type SpendKind int

const (
	KindAcceptPartially SpendKind = iota
	KindAcceptFully
	KindCancel
)

// AdvancedTradeOffer is a sell order for a fixed amount of an SLP token,
// priced in satoshis, with an optional protocol fee skimmed off every
// fill.
type AdvancedTradeOffer struct {
	TradeValue      uint64
	LokadID         []byte
	Version         uint8
	Power           uint8
	IsInverted      bool
	TokenID         [32]byte
	TokenType       uint8
	SellAmountToken uint64
	Price           uint32
	DustAmount      uint64
	Address         address.Address
	FeeAddress      *address.Address
	FeeDivisor      *uint64
	SpendParams     *SpendParams
}

func (o *AdvancedTradeOffer) makePowerVec() []byte {
	v := []byte{o.Power}
	if o.IsInverted {
		v = append(v, 1)
	}
	return v
}

// serializeOps is the 14-op sequence the trade arm of the locking script
// uses (twice) to turn the number on top of the stack into 4 bytes with
// OP_NUM2BIN, split them byte by byte and concatenate them in reverse
// order, leaving the big-endian 4-byte form of the amount.
func serializeOps() []script.Op {
	return []script.Op{
		script.Push([]byte{0x04}),
		script.Code(opcode.OP_NUM2BIN),

		script.Push([]byte{1}),
		script.Code(opcode.OP_SPLIT),
		script.Push([]byte{1}),
		script.Code(opcode.OP_SPLIT),
		script.Push([]byte{1}),
		script.Code(opcode.OP_SPLIT),

		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
	}
}

func beU32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

func leU32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// ops builds the full locking script. See the Trade arm / Cancel arm
// split at the OP_ROT + OP_IF near the top: the rotated parameter is
// true for a trade (partial or full fill) and false for a cancel.
func (o *AdvancedTradeOffer) ops() ([]script.Op, er.R) {
	ops := []script.Op{
		script.Push(leU32(uint32(o.SellAmountToken))),
		script.Code(opcode.OP_CODESEPARATOR),
		script.Push(func() []byte { b := o.Address.Bytes(); return b[:] }()),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_IF),
		script.Code(opcode.OP_TOALTSTACK),
		script.Code(opcode.OP_BIN2NUM),
	}

	if !o.IsInverted {
		ops = append(ops,
			script.Code(opcode.OP_OVER),
			script.Code(opcode.OP_DUP),
			script.Push(serialize.EncodeInt(0)),
			script.Code(opcode.OP_GREATERTHAN),
			script.Code(opcode.OP_VERIFY),
			script.Push(serialize.EncodeInt(int64(int32(o.Price)))),
			script.Code(opcode.OP_DIV),
			script.Code(opcode.OP_TUCK),
			script.Code(opcode.OP_2DUP),
			script.Code(opcode.OP_GREATERTHANOREQUAL),
			script.Code(opcode.OP_VERIFY),
		)
	} else {
		ops = append(ops,
			script.Code(opcode.OP_2DUP),
			script.Code(opcode.OP_LESSTHANOREQUAL),
			script.Code(opcode.OP_VERIFY),
			script.Code(opcode.OP_OVER),
			script.Code(opcode.OP_DUP),
			script.Push(serialize.EncodeInt(0)),
			script.Code(opcode.OP_GREATERTHAN),
			script.Code(opcode.OP_VERIFY),
			script.Code(opcode.OP_TUCK),
		)
	}

	ops = append(ops,
		script.Code(opcode.OP_SUB),
		script.Code(opcode.OP_TUCK),
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_0NOTEQUAL),
		script.Code(opcode.OP_IF),
	)
	ops = append(ops, serializeOps()...)
	ops = append(ops,
		script.Push([]byte{0x08}),
		script.Push([]byte{0x09}),
		script.Code(opcode.OP_NUM2BIN),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_ELSE),

		script.Push([]byte{0x04}),
		script.Code(opcode.OP_NUM2BIN),

		script.Code(opcode.OP_ENDIF),
		script.Push([]byte{0x08}),
		script.Push([]byte{0x05}),
		script.Code(opcode.OP_NUM2BIN),
		script.Code(opcode.OP_CAT),
		script.Push([]byte{0x02}),
		script.Code(opcode.OP_PICK),
		script.Code(opcode.OP_0NOTEQUAL),

		script.Push(nil),
		script.Push([]byte{0x08}),
		script.Code(opcode.OP_NUM2BIN),
		script.Code(opcode.OP_SWAP),

		script.Code(opcode.OP_IF),
		script.Push(serialize.VarIntToVec(uint64(len(outputs.SLPSend{
			TokenID:          o.TokenID,
			TokenType:        o.TokenType,
			OutputQuantities: []uint64{0, 0, 0},
		}.IntoOutput().Script().ToVec())))),
		script.Code(opcode.OP_ELSE),
		script.Push(serialize.VarIntToVec(uint64(len(outputs.SLPSend{
			TokenID:          o.TokenID,
			TokenType:        o.TokenType,
			OutputQuantities: []uint64{0, 0},
		}.IntoOutput().Script().ToVec())))),
		script.Code(opcode.OP_ENDIF),
		script.Code(opcode.OP_CAT),

		script.Push(func() []byte {
			slpOutput := outputs.SLPSend{
				TokenID:   o.TokenID,
				TokenType: o.TokenType,
			}.IntoOutput()
			out := append([]byte(nil), slpOutput.Script().ToVec()...)
			out = append(out, 0x08, 0, 0, 0, 0)
			return out
		}()),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
	)
	ops = append(ops, serializeOps()...)
	ops = append(ops,
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_OVER),
		script.Code(opcode.OP_0NOTEQUAL),
		script.Code(opcode.OP_IF),

		script.Push(serialize.EncodeInt(int64(int32(o.DustAmount)))),
		script.Push([]byte{0x08}),
		script.Code(opcode.OP_NUM2BIN),

		script.Push([]byte{23, byte(opcode.OP_HASH160), 20}),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SWAP),
		script.Push([]byte{0x04}),
		script.Code(opcode.OP_NUM2BIN),
		script.Push([]byte{0x04}),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Push([]byte{byte(opcode.OP_CODESEPARATOR)}),
		script.Code(opcode.OP_CAT),
		script.Push([]byte{0x06}),
		script.Code(opcode.OP_PICK),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_HASH160),
		script.Push([]byte{byte(opcode.OP_EQUAL)}),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_ELSE),
		script.Code(opcode.OP_NIP),
		script.Code(opcode.OP_ENDIF),
		script.Code(opcode.OP_SWAP),
	)

	if o.IsInverted {
		ops = append(ops,
			script.Push(serialize.EncodeInt(int64(int32(o.Price)))),
			script.Code(opcode.OP_2DUP),
			script.Code(opcode.OP_MOD),
			script.Push(serialize.EncodeInt(0)),
			script.Code(opcode.OP_NUMEQUALVERIFY),
			script.Code(opcode.OP_DIV),
		)
	}

	var pushFeeOps []script.Op
	switch {
	case o.FeeAddress != nil && o.FeeDivisor != nil:
		ops = append(ops, script.Code(opcode.OP_TUCK))
		sendFeeOutput := outputs.P2PKHOutput{Amount: 0, Address: *o.FeeAddress}.Script().ToVec()
		sendFeeScript := serialize.VarIntToVec(uint64(len(sendFeeOutput)))
		sendFeeScript = append(sendFeeScript, sendFeeOutput...)
		pushFeeOps = []script.Op{
			script.Code(opcode.OP_ROT),
			script.Code(opcode.OP_CAT),
			script.Code(opcode.OP_SWAP),
			script.Push(serialize.EncodeInt(int64(int32(*o.FeeDivisor)))),
			script.Code(opcode.OP_DIV),
			script.Push(serialize.EncodeInt(int64(int32(o.DustAmount)))),
			script.Code(opcode.OP_MAX),
			script.Push([]byte{0x08}),
			script.Code(opcode.OP_NUM2BIN),
			script.Push(sendFeeScript),
			script.Code(opcode.OP_CAT),
			script.Code(opcode.OP_CAT),
		}
	case o.FeeAddress == nil && o.FeeDivisor == nil:
		pushFeeOps = []script.Op{
			script.Code(opcode.OP_SWAP),
			script.Code(opcode.OP_CAT),
		}
	default:
		return nil, ErrFeeConfig.New("fee_address and fee_divisor must be both set or both unset", nil)
	}

	ops = append(ops,
		script.Push([]byte{0x08}),
		script.Code(opcode.OP_NUM2BIN),
		script.Code(opcode.OP_CAT),
		script.Push(func() []byte {
			p2pkhSerialized := outputs.P2PKHOutput{Amount: 0, Address: o.Address}.Script().ToVec()
			v := serialize.VarIntToVec(uint64(len(p2pkhSerialized)))
			v = append(v, byte(opcode.OP_DUP), byte(opcode.OP_HASH160), 20)
			return v
		}()),
		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_TOALTSTACK),
		script.Code(opcode.OP_CAT),
		script.Push([]byte{byte(opcode.OP_EQUALVERIFY), byte(opcode.OP_CHECKSIG)}),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
	)
	ops = append(ops, pushFeeOps...)
	ops = append(ops,
		script.Code(opcode.OP_HASH256),
		script.Code(opcode.OP_SWAP),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_CAT),
		script.Code(opcode.OP_SHA256),
		script.Code(opcode.OP_OVER),
		script.Push([]byte{0x41}),
		script.Code(opcode.OP_CAT),
		script.Push([]byte{0x03}),
		script.Code(opcode.OP_PICK),
		script.Code(opcode.OP_CHECKSIGVERIFY),
		script.Code(opcode.OP_ROT),
		script.Code(opcode.OP_CHECKDATASIGVERIFY),

		script.Code(opcode.OP_FROMALTSTACK),
		script.Code(opcode.OP_EQUALVERIFY), // address

		script.Push(beU32(o.Price)),
		script.Code(opcode.OP_EQUALVERIFY), // price

		script.Push(o.makePowerVec()),
		script.Code(opcode.OP_EQUALVERIFY), // power (amount*256^power)

		script.Push([]byte{o.Version}),
		script.Code(opcode.OP_EQUALVERIFY), // version

		script.Push(o.LokadID),
		script.Code(opcode.OP_EQUAL),

		script.Code(opcode.OP_ELSE),

		script.Code(opcode.OP_NIP),
		script.Code(opcode.OP_OVER),
		script.Code(opcode.OP_HASH160),
		script.Code(opcode.OP_EQUALVERIFY),
		script.Code(opcode.OP_CHECKSIG),

		script.Code(opcode.OP_ENDIF),
	)
	return ops, nil
}

// Value satisfies txbuilder.Output.
func (o *AdvancedTradeOffer) Value() uint64 { return o.TradeValue }

func (o *AdvancedTradeOffer) Script() script.Script {
	ops, err := o.ops()
	if err != nil {
		panic(err)
	}
	return script.New(ops...)
}

func (o *AdvancedTradeOffer) ScriptCode() script.Script {
	return o.Script()
}

// SigScript builds the unlocking script for whichever SpendParams this
// offer carries. Cancel needs nothing but the seller's own signature;
// AcceptFully/AcceptPartially reconstruct the successor transaction's
// sighash pre-image piecewise so the locking script can verify it was
// constructed honestly.
func (o *AdvancedTradeOffer) SigScript(serializedSig, serializedPubKey []byte, preImage *txbuilder.PreImage, txOutputs []wire.TxOutput) script.Script {
	if o.SpendParams == nil {
		panic("spend params not set")
	}

	acceptFullyAmount := o.SellAmountToken
	if !o.IsInverted {
		acceptFullyAmount = o.SellAmountToken * uint64(o.Price)
	}

	var buyAmount uint64
	var isAcceptFully bool
	switch o.SpendParams.Kind {
	case KindCancel:
		return script.New(
			script.Push(serializedSig),
			script.Push(serializedPubKey),
			script.Push(nil),
		)
	case KindAcceptFully:
		buyAmount, isAcceptFully = acceptFullyAmount, true
	case KindAcceptPartially:
		buyAmount = o.SpendParams.BuyAmount
		isAcceptFully = buyAmount == acceptFullyAmount
	default:
		panic("spend params not set")
	}

	sig := serializedSig[:len(serializedSig)-1]
	scriptCode := o.ScriptCode().ToVecSig()

	prefixPart, _ := preImage.WriteToStreamFlags(txbuilder.PreImageWriteFlags{
		Version: true, HashPrevouts: true, HashSequence: true, Outpoint: true,
	})
	prefixPart = append(prefixPart, serialize.VarIntToVec(uint64(len(scriptCode)))...)

	middlePart, _ := preImage.WriteToStreamFlags(txbuilder.PreImageWriteFlags{
		Value: true, Sequence: true,
	})
	suffixPart, _ := preImage.WriteToStreamFlags(txbuilder.PreImageWriteFlags{
		LockTime: true, SighashType: true,
	})

	startIdx := 3
	if isAcceptFully {
		startIdx = 2
	}
	endIdx := len(txOutputs)
	if o.FeeAddress != nil {
		endIdx--
	}
	outputsEnd := &byteSink{}
	for _, out := range txOutputs[startIdx:endIdx] {
		_ = out.WriteTo(outputsEnd)
	}

	return script.New(
		script.Push(o.LokadID),
		script.Push([]byte{o.Version}),
		script.Push(o.makePowerVec()),
		script.Push(beU32(o.Price)),
		script.Push(func() []byte { b := o.Address.Bytes(); return b[:] }()),
		script.Push(serializedPubKey),
		script.Push(sig),
		script.Push(prefixPart),
		script.Push(scriptCode),
		script.Push(middlePart),
		script.Push(suffixPart),
		script.Push(outputsEnd.b),
		script.Push(serialize.EncodeInt(int64(int32(buyAmount)))),
		script.Push(serialize.EncodeInt(1)),
	)
}

// byteSink is a minimal io.Writer used to collect serialized outputs
// without pulling bytes.Buffer into call sites that only need Write.
type byteSink struct {
	b []byte
}

func (s *byteSink) Write(p []byte) (int, error) {
	s.b = append(s.b, p...)
	return len(p), nil
}
