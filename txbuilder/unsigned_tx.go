// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"bytes"
	"encoding/binary"

	"github.com/cashcovenants/cashtx/address"
	"github.com/cashcovenants/cashtx/chaincfg"
	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/hash"
	"github.com/cashcovenants/cashtx/opcode"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/wire"
)

var Err = er.NewErrorType("txbuilder.Err")

var (
	ErrSignOpReturn  = Err.Code("ErrSignOpReturn")
	ErrInputCountMismatch = Err.Code("ErrInputCountMismatch")
)

// UnsignedInput is one input being assembled: the outpoint it spends,
// the Output describing the script that outpoint is locked with, and a
// sequence number.
type UnsignedInput struct {
	Outpoint wire.TxOutpoint
	Output   Output
	Sequence uint32
}

// UnsignedTx incrementally builds a transaction's input and output list
// before any signature exists. Once every input and output is final,
// PreImages produces what each input's signer must sign, and Sign
// consumes the resulting signatures to produce a wire.Tx.
type UnsignedTx struct {
	version  int32
	inputs   []UnsignedInput
	outputs  []wire.TxOutput
	lockTime uint32
}

// NewSimple returns a version-1, zero-locktime UnsignedTx with no
// inputs or outputs.
func NewSimple() *UnsignedTx {
	return &UnsignedTx{version: 1}
}

// NewWithLockTime is NewSimple with an explicit lock time.
func NewWithLockTime(lockTime uint32) *UnsignedTx {
	return &UnsignedTx{version: 1, lockTime: lockTime}
}

// AddInput appends input and returns its index.
func (t *UnsignedTx) AddInput(input UnsignedInput) int {
	t.inputs = append(t.inputs, input)
	return len(t.inputs) - 1
}

// ReplaceInput overwrites the input at idx.
func (t *UnsignedTx) ReplaceInput(idx int, input UnsignedInput) {
	t.inputs[idx] = input
}

// AddOutput appends output and returns its index.
func (t *UnsignedTx) AddOutput(output wire.TxOutput) int {
	t.outputs = append(t.outputs, output)
	return len(t.outputs) - 1
}

// InsertOutput inserts output at idx, shifting later outputs right.
func (t *UnsignedTx) InsertOutput(idx int, output wire.TxOutput) {
	t.outputs = append(t.outputs, wire.TxOutput{})
	copy(t.outputs[idx+1:], t.outputs[idx:])
	t.outputs[idx] = output
}

// ReplaceOutput overwrites the output at idx.
func (t *UnsignedTx) ReplaceOutput(idx int, output wire.TxOutput) {
	t.outputs[idx] = output
}

// RemoveOutput deletes the output at idx, shifting later outputs left.
func (t *UnsignedTx) RemoveOutput(idx int) {
	t.outputs = append(t.outputs[:idx], t.outputs[idx+1:]...)
}

// Inputs returns the input list built so far.
func (t *UnsignedTx) Inputs() []UnsignedInput { return t.inputs }

// Outputs returns the output list built so far.
func (t *UnsignedTx) Outputs() []wire.TxOutput { return t.outputs }

// PreImages computes one BIP-143-style sighash pre-image per input,
// sharing the three transaction-wide digests (hashPrevouts, hashSequence,
// hashOutputs) across all of them.
func (t *UnsignedTx) PreImages(sighashType uint32) ([]PreImage, er.R) {
	outpointsSerialized := &bytes.Buffer{}
	for _, in := range t.inputs {
		outpointsSerialized.Write(in.Outpoint.TxHash[:])
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], in.Outpoint.Vout)
		outpointsSerialized.Write(v[:])
	}
	hashPrevouts := hash.DoubleSha256(outpointsSerialized.Bytes())

	sequenceSerialized := &bytes.Buffer{}
	for _, in := range t.inputs {
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], in.Sequence)
		sequenceSerialized.Write(v[:])
	}
	hashSequence := hash.DoubleSha256(sequenceSerialized.Bytes())

	outputsSerialized := &bytes.Buffer{}
	for i := range t.outputs {
		if err := t.outputs[i].WriteTo(outputsSerialized); err != nil {
			return nil, err
		}
	}
	hashOutputs := hash.DoubleSha256(outputsSerialized.Bytes())

	preImages := make([]PreImage, 0, len(t.inputs))
	for _, in := range t.inputs {
		preImages = append(preImages, PreImage{
			Version:      t.version,
			HashPrevouts: hashPrevouts,
			HashSequence: hashSequence,
			Outpoint:     in.Outpoint,
			ScriptCode:   in.Output.ScriptCode(),
			Value:        in.Output.Value(),
			Sequence:     in.Sequence,
			HashOutputs:  hashOutputs,
			LockTime:     t.lockTime,
			SighashType:  sighashType,
		})
	}
	return preImages, nil
}

// EstimateSize returns the worst-case serialized size of the final
// signed transaction: every input's unlocking script is built with a
// placeholder maximum-size signature and public key, plus two bytes of
// slack for minor signature-length variance.
func (t *UnsignedTx) EstimateSize() (int, er.R) {
	txInputs := make([]wire.TxInput, 0, len(t.inputs))
	for _, in := range t.inputs {
		sigSer := make([]byte, chaincfg.MaxSignatureSize)
		pubKeySer := make([]byte, chaincfg.PubKeySize)
		preImage := EmptyPreImage(in.Output.ScriptCode())
		s := in.Output.SigScript(sigSer, pubKeySer, &preImage, t.outputs)
		txInputs = append(txInputs, wire.TxInput{
			Outpoint: in.Outpoint,
			Script:   s,
			Sequence: in.Sequence,
		})
	}
	tx := wire.Tx{
		Version:  t.version,
		Inputs:   txInputs,
		Outputs:  t.outputs,
		LockTime: t.lockTime,
	}
	return len(tx.ToVec()) + 2, nil
}

func leftoverP2PKHScript(addr address.Address) script.Script {
	b := addr.Bytes()
	return script.New(
		script.Code(opcode.OP_DUP),
		script.Code(opcode.OP_HASH160),
		script.Push(b[:]),
		script.Code(opcode.OP_EQUALVERIFY),
		script.Code(opcode.OP_CHECKSIG),
	)
}

// InsertLeftoverOutput inserts a change output paying the difference
// between total input value and total output value plus fee at
// leftoverIdx, paying leftoverAddr.
//
// It returns (&idx, 0, nil) on success, (nil, 0, nil) if the leftover
// would be below dustLimit (no output inserted, caller should treat the
// difference as an implicit extra fee), or (nil, shortfall, nil) if the
// inputs don't cover the outputs plus fee at all.
func (t *UnsignedTx) InsertLeftoverOutput(leftoverIdx int, leftoverAddr address.Address, feePerKB, dustLimit uint64) (*int, uint64, er.R) {
	var totalOutputAmount uint64
	for _, out := range t.outputs {
		totalOutputAmount += out.Value
	}

	leftoverValue := uint64(0xffffffff_ffffffff)
	leftoverScript := leftoverP2PKHScript(leftoverAddr)

	txSizeWithout, err := t.EstimateSize()
	if err != nil {
		return nil, 0, err
	}

	t.InsertOutput(leftoverIdx, wire.TxOutput{Value: leftoverValue, Script: leftoverScript})

	txSize, err := t.EstimateSize()
	if err != nil {
		return nil, 0, err
	}

	fee := uint64(txSize) * feePerKB / 1000
	feeWithout := uint64(txSizeWithout) * feePerKB / 1000

	var totalInputAmount uint64
	for _, in := range t.inputs {
		totalInputAmount += in.Output.Value()
	}

	totalSpent := totalOutputAmount + fee
	totalSpentWithout := totalOutputAmount + feeWithout

	if totalSpentWithout > totalInputAmount {
		t.RemoveOutput(leftoverIdx)
		return nil, totalSpent - totalInputAmount, nil
	}
	if totalInputAmount-totalSpentWithout < dustLimit {
		t.RemoveOutput(leftoverIdx)
		return nil, 0, nil
	}

	leftoverValue = totalInputAmount - totalSpent
	t.ReplaceOutput(leftoverIdx, wire.TxOutput{Value: leftoverValue, Script: leftoverScript})
	idx := leftoverIdx
	return &idx, 0, nil
}

// AddLeftoverOutput is InsertLeftoverOutput at the end of the output list.
func (t *UnsignedTx) AddLeftoverOutput(leftoverAddr address.Address, feePerKB, dustLimit uint64) (*int, uint64, er.R) {
	return t.InsertLeftoverOutput(len(t.outputs), leftoverAddr, feePerKB, dustLimit)
}

// Sign consumes one DER-encoded signature (without the trailing sighash
// byte) and one serialized public key per input, in input order, and
// produces the final transaction.
func (t *UnsignedTx) Sign(serializedSignatures, serializedPubKeys [][]byte) (wire.Tx, er.R) {
	if len(serializedSignatures) != len(t.inputs) || len(serializedPubKeys) != len(t.inputs) {
		return wire.Tx{}, ErrInputCountMismatch.Default()
	}
	preImages, err := t.PreImages(chaincfg.SighashAllForkID)
	if err != nil {
		return wire.Tx{}, err
	}
	txInputs := make([]wire.TxInput, 0, len(t.inputs))
	for i, in := range t.inputs {
		sig := append(append([]byte(nil), serializedSignatures[i]...), byte(chaincfg.SighashAllForkID))
		s := in.Output.SigScript(sig, serializedPubKeys[i], &preImages[i], t.outputs)
		txInputs = append(txInputs, wire.TxInput{
			Outpoint: in.Outpoint,
			Script:   s,
			Sequence: in.Sequence,
		})
	}
	return wire.Tx{
		Version:  t.version,
		Inputs:   txInputs,
		Outputs:  t.outputs,
		LockTime: t.lockTime,
	}, nil
}
