// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire holds the on-chain transaction structures and their
// little-endian wire encoding: outpoints, inputs, outputs, and the
// transaction envelope itself.
package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/hash"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/serialize"
)

var Err = er.NewErrorType("wire.Err")

var (
	ErrInvalidScript = Err.Code("ErrInvalidScript")
	ErrInvalidTxHash = Err.Code("ErrInvalidTxHash")
)

// TxOutpoint identifies the output being spent: the 32-byte hash of the
// transaction that created it, and its index within that transaction's
// output list.
type TxOutpoint struct {
	TxHash [32]byte
	Vout   uint32
}

// Bytes returns the 36-byte outpoint key: tx hash followed by the
// little-endian output index, as used for UTXO-set lookups.
func (o TxOutpoint) Bytes() [36]byte {
	var key [36]byte
	copy(key[:32], o.TxHash[:])
	binary.LittleEndian.PutUint32(key[32:], o.Vout)
	return key
}

// TxHexToHash parses a big-endian hex transaction id (as displayed by
// block explorers and RPCs) into the little-endian internal hash form.
func TxHexToHash(s string) ([32]byte, er.R) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, ErrInvalidTxHash.New(err.Error(), nil)
	}
	if len(b) != 32 {
		return out, ErrInvalidTxHash.New("expected 32 bytes", nil)
	}
	for i, v := range b {
		out[31-i] = v
	}
	return out, nil
}

// TxHashToHex is the inverse of TxHexToHash.
func TxHashToHex(txHash [32]byte) string {
	rev := make([]byte, 32)
	for i, v := range txHash {
		rev[31-i] = v
	}
	return hex.EncodeToString(rev)
}

// TxInput is a transaction's spend of one previous output: the outpoint
// it spends, the unlocking script proving the right to spend it, and a
// sequence number.
type TxInput struct {
	Outpoint TxOutpoint
	Script   script.Script
	Sequence uint32
}

func readTxInput(r io.Reader) (TxInput, er.R) {
	var in TxInput
	if _, err := io.ReadFull(r, in.Outpoint.TxHash[:]); err != nil {
		return in, er.E(err)
	}
	var vout [4]byte
	if _, err := io.ReadFull(r, vout[:]); err != nil {
		return in, er.E(err)
	}
	in.Outpoint.Vout = binary.LittleEndian.Uint32(vout[:])
	scriptLen, errR := serialize.ReadVarInt(r)
	if errR != nil {
		return in, errR
	}
	scriptBytes := make([]byte, scriptLen)
	if _, err := io.ReadFull(r, scriptBytes); err != nil {
		return in, er.E(err)
	}
	s, errR := script.Parse(scriptBytes)
	if errR != nil {
		return in, ErrInvalidScript.New("", errR)
	}
	in.Script = s
	var seq [4]byte
	if _, err := io.ReadFull(r, seq[:]); err != nil {
		return in, er.E(err)
	}
	in.Sequence = binary.LittleEndian.Uint32(seq[:])
	return in, nil
}

func (in *TxInput) writeTo(w io.Writer) er.R {
	if _, err := w.Write(in.Outpoint.TxHash[:]); err != nil {
		return er.E(err)
	}
	var vout [4]byte
	binary.LittleEndian.PutUint32(vout[:], in.Outpoint.Vout)
	if _, err := w.Write(vout[:]); err != nil {
		return er.E(err)
	}
	scriptBytes := in.Script.ToVec()
	if errR := serialize.WriteVarInt(w, uint64(len(scriptBytes))); errR != nil {
		return errR
	}
	if _, err := w.Write(scriptBytes); err != nil {
		return er.E(err)
	}
	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], in.Sequence)
	if _, err := w.Write(seq[:]); err != nil {
		return er.E(err)
	}
	return nil
}

// TxOutput is a single payment: an amount in satoshis and the locking
// script that constrains how it may later be spent.
type TxOutput struct {
	Value  uint64
	Script script.Script
}

func readTxOutput(r io.Reader) (TxOutput, er.R) {
	var out TxOutput
	var value [8]byte
	if _, err := io.ReadFull(r, value[:]); err != nil {
		return out, er.E(err)
	}
	out.Value = binary.LittleEndian.Uint64(value[:])
	scriptLen, errR := serialize.ReadVarInt(r)
	if errR != nil {
		return out, errR
	}
	scriptBytes := make([]byte, scriptLen)
	if _, err := io.ReadFull(r, scriptBytes); err != nil {
		return out, er.E(err)
	}
	s, errR := script.Parse(scriptBytes)
	if errR != nil {
		return out, ErrInvalidScript.New("", errR)
	}
	out.Script = s
	return out, nil
}

// WriteTo serializes a single output in the form used both inside a
// full transaction and inside a hashOutputs/pre-image fragment.
func (out *TxOutput) WriteTo(w io.Writer) er.R {
	return out.writeTo(w)
}

func (out *TxOutput) writeTo(w io.Writer) er.R {
	var value [8]byte
	binary.LittleEndian.PutUint64(value[:], out.Value)
	if _, err := w.Write(value[:]); err != nil {
		return er.E(err)
	}
	scriptBytes := out.Script.ToVec()
	if errR := serialize.WriteVarInt(w, uint64(len(scriptBytes))); errR != nil {
		return errR
	}
	if _, err := w.Write(scriptBytes); err != nil {
		return er.E(err)
	}
	return nil
}

// Tx is a complete Bitcoin Cash transaction.
type Tx struct {
	Version  int32
	Inputs   []TxInput
	Outputs  []TxOutput
	LockTime uint32
}

// Hash returns the double-SHA-256 of the serialized transaction, the id
// used to reference it as an outpoint in a later transaction.
func (t *Tx) Hash() [32]byte {
	return hash.DoubleSha256(t.ToVec())
}

// ReadTx parses a serialized transaction.
func ReadTx(r io.Reader) (Tx, er.R) {
	var t Tx
	var version [4]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return t, er.E(err)
	}
	t.Version = int32(binary.LittleEndian.Uint32(version[:]))

	numInputs, errR := serialize.ReadVarInt(r)
	if errR != nil {
		return t, errR
	}
	t.Inputs = make([]TxInput, 0, numInputs)
	for i := uint64(0); i < numInputs; i++ {
		in, errR := readTxInput(r)
		if errR != nil {
			return t, errR
		}
		t.Inputs = append(t.Inputs, in)
	}

	numOutputs, errR := serialize.ReadVarInt(r)
	if errR != nil {
		return t, errR
	}
	t.Outputs = make([]TxOutput, 0, numOutputs)
	for i := uint64(0); i < numOutputs; i++ {
		out, errR := readTxOutput(r)
		if errR != nil {
			return t, errR
		}
		t.Outputs = append(t.Outputs, out)
	}

	var lockTime [4]byte
	if _, err := io.ReadFull(r, lockTime[:]); err != nil {
		return t, er.E(err)
	}
	t.LockTime = binary.LittleEndian.Uint32(lockTime[:])
	return t, nil
}

// WriteTo serializes t to w.
func (t *Tx) WriteTo(w io.Writer) er.R {
	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], uint32(t.Version))
	if _, err := w.Write(version[:]); err != nil {
		return er.E(err)
	}
	if errR := serialize.WriteVarInt(w, uint64(len(t.Inputs))); errR != nil {
		return errR
	}
	for i := range t.Inputs {
		if errR := t.Inputs[i].writeTo(w); errR != nil {
			return errR
		}
	}
	if errR := serialize.WriteVarInt(w, uint64(len(t.Outputs))); errR != nil {
		return errR
	}
	for i := range t.Outputs {
		if errR := t.Outputs[i].writeTo(w); errR != nil {
			return errR
		}
	}
	var lockTime [4]byte
	binary.LittleEndian.PutUint32(lockTime[:], t.LockTime)
	if _, err := w.Write(lockTime[:]); err != nil {
		return er.E(err)
	}
	return nil
}

// ToVec is the equivalent of WriteTo into a fresh byte slice.
func (t *Tx) ToVec() []byte {
	buf := &bytes.Buffer{}
	_ = t.WriteTo(buf)
	return buf.Bytes()
}
