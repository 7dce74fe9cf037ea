// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"bytes"
	"encoding/binary"

	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/script"
	"github.com/cashcovenants/cashtx/serialize"
	"github.com/cashcovenants/cashtx/wire"
)

// PreImage is the BIP-143-style sighash pre-image for a single input: the
// ten fields a covenant script selectively serializes to reconstruct
// (and therefore authenticate) the spending transaction, one fragment at
// a time, on the stack.
type PreImage struct {
	Version      int32
	HashPrevouts [32]byte
	HashSequence [32]byte
	Outpoint     wire.TxOutpoint
	ScriptCode   script.Script
	Value        uint64
	Sequence     uint32
	HashOutputs  [32]byte
	LockTime     uint32
	SighashType  uint32
}

// EmptyPreImage returns a zeroed PreImage carrying only scriptCode, used
// by EstimateSize where no real signature material exists yet.
func EmptyPreImage(scriptCode script.Script) PreImage {
	return PreImage{ScriptCode: scriptCode}
}

// PreImageWriteFlags selects which of PreImage's ten fields to
// serialize. Covenant scripts push the pre-image in prefix/middle/suffix
// fragments rather than all at once, so each fragment has its own flag
// set.
type PreImageWriteFlags struct {
	Version      bool
	HashPrevouts bool
	HashSequence bool
	Outpoint     bool
	ScriptCode   bool
	Value        bool
	Sequence     bool
	HashOutputs  bool
	LockTime     bool
	SighashType  bool
}

// AllFields is the flag set that reproduces the entire classic BIP-143
// pre-image.
var AllFields = PreImageWriteFlags{
	Version: true, HashPrevouts: true, HashSequence: true, Outpoint: true,
	ScriptCode: true, Value: true, Sequence: true, HashOutputs: true,
	LockTime: true, SighashType: true,
}

// WriteToStreamFlags serializes the fields flags selects, in PreImage's
// field order, into buf.
func (p *PreImage) WriteToStreamFlags(flags PreImageWriteFlags) ([]byte, er.R) {
	buf := &bytes.Buffer{}
	if flags.Version {
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], uint32(p.Version))
		buf.Write(v[:])
	}
	if flags.HashPrevouts {
		buf.Write(p.HashPrevouts[:])
	}
	if flags.HashSequence {
		buf.Write(p.HashSequence[:])
	}
	if flags.Outpoint {
		buf.Write(p.Outpoint.TxHash[:])
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], p.Outpoint.Vout)
		buf.Write(v[:])
	}
	if flags.ScriptCode {
		scriptCode := p.ScriptCode.ToVecSig()
		if err := serialize.WriteVarInt(buf, uint64(len(scriptCode))); err != nil {
			return nil, err
		}
		buf.Write(scriptCode)
	}
	if flags.Value {
		var v [8]byte
		binary.LittleEndian.PutUint64(v[:], p.Value)
		buf.Write(v[:])
	}
	if flags.Sequence {
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], p.Sequence)
		buf.Write(v[:])
	}
	if flags.HashOutputs {
		buf.Write(p.HashOutputs[:])
	}
	if flags.LockTime {
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], p.LockTime)
		buf.Write(v[:])
	}
	if flags.SighashType {
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], p.SighashType)
		buf.Write(v[:])
	}
	return buf.Bytes(), nil
}

// WriteToStream serializes the full, classic pre-image.
func (p *PreImage) WriteToStream() ([]byte, er.R) {
	return p.WriteToStreamFlags(AllFields)
}
