// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"encoding/binary"
	"strings"

	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/opcode"
)

var Err = er.NewErrorType("script.Err")

var ErrTruncatedPush = Err.Code("ErrTruncatedPush")

// Script is an ordered list of Ops, together with the two flags that
// govern how it serializes: is_minimal_push controls whether empty
// pushes collapse to a bare OP_0, and is_slp_safe records whether a
// parsed script contained no bare OP_0 push and no opcode other than
// OP_RETURN after its first byte.
type Script struct {
	ops           []Op
	serialized    []byte
	isMinimalPush bool
	isSlpSafe     bool
}

// Empty returns the zero-length script.
func Empty() Script {
	return Script{isMinimalPush: true, isSlpSafe: true}
}

// New builds a script from ops using minimal-push encoding.
func New(ops ...Op) Script {
	return Script{ops: ops, isMinimalPush: true}
}

// NewNonMinimalPush builds a script from ops using non-minimal-push
// encoding (an empty push becomes OP_PUSHDATA1 0x00), as OP_RETURN data
// outputs such as the SLP payloads use.
func NewNonMinimalPush(ops ...Op) Script {
	return Script{ops: ops, isMinimalPush: false}
}

// Parse decodes a serialized script. It returns ErrTruncatedPush if a
// push's declared length runs past the end of data.
func Parse(data []byte) (Script, er.R) {
	var ops []Op
	isSlpSafe := true
	idx := 0
	for idx < len(data) {
		b := data[idx]
		switch {
		case b == 0:
			ops = append(ops, Push(nil))
			isSlpSafe = false
		case b >= 1 && b <= 0x4b:
			n := int(b)
			offset := idx + 1
			if offset+n > len(data) {
				return Script{}, ErrTruncatedPush.Default()
			}
			ops = append(ops, Push(data[offset:offset+n]))
			idx += n
		case b == byte(opcode.OP_PUSHDATA1) || b == byte(opcode.OP_PUSHDATA2) || b == byte(opcode.OP_PUSHDATA4):
			offset := idx + 1
			var n int
			switch opcode.Opcode(b) {
			case opcode.OP_PUSHDATA1:
				if offset+1 > len(data) {
					return Script{}, ErrTruncatedPush.Default()
				}
				n = int(data[offset])
				idx++
				offset++
			case opcode.OP_PUSHDATA2:
				if offset+2 > len(data) {
					return Script{}, ErrTruncatedPush.Default()
				}
				n = int(binary.LittleEndian.Uint16(data[offset : offset+2]))
				idx += 2
				offset += 2
			default: // OP_PUSHDATA4
				if offset+4 > len(data) {
					return Script{}, ErrTruncatedPush.Default()
				}
				n = int(binary.LittleEndian.Uint32(data[offset : offset+4]))
				idx += 4
				offset += 4
			}
			if offset+n > len(data) {
				return Script{}, ErrTruncatedPush.Default()
			}
			ops = append(ops, Push(data[offset:offset+n]))
			idx += n
		default:
			code := opcode.Opcode(b)
			if idx != 0 && code != opcode.OP_RETURN {
				isSlpSafe = false
			}
			ops = append(ops, Code(code))
		}
		idx++
	}
	return Script{
		ops:           ops,
		isMinimalPush: true,
		isSlpSafe:     isSlpSafe,
		serialized:    append([]byte(nil), data...),
	}, nil
}

// ToVec serializes the full script, including anything before an
// OP_CODESEPARATOR. A script produced by Parse returns its original
// bytes verbatim rather than re-encoding.
func (s Script) ToVec() []byte {
	if s.serialized != nil {
		return append([]byte(nil), s.serialized...)
	}
	var buf []byte
	for _, op := range s.ops {
		buf = op.writeTo(buf, s.isMinimalPush)
	}
	return buf
}

// ToVecSig serializes the script for sighash purposes: everything up to
// and including the rightmost OP_CODESEPARATOR is stripped out, per the
// standard signature-hash rule that a script can "consume" its own
// prefix once a signature checking it has been verified.
func (s Script) ToVecSig() []byte {
	codeSepPos := -1
	for i, op := range s.ops {
		if !op.isPush && op.code == opcode.OP_CODESEPARATOR {
			codeSepPos = i
		}
	}
	var buf []byte
	for i, op := range s.ops {
		if codeSepPos >= 0 && i <= codeSepPos {
			continue
		}
		buf = op.writeTo(buf, s.isMinimalPush)
	}
	return buf
}

// AddOp appends op and returns the script for chaining.
func (s *Script) AddOp(op Op) *Script {
	s.ops = append(s.ops, op)
	s.serialized = nil
	return s
}

// Extend appends every op of other to s.
func (s *Script) Extend(other Script) {
	s.ops = append(s.ops, other.ops...)
	s.serialized = nil
}

// Ops returns the script's op list.
func (s Script) Ops() []Op {
	return s.ops
}

// IsSlpSafe reports whether a parsed script obeyed the SLP safety
// convention (no bare OP_0 push, no opcode other than OP_RETURN after
// the first byte).
func (s Script) IsSlpSafe() bool {
	return s.isSlpSafe
}

func (s Script) String() string {
	var b strings.Builder
	b.WriteString("Script:")
	for _, op := range s.ops {
		b.WriteString(" ")
		b.WriteString(op.String())
	}
	return b.String()
}
