// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package script builds and serializes locking/unlocking scripts. It
// does not execute them; script validation is outside this repository.
package script

import (
	"encoding/binary"
	"fmt"

	"github.com/cashcovenants/cashtx/opcode"
)

// Op is a single script element: either a data push or a fixed opcode.
type Op struct {
	push   []byte
	isPush bool
	code   opcode.Opcode
}

// Push returns an Op that pushes data onto the stack.
func Push(data []byte) Op {
	return Op{push: data, isPush: true}
}

// Code returns an Op wrapping a fixed opcode.
func Code(c opcode.Opcode) Op {
	return Op{code: c}
}

// IsPush reports whether this Op is a data push.
func (o Op) IsPush() bool {
	return o.isPush
}

// PushData returns the pushed bytes. Only valid when IsPush is true.
func (o Op) PushData() []byte {
	return o.push
}

// Opcode returns the wrapped opcode. Only valid when IsPush is false.
func (o Op) Opcode() opcode.Opcode {
	return o.code
}

// byteCode returns the leading byte this Op serializes to.
func (o Op) byteCode() byte {
	if !o.isPush {
		return byte(o.code)
	}
	switch {
	case len(o.push) <= 0x4b:
		return byte(len(o.push))
	case len(o.push) <= 0xff:
		return byte(opcode.OP_PUSHDATA1)
	case len(o.push) <= 0xffff:
		return byte(opcode.OP_PUSHDATA2)
	default:
		return byte(opcode.OP_PUSHDATA4)
	}
}

// writeTo appends this Op's serialized form to buf. When isMinimalPush is
// false, an empty push is written via OP_PUSHDATA1 with length 0 rather
// than the bare OP_0 byte, the non-canonical encoding OP_RETURN data
// outputs (such as the SLP payloads) use.
func (o Op) writeTo(buf []byte, isMinimalPush bool) []byte {
	if o.isPush {
		if len(o.push) == 0 && !isMinimalPush {
			return append(buf, byte(opcode.OP_PUSHDATA1), 0)
		}
		if len(o.push) == 1 && isMinimalPush && o.push[0] > 0 && o.push[0] <= 16 {
			return append(buf, o.push[0]+0x50)
		}
		buf = append(buf, o.byteCode())
		switch {
		case len(o.push) <= 0x4b:
		case len(o.push) <= 0xff:
			buf = append(buf, byte(len(o.push)))
		case len(o.push) <= 0xffff:
			var l [2]byte
			binary.LittleEndian.PutUint16(l[:], uint16(len(o.push)))
			buf = append(buf, l[:]...)
		default:
			var l [4]byte
			binary.LittleEndian.PutUint32(l[:], uint32(len(o.push)))
			buf = append(buf, l[:]...)
		}
		return append(buf, o.push...)
	}
	return append(buf, byte(o.code))
}

func (o Op) String() string {
	if o.isPush {
		return fmt.Sprintf("PUSH %x", o.push)
	}
	return o.code.String()
}
