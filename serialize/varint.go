// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package serialize holds the two little pieces of wire encoding that
// every other package in this repository depends on: compact-size
// variable-length integers and the script-numeric integer encoding used
// inside pushed data.
package serialize

import (
	"encoding/binary"
	"io"

	"github.com/cashcovenants/cashtx/er"
)

var Err = er.NewErrorType("serialize.Err")

var ErrTruncated = Err.Code("ErrTruncated")

// WriteVarInt writes n to w using Bitcoin's compact-size encoding: a
// single byte for n <= 0xfc, else a one-byte prefix (0xfd/0xfe/0xff)
// followed by a little-endian 2/4/8-byte integer.
func WriteVarInt(w io.Writer, n uint64) er.R {
	var buf []byte
	switch {
	case n <= 0xfc:
		buf = []byte{byte(n)}
	case n <= 0xffff:
		buf = make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
	case n <= 0xffff_ffff:
		buf = make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
	default:
		buf = make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], n)
	}
	if _, err := w.Write(buf); err != nil {
		return er.E(err)
	}
	return nil
}

// VarIntToVec is the equivalent of WriteVarInt into a fresh byte slice.
func VarIntToVec(n uint64) []byte {
	buf := &byteBuf{}
	_ = WriteVarInt(buf, n)
	return buf.b
}

// ReadVarInt is the inverse of WriteVarInt.
func ReadVarInt(r io.Reader) (uint64, er.R) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return 0, er.E(err)
	}
	switch first[0] {
	case 0xfd:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, er.E(err)
		}
		return uint64(binary.LittleEndian.Uint16(b[:])), nil
	case 0xfe:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, er.E(err)
		}
		return uint64(binary.LittleEndian.Uint32(b[:])), nil
	case 0xff:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, er.E(err)
		}
		return binary.LittleEndian.Uint64(b[:]), nil
	default:
		return uint64(first[0]), nil
	}
}

// byteBuf is a minimal io.Writer over a growable slice, used in the few
// spots that build up bytes without pulling in bytes.Buffer's extra API.
type byteBuf struct {
	b []byte
}

func (b *byteBuf) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}
