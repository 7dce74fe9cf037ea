// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address implements CashAddr encoding and decoding. Base58Check
// (legacy addresses) is out of scope: every covenant and output template
// in this repository consumes only the 20-byte hash an Address carries.
package address

import (
	"strings"

	"github.com/cashcovenants/cashtx/chaincfg"
	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/hash"
)

var Err = er.NewErrorType("address.Err")

var (
	ErrInvalidChecksum     = Err.Code("ErrInvalidChecksum")
	ErrInvalidBase32Letter = Err.Code("ErrInvalidBase32Letter")
	ErrInvalidAddressType  = Err.Code("ErrInvalidAddressType")
	ErrInvalidLength       = Err.Code("ErrInvalidLength")
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Type distinguishes what a 20-byte hash means: a public-key hash or a
// script hash.
type Type uint8

const (
	TypeP2PKH Type = 0
	TypeP2SH  Type = 8
)

// Address is an immutable CashAddr-encodable 20-byte hash together with
// the address type and human-readable prefix it was built or parsed
// with.
type Address struct {
	addrType Type
	bytes    [20]byte
	cashAddr string
	prefix   string
}

// FromBytes builds an Address under the default "bitcoincash" prefix.
func FromBytes(addrType Type, b [20]byte) Address {
	return FromBytesPrefix(chaincfg.CashAddrDefaultPrefix, addrType, b)
}

// FromBytesPrefix builds an Address under an explicit prefix.
func FromBytesPrefix(prefix string, addrType Type, b [20]byte) Address {
	return Address{
		addrType: addrType,
		bytes:    b,
		prefix:   prefix,
		cashAddr: toCashAddr(prefix, addrType, b),
	}
}

// FromSlice is FromBytes, validating that slice is exactly 20 bytes.
func FromSlice(addrType Type, slice []byte) (Address, er.R) {
	return FromSlicePrefix(chaincfg.CashAddrDefaultPrefix, addrType, slice)
}

// FromSlicePrefix is FromBytesPrefix, validating that slice is exactly
// 20 bytes.
func FromSlicePrefix(prefix string, addrType Type, slice []byte) (Address, er.R) {
	if len(slice) != 20 {
		return Address{}, ErrInvalidLength.Default()
	}
	var b [20]byte
	copy(b[:], slice)
	return FromBytesPrefix(prefix, addrType, b), nil
}

// FromSerializedPubKey hashes a compressed public key with Hash160 and
// wraps the result as an Address.
func FromSerializedPubKey(prefix string, addrType Type, pubKey []byte) Address {
	var b [20]byte
	copy(b[:], hash.Hash160(pubKey))
	return FromBytesPrefix(prefix, addrType, b)
}

// FromCashAddr parses a CashAddr string (with or without an explicit
// "prefix:" component) into an Address.
func FromCashAddr(cashAddr string) (Address, er.R) {
	b, addrType, prefix, err := decodeCashAddr(cashAddr)
	if err != nil {
		return Address{}, err
	}
	return Address{
		bytes:    b,
		addrType: addrType,
		prefix:   prefix,
		cashAddr: cashAddr,
	}, nil
}

// Bytes returns the raw 20-byte hash.
func (a Address) Bytes() [20]byte { return a.bytes }

// CashAddr returns the cached CashAddr string representation.
func (a Address) CashAddr() string { return a.cashAddr }

// AddrType returns whether this address names a P2PKH or P2SH hash.
func (a Address) AddrType() Type { return a.addrType }

// Prefix returns the human-readable prefix this address was built or
// parsed with.
func (a Address) Prefix() string { return a.prefix }

// WithPrefix returns a copy of a re-encoded under a different prefix.
func (a Address) WithPrefix(prefix string) Address {
	return FromBytesPrefix(prefix, a.addrType, a.bytes)
}

func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, er.R) {
	acc := uint32(0)
	bits := uint(0)
	var ret []byte
	maxv := uint32(1<<toBits) - 1
	maxAcc := uint32(1<<(fromBits+toBits-1)) - 1
	for _, value := range data {
		v := uint32(value)
		if v>>fromBits != 0 {
			return nil, ErrInvalidLength.Default()
		}
		acc = ((acc << fromBits) | v) & maxAcc
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}
	if pad {
		if bits != 0 {
			ret = append(ret, byte((acc<<(toBits-bits))&maxv))
		}
	} else if bits >= fromBits || (acc<<(toBits-bits))&maxv != 0 {
		return nil, ErrInvalidLength.Default()
	}
	return ret, nil
}

func polyMod(values []byte) uint64 {
	c := uint64(1)
	for _, value := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07_ffff_ffff) << 5) ^ uint64(value)
		if c0&0x01 != 0 {
			c ^= 0x98_f2bc_8e61
		}
		if c0&0x02 != 0 {
			c ^= 0x79_b76d_99e2
		}
		if c0&0x04 != 0 {
			c ^= 0xf3_3e5f_b3c4
		}
		if c0&0x08 != 0 {
			c ^= 0xae_2eab_e2a8
		}
		if c0&0x10 != 0 {
			c ^= 0x1e_4f43_e470
		}
	}
	return c ^ 1
}

func prefixExpand(prefix string) []byte {
	out := make([]byte, len(prefix))
	for i := 0; i < len(prefix); i++ {
		out[i] = prefix[i] & 0x1f
	}
	return out
}

func calculateChecksum(prefix string, payload []byte) []byte {
	data := append(prefixExpand(prefix), 0)
	data = append(data, payload...)
	data = append(data, 0, 0, 0, 0, 0, 0, 0, 0)
	poly := polyMod(data)
	checksum := make([]byte, 8)
	for i := 0; i < 8; i++ {
		checksum[i] = byte((poly >> (5 * (7 - uint(i)))) & 0x1f)
	}
	return checksum
}

func verifyChecksum(prefix string, payload []byte) bool {
	data := append(prefixExpand(prefix), 0)
	data = append(data, payload...)
	return polyMod(data) == 0
}

func b32Encode(data []byte) string {
	var b strings.Builder
	for _, v := range data {
		b.WriteByte(charset[v])
	}
	return b.String()
}

func b32Decode(s string) ([]byte, er.R) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(charset, s[i])
		if idx < 0 {
			return nil, ErrInvalidBase32Letter.Default()
		}
		out[i] = byte(idx)
	}
	return out, nil
}

func toCashAddr(prefix string, addrType Type, addrBytes [20]byte) string {
	versioned := append([]byte{byte(addrType)}, addrBytes[:]...)
	payload, err := convertBits(versioned, 8, 5, true)
	if err != nil {
		// versioned is always exactly 21 bytes of well-formed 8-bit
		// values, so convertBits cannot fail here.
		panic(err)
	}
	checksum := calculateChecksum(prefix, payload)
	return prefix + ":" + b32Encode(append(payload, checksum...))
}

func decodeCashAddr(addrString string) ([20]byte, Type, string, er.R) {
	var out [20]byte
	s := strings.ToLower(addrString)
	var prefix, payloadB32 string
	if pos := strings.IndexByte(s, ':'); pos >= 0 {
		prefix = s[:pos]
		payloadB32 = s[pos+1:]
	} else {
		prefix = chaincfg.CashAddrDefaultPrefix
		payloadB32 = s
	}
	decoded, err := b32Decode(payloadB32)
	if err != nil {
		return out, 0, "", err
	}
	if !verifyChecksum(prefix, decoded) {
		return out, 0, "", ErrInvalidChecksum.Default()
	}
	converted, err := convertBits(decoded, 5, 8, true)
	if err != nil {
		return out, 0, "", err
	}
	if len(converted) < 21 {
		return out, 0, "", ErrInvalidLength.Default()
	}
	copy(out[:], converted[1:len(converted)-6])
	var addrType Type
	switch converted[0] {
	case byte(TypeP2PKH):
		addrType = TypeP2PKH
	case byte(TypeP2SH):
		addrType = TypeP2SH
	default:
		return out, 0, "", ErrInvalidAddressType.New("", nil)
	}
	return out, addrType, prefix, nil
}
