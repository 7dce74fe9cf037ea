// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hash collects the digest primitives the rest of the repository
// builds on: single and double SHA-256, and the RIPEMD-160(SHA-256(.))
// composite used for P2PKH/P2SH hashes and CashAddr payloads.
package hash

import (
	"crypto/sha256"
	"hash"

	//lint:ignore SA1019 ripemd160 may be deprecated but it is not going away.
	"golang.org/x/crypto/ripemd160"
)

const Hash160Size = ripemd160.Size

// calcHash calculates the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Ripemd160 calculates a ripemd160 hash directly.
func Ripemd160(buf []byte) []byte {
	return calcHash(buf, ripemd160.New())
}

// Sha256 calculates a single sha256 hash.
func Sha256(buf []byte) [32]byte {
	return sha256.Sum256(buf)
}

// DoubleSha256 calculates sha256(sha256(b)), the hash used for transaction
// and block identifiers.
func DoubleSha256(buf []byte) [32]byte {
	first := sha256.Sum256(buf)
	return sha256.Sum256(first[:])
}

// Hash160 calculates the hash ripemd160(sha256(b)), used for P2PKH and
// P2SH locking-script hashes.
func Hash160(buf []byte) []byte {
	return Ripemd160(calcHash(buf, sha256.New()))
}
