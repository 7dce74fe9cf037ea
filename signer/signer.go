// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signer wraps secp256k1 key handling and ECDSA signing, giving
// callers compressed public keys and DER signatures in exactly the form
// the rest of this module expects to push onto a witness stack.
package signer

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/cashcovenants/cashtx/er"
	"github.com/cashcovenants/cashtx/hash"
)

var Err = er.NewErrorType("signer.Err")

var ErrInvalidSecretKey = Err.Code("ErrInvalidSecretKey")

// SecretKey wraps a secp256k1 private key.
type SecretKey struct {
	key *btcec.PrivateKey
}

// SecretKeyFromSlice parses a 32-byte scalar into a SecretKey.
func SecretKeyFromSlice(b []byte) (SecretKey, er.R) {
	if len(b) != 32 {
		return SecretKey{}, ErrInvalidSecretKey.Default()
	}
	key, _ := btcec.PrivKeyFromBytes(b)
	return SecretKey{key: key}, nil
}

// PubKey derives the compressed public key for this secret key.
func (s SecretKey) PubKey() PublicKey {
	return PublicKey{key: s.key.PubKey()}
}

// PublicKey wraps a secp256k1 public key, always serialized compressed.
type PublicKey struct {
	key *btcec.PublicKey
}

// Serialize returns the 33-byte compressed public key encoding.
func (p PublicKey) Serialize() [33]byte {
	var out [33]byte
	copy(out[:], p.key.SerializeCompressed())
	return out
}

// Signature wraps a secp256k1 ECDSA signature.
type Signature struct {
	sig *ecdsa.Signature
}

// SerializeDER returns the DER encoding of the signature, without any
// trailing sighash-type byte.
func (s Signature) SerializeDER() []byte {
	return s.sig.Serialize()
}

// Hash160 is the RIPEMD160(SHA256(data)) used to derive address payloads.
func Hash160(data []byte) [20]byte {
	var out [20]byte
	copy(out[:], hash.Hash160(data))
	return out
}

// SingleSha256 is SHA256(data).
func SingleSha256(data []byte) [32]byte {
	return hash.Sha256(data)
}

// DoubleSha256 is SHA256(SHA256(data)), the digest used for sighashes and
// transaction ids.
func DoubleSha256(data []byte) [32]byte {
	return hash.DoubleSha256(data)
}

// Sign produces an ECDSA signature over a 32-byte message digest. Callers
// that need a sighash-type byte appended must do so themselves; Signature
// only ever carries the raw DER encoding.
func Sign(message [32]byte, key SecretKey) Signature {
	sig := ecdsa.Sign(key.key, message[:])
	return Signature{sig: sig}
}
