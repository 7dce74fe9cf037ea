// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg holds the small set of network-wide constants this
// library needs. Unlike the teacher's chaincfg, which carries a full
// consensus-parameter set for every supported network (genesis block,
// checkpoints, difficulty rules), this package has no consensus logic
// to parametrize: it only fixes the handful of numbers the transaction
// builder and covenant scripts are written against.
package chaincfg

const (
	// DustAmount is the minimum output value, in satoshis, that standard
	// relay policy will forward.
	DustAmount = 546

	// DefaultFeePerKB is the fallback fee rate, in satoshis per
	// kilobyte, used when a caller doesn't supply one.
	DefaultFeePerKB = 1000

	// MaxSignatureSize is the worst-case size of a DER-encoded ECDSA
	// signature plus its trailing sighash-type byte.
	// https://bitcoin.stackexchange.com/a/77192
	MaxSignatureSize = 73

	// PubKeySize is the size of a compressed secp256k1 public key.
	PubKeySize = 33

	// SighashAll | SighashForkID, the only sighash type this library
	// signs with.
	SighashAllForkID uint32 = 0x41

	// CashAddrDefaultPrefix is the CashAddr human-readable prefix used
	// when none is specified.
	CashAddrDefaultPrefix = "bitcoincash"
)
