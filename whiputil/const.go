// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package whiputil

const (
	// atomsPerCoin is the untyped version of AtomsPerCoin.
	atomsPerCoin = 1e8

	// AtomsPerCoin is the number of atoms in one whippet (1 COIN).
	AtomsPerCoin int64 = atomsPerCoin

	// MaxAtoms is the largest amount, in atoms, any single output or block
	// reward may carry.  Amounts at or above it are outside the money
	// range.
	MaxAtoms int64 = 10e9 * AtomsPerCoin
)
