// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/chaincfg"
	"github.com/whippetcoin/whippetd/whiputil"
)

// BehaviorFlags is a bitmask defining tweaks to the normal behavior when
// performing header validation.
type BehaviorFlags uint32

const (
	// BFNoPoWCheck may be set to indicate the proof of work check which
	// ensures a block hashes to a value less than the required target will
	// not be performed.
	BFNoPoWCheck BehaviorFlags = 1 << iota

	// BFNone is a convenience value to specifically indicate no flags.
	BFNone BehaviorFlags = 0
)

// checkProofOfWork ensures the bits which indicate the target difficulty are
// in min/max range and, unless BFNoPoWCheck is set, that the hash is less
// than the target difficulty as claimed.
func checkProofOfWork(hash *chainhash.Hash, bits uint32, powLimit *big.Int,
	flags BehaviorFlags) error {

	// The target difficulty must be larger than zero.
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		str := fmt.Sprintf("block target difficulty of %064x is too low",
			target)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must be less than the maximum allowed.
	if target.Cmp(powLimit) > 0 {
		str := fmt.Sprintf("block target difficulty of %064x is "+
			"higher than max of %064x", target, powLimit)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	// The block hash must be less than the claimed target unless the flag
	// to avoid proof of work checks is set.
	if flags&BFNoPoWCheck != BFNoPoWCheck {
		hashNum := HashToBig(hash)
		if hashNum.Cmp(target) > 0 {
			str := fmt.Sprintf("block hash of %064x is higher than "+
				"expected max of %064x", hashNum, target)
			return ruleError(ErrHighHash, str)
		}
	}

	return nil
}

// CheckProofOfWork ensures the header bits which indicate the target
// difficulty are in min/max range and that the block hash is less than the
// target difficulty as claimed.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32, powLimit *big.Int) error {
	return checkProofOfWork(hash, bits, powLimit, BFNone)
}

// CheckHeaderDifficulty ensures the bits of header, which must directly
// follow tip, match the difficulty the network requires of it.  A nil tip
// checks header as the genesis block.
func CheckHeaderDifficulty(params *chaincfg.Params, header, tip *Header,
	window AncestorWindow) error {

	wantHeight := int32(0)
	if tip != nil {
		wantHeight = tip.Height + 1
	}
	if header.Height != wantHeight {
		str := fmt.Sprintf("header height %d does not follow tip, "+
			"expected %d", header.Height, wantHeight)
		return ruleError(ErrInvalidHeight, str)
	}

	expectedBits, err := NextWorkRequired(params, tip, header.Timestamp,
		window)
	if err != nil {
		return err
	}
	if header.Bits != expectedBits {
		str := fmt.Sprintf("block difficulty of %08x at height %d is not "+
			"the expected value of %08x", header.Bits, header.Height,
			expectedBits)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	return nil
}

// CheckHeader performs the contextual difficulty check of header against tip
// followed by the proof of work check against the rule-set governing the
// header's height.
func CheckHeader(params *chaincfg.Params, header, tip *Header,
	window AncestorWindow, flags BehaviorFlags) error {

	if err := CheckHeaderDifficulty(params, header, tip, window); err != nil {
		return err
	}

	rules, err := params.RuleSetForHeight(header.Height)
	if err != nil {
		return ruleError(ErrInvalidHeight, err.Error())
	}
	return checkProofOfWork(&header.Hash, header.Bits, rules.PowLimit, flags)
}

// CheckBlockSubsidy ensures a coinbase claiming the passed amount at the
// passed height does not pay out more than the block subsidy plus the total
// transaction fees of the block.
func CheckBlockSubsidy(params *chaincfg.Params, height int32,
	prevHash *chainhash.Hash, claimed, fees whiputil.Amount) error {

	if !whiputil.MoneyRange(fees) {
		str := fmt.Sprintf("total fees for block at height %d of %v are "+
			"outside the money range", height, fees)
		return ruleError(ErrBadFees, str)
	}

	subsidy, err := BlockSubsidy(params, height, prevHash)
	if err != nil {
		return err
	}

	// Both values are below MaxAtoms, so the sum cannot overflow.
	expected := subsidy + fees
	if claimed < 0 || claimed > expected {
		str := fmt.Sprintf("coinbase transaction for block at height %d "+
			"pays %v which is more than expected value of %v", height,
			claimed, expected)
		return ruleError(ErrBadCoinbaseValue, str)
	}

	return nil
}
