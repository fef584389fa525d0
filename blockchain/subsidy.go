// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/chaincfg"
	"github.com/whippetcoin/whippetd/whiputil"
	"golang.org/x/crypto/blake2b"
)

// subsidyDigestKey keys the digest the randomized eras draw rewards from so
// the value cannot collide with any other use of blake2b over block hashes.
var subsidyDigestKey = []byte("whippet block subsidy")

// subsidyDigest returns the deterministic 64-bit value a randomized era maps
// into its reward range.  It is the first eight bytes, read little endian, of
// the keyed blake2b-256 digest of the previous block hash followed by the
// little endian height.
func subsidyDigest(prevHash *chainhash.Hash, height int32) uint64 {
	h, err := blake2b.New256(subsidyDigestKey)
	if err != nil {
		// Only possible with a key longer than 64 bytes.
		panic(err)
	}

	var heightBytes [4]byte
	binary.LittleEndian.PutUint32(heightBytes[:], uint32(height))
	h.Write(prevHash[:])
	h.Write(heightBytes[:])

	return binary.LittleEndian.Uint64(h.Sum(nil)[:8])
}

// subsidyHalvings returns the number of halving epochs completed before the
// passed height.
func subsidyHalvings(height int32, rules *chaincfg.ConsensusRuleSet) (int32, error) {
	if rules == nil {
		return 0, AssertError("subsidy requested without a rule-set")
	}
	if height < 0 {
		str := fmt.Sprintf("subsidy requested for negative height %d", height)
		return 0, ruleError(ErrInvalidHeight, str)
	}
	if rules.SubsidyHalvingInterval <= 0 {
		str := fmt.Sprintf("rule-set at height %d has a non-positive "+
			"halving interval %d", rules.HeightEffective,
			rules.SubsidyHalvingInterval)
		return 0, AssertError(str)
	}
	return height / rules.SubsidyHalvingInterval, nil
}

// maxSubsidyCoins returns the largest reward, in whole coins, a block at the
// passed height may mint.  For the fixed era it is also the exact reward.
func maxSubsidyCoins(halvings int32, rules *chaincfg.ConsensusRuleSet) int64 {
	if halvings >= rules.SubsidyTailHalvings {
		return rules.SubsidyTail
	}
	return rules.SubsidyBase >> uint(halvings)
}

// MaxBlockSubsidy returns the most a block at the passed height may mint
// under rules.  For a fixed era this is the exact subsidy.
func MaxBlockSubsidy(height int32, rules *chaincfg.ConsensusRuleSet) (whiputil.Amount, error) {
	halvings, err := subsidyHalvings(height, rules)
	if err != nil {
		return 0, err
	}
	return whiputil.Coins(maxSubsidyCoins(halvings, rules)), nil
}

// CalcBlockSubsidy returns the subsidy a block at the passed height may claim
// under rules.  prevHash is the hash of the block's parent; it only affects
// the result while the rule-set's era is randomized.
//
// In randomized eras the reward is a whole number of coins in [1, max],
// where max halves every SubsidyHalvingInterval blocks until
// SubsidyTailHalvings halvings have passed and the tail maximum applies.
// In the fixed era the reward is exactly the maximum.
//
// This function is safe for concurrent access.
func CalcBlockSubsidy(height int32, rules *chaincfg.ConsensusRuleSet,
	prevHash *chainhash.Hash) (whiputil.Amount, error) {

	halvings, err := subsidyHalvings(height, rules)
	if err != nil {
		return 0, err
	}
	maxCoins := maxSubsidyCoins(halvings, rules)

	var subsidy whiputil.Amount
	switch rules.SubsidyEra {
	case chaincfg.SubsidyEraFixed:
		subsidy = whiputil.Coins(maxCoins)

	case chaincfg.SubsidyEraLegacyRandom, chaincfg.SubsidyEraScaledRandom:
		if prevHash == nil {
			return 0, AssertError("randomized subsidy requested without " +
				"a previous block hash")
		}

		// The reward never drops to zero even once the maximum has
		// been shifted away.
		if maxCoins < 1 {
			maxCoins = 1
		}
		draw := subsidyDigest(prevHash, height) % uint64(maxCoins)
		subsidy = whiputil.Coins(1 + int64(draw))

	default:
		str := fmt.Sprintf("rule-set at height %d has unknown subsidy "+
			"era %v", rules.HeightEffective, rules.SubsidyEra)
		return 0, AssertError(str)
	}

	if !whiputil.MoneyRange(subsidy) {
		str := fmt.Sprintf("subsidy %d at height %d is outside the money "+
			"range", int64(subsidy), height)
		return 0, AssertError(str)
	}
	return subsidy, nil
}

// BlockSubsidy resolves the rule-set governing the passed height on the
// network and returns the block's subsidy.
func BlockSubsidy(params *chaincfg.Params, height int32,
	prevHash *chainhash.Hash) (whiputil.Amount, error) {

	rules, err := params.RuleSetForHeight(height)
	if err != nil {
		return 0, ruleError(ErrInvalidHeight, err.Error())
	}
	return CalcBlockSubsidy(height, rules, prevHash)
}
