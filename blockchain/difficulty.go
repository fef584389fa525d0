// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/chaincfg"
)

var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits.  It is defined here to avoid
	// the overhead of creating it multiple times.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// HashToBig converts a chainhash.Hash into a big.Int that can be used to
// perform math comparisons.
func HashToBig(hash *chainhash.Hash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number.  The representation is similar to IEEE754 floating
// point numbers.
//
// Like IEEE754 floating point, there are three basic components: the sign,
// the exponent, and the mantissa.  They are broken out as follows:
//
//   - the most significant 8 bits represent the unsigned base 256 exponent
//   - bit 23 (the 24th bit) represents the sign bit
//   - the least significant 23 bits represent the mantissa
//
//	-------------------------------------------------
//	|   Exponent     |    Sign    |    Mantissa     |
//	-------------------------------------------------
//	| 8 bits [31-24] | 1 bit [23] | 23 bits [22-00] |
//	-------------------------------------------------
//
// The formula to calculate N is:
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
//
// This compact form is only used to encode unsigned 256-bit numbers which
// represent difficulty targets, thus there really is not a need for a sign
// bit, but it is implemented here to stay consistent with the reference
// encoding.  TargetFromBits rejects negative values.
func CompactToBig(compact uint32) *big.Int {
	// Extract the mantissa, sign bit, and exponent.
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes to represent the full 256-bit number.  So,
	// treat the exponent as the number of bytes and shift the mantissa
	// right or left accordingly.  This is equivalent to:
	// N = mantissa * 256^(exponent-3)
	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	// Make it negative if the sign bit is set.
	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number.  The compact representation only provides 23 bits
// of precision, so values larger than (2^23 - 1) only encode the most
// significant digits of the number.  The discarded digits are truncated, so
// the encoded value never exceeds N.  See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	// No need to do any work if it's zero.
	if n.Sign() == 0 {
		return 0
	}

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes.  So, shift the number right or left
	// accordingly.  This is equivalent to:
	// mantissa = mantissa / 256^(exponent-3)
	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		// Use a copy to avoid modifying the caller's original number.
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23-bits, so divide the number by 256
	// and increment the exponent accordingly.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	// Pack the exponent, sign bit, and mantissa into an unsigned 32-bit
	// int and return it.
	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// CalcWork calculates a work value from difficulty bits.  Increasing the
// difficulty for generating a block means decreasing the value which the
// generated hash must be less than.  This difficulty target is stored in each
// block header using a compact representation as described in the documentation
// for CompactToBig.  The main chain is selected by choosing the chain that has
// the most proof of work (highest difficulty).  Since a lower target difficulty
// value equates to higher actual difficulty, the work value which will be
// accumulated must be the inverse of the difficulty.  Also, in order to avoid
// potential division by zero and really small floating point numbers, the
// result adds 1 to the denominator and multiplies the numerator by 2^256.
func CalcWork(bits uint32) *big.Int {
	// Return a work value of zero if the passed difficulty bits represent
	// a negative number. Note this should not happen in practice with valid
	// blocks, but an invalid block could trigger it.
	difficultyNum := CompactToBig(bits)
	if difficultyNum.Sign() <= 0 {
		return big.NewInt(0)
	}

	// (1 << 256) / (difficultyNum + 1)
	denominator := new(big.Int).Add(difficultyNum, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

// TargetFromBits decodes compact bits into a target, rejecting encodings that
// are negative, zero, wider than 256 bits or above the proof of work limit.
func TargetFromBits(bits uint32, powLimit *big.Int) (*big.Int, error) {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		str := fmt.Sprintf("target difficulty bits %08x decode to a "+
			"non-positive target", bits)
		return nil, ruleError(ErrInvalidTarget, str)
	}
	if target.BitLen() > 256 {
		str := fmt.Sprintf("target difficulty bits %08x overflow 256 bits",
			bits)
		return nil, ruleError(ErrInvalidTarget, str)
	}
	if powLimit != nil && target.Cmp(powLimit) > 0 {
		str := fmt.Sprintf("target difficulty of %064x is higher than "+
			"max of %064x", target, powLimit)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}
	return target, nil
}

// retargetTarget scales the tip target by adjustedTimespan/targetTimespan and
// limits the result to the proof of work limit.  The multiplication happens
// before the division and the division truncates, so every node rounds the
// new target down in exactly the same way.
func retargetTarget(tip *Header, adjustedTimespan int64,
	rules *chaincfg.ConsensusRuleSet) (uint32, error) {

	oldTarget := CompactToBig(tip.Bits)
	if oldTarget.Sign() <= 0 {
		str := fmt.Sprintf("tip %d has invalid target bits %08x",
			tip.Height, tip.Bits)
		return 0, ruleError(ErrInvalidTarget, str)
	}

	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(adjustedTimespan))
	newTarget.Div(newTarget, big.NewInt(rules.TargetTimespanSecs()))

	// Limit new value to the proof of work limit.
	if newTarget.Cmp(rules.PowLimit) > 0 {
		newTarget.Set(rules.PowLimit)
	}

	// Log new target difficulty and return it.  The new target logging is
	// intentionally converting the bits back to a number instead of using
	// newTarget since conversion to the compact representation loses
	// precision.
	newTargetBits := BigToCompact(newTarget)
	log.Debugf("Old target %08x (%064x)", tip.Bits, oldTarget)
	log.Debugf("New target %08x (%064x)", newTargetBits, CompactToBig(newTargetBits))
	return newTargetBits, nil
}

// calcLegacyRequiredDifficulty implements the periodic retarget: the target
// only changes every DifficultyAdjustmentInterval blocks and then by at most
// the rule-set's adjustment factor.
func calcLegacyRequiredDifficulty(tip *Header, lastRetargetTime int64,
	rules *chaincfg.ConsensusRuleSet) (uint32, error) {

	// Return the previous block's difficulty requirements if this block
	// is not at a difficulty retarget interval.
	nextHeight := tip.Height + 1
	if int64(nextHeight)%rules.DifficultyAdjustmentInterval() != 0 {
		return tip.Bits, nil
	}

	// Limit the amount of adjustment that can occur to the previous
	// difficulty.
	actualTimespan := tip.Timestamp - lastRetargetTime
	adjustedTimespan := actualTimespan
	minTimespan := rules.MinLegacyTimespan(nextHeight)
	maxTimespan := rules.MaxLegacyTimespan()
	if actualTimespan < minTimespan {
		adjustedTimespan = minTimespan
	} else if actualTimespan > maxTimespan {
		adjustedTimespan = maxTimespan
	}

	log.Debugf("Legacy difficulty retarget at block height %d", nextHeight)
	log.Debugf("Actual timespan %v, adjusted timespan %v, target timespan %v",
		time.Duration(actualTimespan)*time.Second,
		time.Duration(adjustedTimespan)*time.Second,
		rules.PowTargetTimespan)

	return retargetTarget(tip, adjustedTimespan, rules)
}

// calcDigishieldRequiredDifficulty implements the per-block Digishield
// retarget.  The observed timespan is pulled towards the target by an
// amplitude filter before being limited to [3/4, 4/3] of the target.
func calcDigishieldRequiredDifficulty(tip *Header, lastRetargetTime int64,
	rules *chaincfg.ConsensusRuleSet) (uint32, error) {

	targetTimespan := rules.TargetTimespanSecs()
	actualTimespan := tip.Timestamp - lastRetargetTime

	// Go integer division truncates toward zero, which the amplitude
	// filter depends on for negative deviations.
	modulatedTimespan := targetTimespan + (actualTimespan-targetTimespan)/8

	minTimespan := targetTimespan * 3 / 4
	maxTimespan := targetTimespan * 4 / 3
	if modulatedTimespan < minTimespan {
		modulatedTimespan = minTimespan
	} else if modulatedTimespan > maxTimespan {
		modulatedTimespan = maxTimespan
	}

	log.Debugf("Digishield difficulty retarget at block height %d",
		tip.Height+1)
	log.Debugf("Actual timespan %v, modulated timespan %v, target timespan %v",
		time.Duration(actualTimespan)*time.Second,
		time.Duration(modulatedTimespan)*time.Second,
		rules.PowTargetTimespan)

	return retargetTarget(tip, modulatedTimespan, rules)
}

// CalcNextRequiredDifficulty calculates the compact target required of the
// block following tip under the passed rule-set.  lastRetargetTime is the
// timestamp of the block the legacy and Digishield retargets measure from;
// window supplies the ancestors LWMA averages over.
//
// The algorithm is chosen by the rule-set flags in priority order: LWMA,
// then Digishield, then the legacy periodic retarget.  The result never
// exceeds the rule-set's proof of work limit.
//
// This function is safe for concurrent access.
func CalcNextRequiredDifficulty(tip *Header, lastRetargetTime int64,
	rules *chaincfg.ConsensusRuleSet, window AncestorWindow) (uint32, error) {

	if tip == nil || rules == nil {
		return 0, AssertError("difficulty requested without a tip or " +
			"rule-set")
	}
	if tip.Height < 0 {
		str := fmt.Sprintf("tip height %d is negative", tip.Height)
		return 0, ruleError(ErrInvalidHeight, str)
	}

	switch {
	case rules.LWMADifficultyCalculation:
		return calcLWMARequiredDifficulty(tip, rules, window)

	case rules.DigishieldDifficultyCalculation:
		return calcDigishieldRequiredDifficulty(tip, lastRetargetTime, rules)

	default:
		return calcLegacyRequiredDifficulty(tip, lastRetargetTime, rules)
	}
}

// findPrevTestNetDifficulty returns the difficulty of the most recent block
// at or below tip which did not have the special testnet minimum difficulty
// rule applied.
func findPrevTestNetDifficulty(tip *Header, window AncestorWindow,
	rules *chaincfg.ConsensusRuleSet) uint32 {

	interval := rules.DifficultyAdjustmentInterval()
	node := tip
	for i := 0; node != nil && int64(node.Height)%interval != 0 &&
		node.Bits == rules.PowLimitBits; i++ {

		if i >= windowLen(window) {
			node = nil
			break
		}
		node = window.Ancestor(i)
	}

	// Return the found difficulty or the minimum difficulty if no
	// appropriate block was found.
	if node == nil {
		return rules.PowLimitBits
	}
	return node.Bits
}

// lastRetargetTime returns the timestamp of the block the legacy and
// Digishield retargets measure the actual timespan from.
func lastRetargetTime(tip *Header, window AncestorWindow,
	rules *chaincfg.ConsensusRuleSet) (int64, error) {

	interval := rules.DifficultyAdjustmentInterval()
	if rules.DigishieldDifficultyCalculation {
		interval = 1
	}
	nextHeight := int64(tip.Height) + 1
	if nextHeight%interval != 0 {
		return tip.Timestamp, nil
	}

	// Go back the full period unless it's the first retarget after
	// genesis, which prevents an attacker from picking the first
	// timestamp of the period.
	blocksToGoBack := interval
	if nextHeight == interval {
		blocksToGoBack = interval - 1
	}
	if blocksToGoBack == 0 {
		return tip.Timestamp, nil
	}

	if err := verifyWindow(tip, window, int(blocksToGoBack)); err != nil {
		return 0, err
	}
	return window.Ancestor(int(blocksToGoBack - 1)).Timestamp, nil
}

// NextWorkRequired returns the compact target required of a block built on
// tip with the passed timestamp.  It resolves the rule-set governing the new
// block, applies the network-wide special cases (genesis, no-retarget
// networks and testnet minimum difficulty), derives the last retarget time
// from the ancestor window and then defers to CalcNextRequiredDifficulty.
//
// A nil tip requests the difficulty of the genesis block.
func NextWorkRequired(params *chaincfg.Params, tip *Header, newBlockTime int64,
	window AncestorWindow) (uint32, error) {

	// Genesis block.
	if tip == nil {
		rules, err := params.RuleSetForHeight(0)
		if err != nil {
			return 0, ruleError(ErrInvalidHeight, err.Error())
		}
		return rules.PowLimitBits, nil
	}

	rules, err := params.RuleSetForHeight(tip.Height + 1)
	if err != nil {
		return 0, ruleError(ErrInvalidHeight, err.Error())
	}

	// Emulate the regtest behavior of no difficulty retargeting.
	if params.PowNoRetargeting {
		return rules.PowLimitBits, nil
	}

	if params.ReduceMinDifficulty {
		// Return minimum difficulty when more than the desired amount
		// of time has elapsed without mining a block.
		reductionTime := int64(params.MinDiffReductionTime / time.Second)
		if newBlockTime > tip.Timestamp+reductionTime {
			return rules.PowLimitBits, nil
		}

		// The block was mined within the desired timeframe, so return
		// the difficulty for the last block which did not have the
		// special minimum difficulty rule applied.
		legacy := !rules.LWMADifficultyCalculation &&
			!rules.DigishieldDifficultyCalculation
		nextHeight := int64(tip.Height) + 1
		if legacy && nextHeight%rules.DifficultyAdjustmentInterval() != 0 {
			return findPrevTestNetDifficulty(tip, window, rules), nil
		}
	}

	var retargetTime int64
	if !rules.LWMADifficultyCalculation {
		retargetTime, err = lastRetargetTime(tip, window, rules)
		if err != nil {
			return 0, err
		}
	}

	return CalcNextRequiredDifficulty(tip, retargetTime, rules, window)
}
