// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a whippet block can
	// have for the main network.  It is the value 2^236 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// testNetPowLimit is the highest proof of work value a whippet block
	// can have for the test network.  It is the value 2^236 - 1.
	testNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// regressionPowLimit is the highest proof of work value a whippet block
	// can have for the regression test network.  It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// WhippetNet represents which whippet network a message belongs to.
type WhippetNet uint32

// Constants used to indicate the message whippet network.  They can also be
// used to seek to the next message when a stream's state is unknown.
const (
	// MainNet represents the main whippet network.
	MainNet WhippetNet = 0xc0c0c0c0

	// TestNet represents the test network.
	TestNet WhippetNet = 0xdcb7c1fc

	// RegTest represents the regression test network.
	RegTest WhippetNet = 0xdab5bffa
)

// String returns the WhippetNet in human-readable form.
func (n WhippetNet) String() string {
	switch n {
	case MainNet:
		return "MainNet"
	case TestNet:
		return "TestNet"
	case RegTest:
		return "RegTest"
	}
	return fmt.Sprintf("Unknown WhippetNet (%d)", uint32(n))
}

// SubsidyEra classifies how a rule-set mints the block reward.
type SubsidyEra uint8

const (
	// SubsidyEraLegacyRandom is the launch schedule: rewards are drawn
	// from the previous block hash with the full-size maximum.
	SubsidyEraLegacyRandom SubsidyEra = iota

	// SubsidyEraScaledRandom keeps the hash-drawn rewards but with the
	// maximum reduced to one tenth.
	SubsidyEraScaledRandom

	// SubsidyEraFixed pays an exact halving schedule with a constant
	// tail emission.
	SubsidyEraFixed
)

var subsidyEraStrings = map[SubsidyEra]string{
	SubsidyEraLegacyRandom: "legacy-random",
	SubsidyEraScaledRandom: "scaled-random",
	SubsidyEraFixed:        "fixed",
}

// String returns the SubsidyEra in human-readable form.
func (e SubsidyEra) String() string {
	if s, ok := subsidyEraStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown SubsidyEra (%d)", uint8(e))
}

// Randomized returns whether rewards in the era are derived from the hash of
// the previous block rather than paid as an exact amount.
func (e SubsidyEra) Randomized() bool {
	return e != SubsidyEraFixed
}

// RetargetDamper bounds how far the legacy retarget may shorten the timespan
// for blocks at or above FromHeight.  The lower bound on the adjusted
// timespan is the target timespan divided by MinTimespanDivisor.
type RetargetDamper struct {
	FromHeight         int32
	MinTimespanDivisor int64
}

// ConsensusRuleSet holds the consensus rules in effect from HeightEffective
// until the next rule-set in the network's table takes over.  Rule-sets are
// shared, read-only values and must never be modified once the owning Params
// has been registered.
type ConsensusRuleSet struct {
	// HeightEffective is the first block height governed by the rule-set.
	HeightEffective int32

	// SubsidyHalvingInterval is the number of blocks per halving epoch.
	SubsidyHalvingInterval int32

	// SubsidyEra selects between hash-derived and fixed rewards.
	SubsidyEra SubsidyEra

	// SubsidyBase is the reward, in whole coins, before any halving.  For
	// randomized eras it is the maximum a block may draw.
	SubsidyBase int64

	// SubsidyTail is the reward, in whole coins, once SubsidyTailHalvings
	// halvings have passed.  For randomized eras it is the maximum.
	SubsidyTail int64

	// SubsidyTailHalvings is the number of halvings after which the tail
	// reward replaces the halving schedule.
	SubsidyTailHalvings int32

	// PowTargetTimespan is the desired amount of time that should elapse
	// before the block difficulty requirement is examined to determine
	// how it should be changed in order to maintain the desired block
	// generation rate.
	PowTargetTimespan time.Duration

	// PowTargetSpacing is the desired amount of time to generate each
	// block.
	PowTargetSpacing time.Duration

	// RetargetAdjustmentFactor is the adjustment factor used to limit
	// the maximum amount of adjustment that can occur between legacy
	// difficulty retargets.
	RetargetAdjustmentFactor int64

	// LegacyRetargetDampers tightens the lower bound of the legacy
	// retarget for early heights.  Entries are ordered by FromHeight.
	// When empty, RetargetAdjustmentFactor bounds both sides.
	LegacyRetargetDampers []RetargetDamper

	// AllowLegacyBlocks indicates whether non-merge-mined blocks are
	// accepted while the rule-set is active.
	AllowLegacyBlocks bool

	// DigishieldDifficultyCalculation enables the per-block Digishield
	// retarget.
	DigishieldDifficultyCalculation bool

	// LWMADifficultyCalculation enables the linearly weighted moving
	// average retarget.  It takes priority over Digishield.
	LWMADifficultyCalculation bool

	// LWMAWindow is the number of blocks averaged by the LWMA retarget.
	LWMAWindow int32

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32
}

// DifficultyAdjustmentInterval returns the number of blocks between legacy
// difficulty retargets.
func (r *ConsensusRuleSet) DifficultyAdjustmentInterval() int64 {
	return int64(r.PowTargetTimespan / r.PowTargetSpacing)
}

// TargetTimespanSecs returns the target timespan in whole seconds.
func (r *ConsensusRuleSet) TargetTimespanSecs() int64 {
	return int64(r.PowTargetTimespan / time.Second)
}

// TargetSpacingSecs returns the target block spacing in whole seconds.
func (r *ConsensusRuleSet) TargetSpacingSecs() int64 {
	return int64(r.PowTargetSpacing / time.Second)
}

// MinLegacyTimespan returns the smallest adjusted timespan the legacy
// retarget may use when computing the target for the block at nextHeight.
func (r *ConsensusRuleSet) MinLegacyTimespan(nextHeight int32) int64 {
	divisor := r.RetargetAdjustmentFactor
	for _, damper := range r.LegacyRetargetDampers {
		if nextHeight < damper.FromHeight {
			break
		}
		divisor = damper.MinTimespanDivisor
	}
	return r.TargetTimespanSecs() / divisor
}

// MaxLegacyTimespan returns the largest adjusted timespan the legacy
// retarget may use.
func (r *ConsensusRuleSet) MaxLegacyTimespan() int64 {
	return r.TargetTimespanSecs() * r.RetargetAdjustmentFactor
}

// Params defines a whippet network by its parameters.  These parameters may be
// used by whippet applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net WhippetNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// GenesisTimestamp and GenesisBits describe the genesis header.
	GenesisTimestamp int64
	GenesisBits      uint32

	// RuleSets is the hard fork table, ordered by HeightEffective.  The
	// first entry must be effective from height 0.
	RuleSets []ConsensusRuleSet

	// PowNoRetargeting defines whether the network has difficulty
	// retargeting enabled or not.  This should only be set to true for
	// regtest like networks.
	PowNoRetargeting bool

	// ReduceMinDifficulty defines whether the network should reduce the
	// minimum required difficulty after a long enough period of time has
	// passed without finding a block.  This is really only useful for test
	// networks and should not be set on a main network.
	ReduceMinDifficulty bool

	// MinDiffReductionTime is the amount of time after which the minimum
	// required difficulty should be reduced when a block hasn't been found.
	//
	// NOTE: This only applies if ReduceMinDifficulty is true.
	MinDiffReductionTime time.Duration
}

var (
	// ErrInvalidHeight describes an error where a rule-set was requested
	// for a height that no rule-set covers, such as a negative height.
	ErrInvalidHeight = errors.New("invalid block height")

	// ErrInvalidRuleSets describes an error where a network's hard fork
	// table violates one of its structural invariants.
	ErrInvalidRuleSets = errors.New("invalid consensus rule-sets")
)

// RuleSetForHeight returns the consensus rule-set governing the block at the
// passed height: the rule-set with the greatest HeightEffective not exceeding
// height.
//
// This function is safe for concurrent access.
func (p *Params) RuleSetForHeight(height int32) (*ConsensusRuleSet, error) {
	if height < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeight, height)
	}
	idx := sort.Search(len(p.RuleSets), func(i int) bool {
		return p.RuleSets[i].HeightEffective > height
	}) - 1
	if idx < 0 {
		return nil, fmt.Errorf("%w: no rule-set covers height %d on %s",
			ErrInvalidHeight, height, p.Name)
	}
	return &p.RuleSets[idx], nil
}

// ForkHeights returns the heights at which the network's rule-sets become
// effective, in ascending order.
func (p *Params) ForkHeights() []int32 {
	heights := make([]int32, 0, len(p.RuleSets))
	for i := range p.RuleSets {
		heights = append(heights, p.RuleSets[i].HeightEffective)
	}
	return heights
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}
