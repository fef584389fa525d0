// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "time"

// legacyRetargetDampers reproduces the launch-era retarget limits: the
// timespan may shrink to 1/16th of the target until height 5000, 1/8th until
// height 10000 and 1/4th afterwards.
var legacyRetargetDampers = []RetargetDamper{
	{FromHeight: 0, MinTimespanDivisor: 16},
	{FromHeight: 5001, MinTimespanDivisor: 8},
	{FromHeight: 10001, MinTimespanDivisor: 4},
}

// mainNetGenesisRules governs the main network from the genesis block until
// LWMA activation.
var mainNetGenesisRules = ConsensusRuleSet{
	HeightEffective:        0,
	SubsidyHalvingInterval: 100000,
	SubsidyEra:             SubsidyEraLegacyRandom,
	SubsidyBase:            1000000,
	SubsidyTail:            10000,
	SubsidyTailHalvings:    6,

	PowTargetTimespan:        time.Hour * 4,
	PowTargetSpacing:         time.Minute,
	RetargetAdjustmentFactor: 4,
	LegacyRetargetDampers:    legacyRetargetDampers,

	AllowLegacyBlocks:               true,
	DigishieldDifficultyCalculation: false,
	LWMADifficultyCalculation:       false,

	PowLimit:     mainPowLimit,
	PowLimitBits: 0x1e0fffff,
}

// mainNetLWMARules switches the main network to per-block LWMA retargeting.
var mainNetLWMARules = func() ConsensusRuleSet {
	r := mainNetGenesisRules
	r.HeightEffective = 240
	r.PowTargetTimespan = time.Minute
	r.LWMADifficultyCalculation = true
	r.LWMAWindow = 240
	return r
}()

// mainNetScaledRewardRules cuts the randomized reward ceiling to one tenth.
var mainNetScaledRewardRules = func() ConsensusRuleSet {
	r := mainNetLWMARules
	r.HeightEffective = 4500
	r.SubsidyEra = SubsidyEraScaledRandom
	r.SubsidyBase = 100000
	r.SubsidyTail = 1000
	return r
}()

// mainNetFixedRewardRules replaces randomized rewards with a fixed halving
// schedule.
var mainNetFixedRewardRules = func() ConsensusRuleSet {
	r := mainNetScaledRewardRules
	r.HeightEffective = 145000
	r.SubsidyEra = SubsidyEraFixed
	r.SubsidyBase = 50000
	r.SubsidyTail = 1000
	return r
}()

// mainNetAuxPowRules stops accepting legacy (non merge-mined) blocks.
var mainNetAuxPowRules = func() ConsensusRuleSet {
	r := mainNetFixedRewardRules
	r.HeightEffective = 371337
	r.AllowLegacyBlocks = false
	return r
}()

// MainNetParams defines the network parameters for the main whippet network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         MainNet,
	DefaultPort: "22556",

	// Chain parameters
	GenesisHash:      newHashFromStr("1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691"),
	GenesisTimestamp: 1386325540,
	GenesisBits:      0x1e0ffff0,
	RuleSets: []ConsensusRuleSet{
		mainNetGenesisRules,
		mainNetLWMARules,
		mainNetScaledRewardRules,
		mainNetFixedRewardRules,
		mainNetAuxPowRules,
	},
	PowNoRetargeting:     false,
	ReduceMinDifficulty:  false,
	MinDiffReductionTime: 0, // Does not apply since ReduceMinDifficulty false
}
