// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "time"

var testNetGenesisRules = ConsensusRuleSet{
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

	AllowLegacyBlocks: true,

	PowLimit:     testNetPowLimit,
	PowLimitBits: 0x1e0fffff,
}

// testNetDigishieldRules exercises Digishield on the test network before LWMA
// takes over.
var testNetDigishieldRules = func() ConsensusRuleSet {
	r := testNetGenesisRules
	r.HeightEffective = 2000
	r.PowTargetTimespan = time.Minute
	r.DigishieldDifficultyCalculation = true
	return r
}()

var testNetScaledRewardRules = func() ConsensusRuleSet {
	r := testNetDigishieldRules
	r.HeightEffective = 4500
	r.SubsidyEra = SubsidyEraScaledRandom
	r.SubsidyBase = 100000
	r.SubsidyTail = 1000
	return r
}()

var testNetFixedRewardRules = func() ConsensusRuleSet {
	r := testNetScaledRewardRules
	r.HeightEffective = 145000
	r.SubsidyEra = SubsidyEraFixed
	r.SubsidyBase = 50000
	r.SubsidyTail = 1000
	return r
}()

var testNetLWMARules = func() ConsensusRuleSet {
	r := testNetFixedRewardRules
	r.HeightEffective = 200000
	r.DigishieldDifficultyCalculation = false
	r.LWMADifficultyCalculation = true
	r.LWMAWindow = 240
	r.AllowLegacyBlocks = false
	return r
}()

// TestNetParams defines the network parameters for the test whippet network.
var TestNetParams = Params{
	Name:        "testnet",
	Net:         TestNet,
	DefaultPort: "44556",

	// Chain parameters
	GenesisHash:      newHashFromStr("bb0a78264637406b6360aad926284d544d7049f45189db5664f3c4d07350559e"),
	GenesisTimestamp: 1391503289,
	GenesisBits:      0x1e0ffff0,
	RuleSets: []ConsensusRuleSet{
		testNetGenesisRules,
		testNetDigishieldRules,
		testNetScaledRewardRules,
		testNetFixedRewardRules,
		testNetLWMARules,
	},
	PowNoRetargeting:     false,
	ReduceMinDifficulty:  true,
	MinDiffReductionTime: time.Minute * 2, // TimePerBlock * 2
}
