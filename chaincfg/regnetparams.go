// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "time"

// RegressionNetParams defines the network parameters for the regression test
// whippet network.  Not to be confused with the test whippet network, this
// network is sometimes simply called "testnet".
var RegressionNetParams = Params{
	Name:        "regtest",
	Net:         RegTest,
	DefaultPort: "18444",

	// Chain parameters
	GenesisHash:      newHashFromStr("3d2160a3b5dc4a9d62e7e66a295f70313ac808440ef7400d6c0772171ce973a5"),
	GenesisTimestamp: 1296688602,
	GenesisBits:      0x207fffff,
	RuleSets: []ConsensusRuleSet{{
		HeightEffective:        0,
		SubsidyHalvingInterval: 150,
		SubsidyEra:             SubsidyEraFixed,
		SubsidyBase:            50000,
		SubsidyTail:            1000,
		SubsidyTailHalvings:    6,

		PowTargetTimespan:        time.Hour * 4,
		PowTargetSpacing:         time.Minute,
		RetargetAdjustmentFactor: 4,

		AllowLegacyBlocks: true,

		PowLimit:     regressionPowLimit,
		PowLimitBits: 0x207fffff,
	}},
	PowNoRetargeting:     true,
	ReduceMinDifficulty:  true,
	MinDiffReductionTime: time.Minute * 2, // TimePerBlock * 2
}
