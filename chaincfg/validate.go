// Copyright (c) 2017 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"fmt"
	"time"

	"github.com/whippetcoin/whippetd/whiputil"
)

// maxTailHalvings keeps reward shifts well inside an int64.
const maxTailHalvings = 62

func ruleSetError(height int32, format string, args ...interface{}) error {
	return fmt.Errorf("%w: rule-set at height %d: %s", ErrInvalidRuleSets,
		height, fmt.Sprintf(format, args...))
}

// validateRuleSet checks the fields of a single rule-set.
func validateRuleSet(r *ConsensusRuleSet) error {
	h := r.HeightEffective
	if r.SubsidyHalvingInterval <= 0 {
		return ruleSetError(h, "non-positive halving interval %d",
			r.SubsidyHalvingInterval)
	}
	if r.SubsidyBase <= 0 || r.SubsidyTail <= 0 {
		return ruleSetError(h, "subsidy base and tail must be positive")
	}
	if r.SubsidyBase >= whiputil.MaxAtoms/whiputil.AtomsPerCoin {
		return ruleSetError(h, "subsidy base %d exceeds the money range",
			r.SubsidyBase)
	}
	if r.SubsidyTail > r.SubsidyBase {
		return ruleSetError(h, "subsidy tail %d exceeds base %d",
			r.SubsidyTail, r.SubsidyBase)
	}
	if r.SubsidyTailHalvings <= 0 || r.SubsidyTailHalvings > maxTailHalvings {
		return ruleSetError(h, "tail halvings %d out of range",
			r.SubsidyTailHalvings)
	}
	if _, ok := subsidyEraStrings[r.SubsidyEra]; !ok {
		return ruleSetError(h, "unknown subsidy era %d", r.SubsidyEra)
	}
	if r.PowTargetSpacing < time.Second || r.PowTargetTimespan < r.PowTargetSpacing {
		return ruleSetError(h, "target spacing %v and timespan %v are "+
			"inconsistent", r.PowTargetSpacing, r.PowTargetTimespan)
	}
	if r.PowTargetTimespan%r.PowTargetSpacing != 0 {
		return ruleSetError(h, "timespan %v is not a multiple of spacing %v",
			r.PowTargetTimespan, r.PowTargetSpacing)
	}
	if r.RetargetAdjustmentFactor <= 1 {
		return ruleSetError(h, "retarget adjustment factor must exceed 1")
	}
	lastDamper := int32(-1)
	for _, damper := range r.LegacyRetargetDampers {
		if damper.FromHeight <= lastDamper {
			return ruleSetError(h, "retarget dampers are not ordered")
		}
		if damper.MinTimespanDivisor <= 0 {
			return ruleSetError(h, "non-positive damper divisor")
		}
		lastDamper = damper.FromHeight
	}
	if r.LWMADifficultyCalculation && r.DigishieldDifficultyCalculation {
		return ruleSetError(h, "LWMA and Digishield are mutually exclusive")
	}
	if r.LWMADifficultyCalculation && r.LWMAWindow <= 0 {
		return ruleSetError(h, "LWMA window must be positive")
	}
	if r.PowLimit == nil || r.PowLimit.Sign() <= 0 {
		return ruleSetError(h, "missing proof of work limit")
	}
	if r.PowLimit.BitLen() > 256 {
		return ruleSetError(h, "proof of work limit exceeds 256 bits")
	}
	return nil
}

// ValidateRuleSets ensures a hard fork table is ordered by strictly
// increasing HeightEffective, starts at the genesis block and that every
// rule-set is internally consistent.
func ValidateRuleSets(ruleSets []ConsensusRuleSet) error {
	if len(ruleSets) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidRuleSets)
	}
	if ruleSets[0].HeightEffective != 0 {
		return fmt.Errorf("%w: first rule-set starts at height %d, not 0",
			ErrInvalidRuleSets, ruleSets[0].HeightEffective)
	}
	for i := range ruleSets {
		if i > 0 && ruleSets[i].HeightEffective <= ruleSets[i-1].HeightEffective {
			return fmt.Errorf("%w: height %d is not above %d",
				ErrInvalidRuleSets, ruleSets[i].HeightEffective,
				ruleSets[i-1].HeightEffective)
		}
		if err := validateRuleSet(&ruleSets[i]); err != nil {
			return err
		}
	}
	return nil
}
