// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/whippetcoin/whippetd/chaincfg"
)

// paramsCmd defines the configuration options for the params command.
type paramsCmd struct {
	Height int32 `long:"height" default:"-1" description:"Only show the rule-set governing the block at this height"`
}

// paramsCfg defines the configuration options for the command.
var paramsCfg paramsCmd

// difficultyAlgorithm names the retarget algorithm selected by a rule-set.
func difficultyAlgorithm(rules *chaincfg.ConsensusRuleSet) string {
	switch {
	case rules.LWMADifficultyCalculation:
		return fmt.Sprintf("lwma (window %d)", rules.LWMAWindow)
	case rules.DigishieldDifficultyCalculation:
		return "digishield"
	}
	return "legacy"
}

// printRuleSet writes the fields of a rule-set to the command output.
func printRuleSet(rules *chaincfg.ConsensusRuleSet) {
	fmt.Fprintf(output, "Rule-set effective at height %d\n",
		rules.HeightEffective)
	fmt.Fprintf(output, "  Subsidy era:         %v\n", rules.SubsidyEra)
	fmt.Fprintf(output, "  Halving interval:    %d\n",
		rules.SubsidyHalvingInterval)
	fmt.Fprintf(output, "  Subsidy base:        %d\n", rules.SubsidyBase)
	fmt.Fprintf(output, "  Subsidy tail:        %d after %d halvings\n",
		rules.SubsidyTail, rules.SubsidyTailHalvings)
	fmt.Fprintf(output, "  Difficulty:          %s\n",
		difficultyAlgorithm(rules))
	fmt.Fprintf(output, "  Target timespan:     %v\n",
		rules.PowTargetTimespan)
	fmt.Fprintf(output, "  Target spacing:      %v\n", rules.PowTargetSpacing)
	fmt.Fprintf(output, "  Retarget interval:   %d\n",
		rules.DifficultyAdjustmentInterval())
	fmt.Fprintf(output, "  Allow legacy blocks: %v\n", rules.AllowLegacyBlocks)
	fmt.Fprintf(output, "  Pow limit bits:      %08x\n", rules.PowLimitBits)
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *paramsCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	params := activeNetParams
	fmt.Fprintf(output, "Network:             %s (%v)\n", params.Name,
		params.Net)
	fmt.Fprintf(output, "Genesis:             %v\n", params.GenesisHash)
	fmt.Fprintf(output, "Fork heights:        %v\n", params.ForkHeights())
	fmt.Fprintf(output, "No retargeting:      %v\n", params.PowNoRetargeting)
	if params.ReduceMinDifficulty {
		fmt.Fprintf(output, "Min difficulty:      after %v\n",
			params.MinDiffReductionTime.Round(time.Second))
	}

	if cmd.Height >= 0 {
		rules, err := params.RuleSetForHeight(cmd.Height)
		if err != nil {
			return err
		}
		printRuleSet(rules)
		return nil
	}
	for i := range params.RuleSets {
		printRuleSet(&params.RuleSets[i])
	}
	return nil
}
