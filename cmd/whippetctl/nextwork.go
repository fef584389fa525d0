// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/whippetcoin/whippetd/blockchain"
)

// nextWorkCmd defines the configuration options for the nextwork command.
type nextWorkCmd struct {
	Height       int32  `long:"height" required:"true" description:"Height of the tip block"`
	Time         int64  `long:"time" required:"true" description:"Timestamp of the tip block"`
	LastRetarget int64  `long:"lastretarget" required:"true" description:"Timestamp of the block the retarget measures from"`
	Bits         string `long:"bits" required:"true" description:"Compact target of the tip block in hex"`
	RulesHeight  int32  `long:"rulesheight" default:"-1" description:"Use the rule-set governing this height instead of the one after the tip"`
}

// nextWorkCfg defines the configuration options for the command.
var nextWorkCfg nextWorkCmd

// parseBits decodes a compact target written in hex, with or without a 0x
// prefix.
func parseBits(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	bits, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid compact bits %q: %w", s, err)
	}
	return uint32(bits), nil
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *nextWorkCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	bits, err := parseBits(cmd.Bits)
	if err != nil {
		return err
	}
	tip := &blockchain.Header{
		Height:    cmd.Height,
		Timestamp: cmd.Time,
		Bits:      bits,
	}

	rulesHeight := cmd.RulesHeight
	if rulesHeight < 0 {
		rulesHeight = cmd.Height + 1
	}
	rules, err := activeNetParams.RuleSetForHeight(rulesHeight)
	if err != nil {
		return err
	}

	next, err := blockchain.CalcNextRequiredDifficulty(tip, cmd.LastRetarget,
		rules, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Rule-set:     effective at height %d (%s)\n",
		rules.HeightEffective, difficultyAlgorithm(rules))
	fmt.Fprintf(output, "Bits:         %08x\n", next)
	fmt.Fprintf(output, "Target:       %064x\n", blockchain.CompactToBig(next))
	fmt.Fprintf(output, "Work:         %v\n", blockchain.CalcWork(next))
	return nil
}
