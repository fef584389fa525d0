// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/whippetcoin/whippetd/blockchain"
	"github.com/whippetcoin/whippetd/chaincfg"
	wlog "github.com/whippetcoin/whippetd/internal/log"
)

// verifyCmd defines the configuration options for the verify command.
type verifyCmd struct {
	From int32 `long:"from" description:"Height of the first header to verify"`
	PoW  bool  `long:"pow" description:"Also check the header hashes against their targets"`
}

// verifyCfg defines the configuration options for the command.
var verifyCfg verifyCmd

// ancestorsNeeded returns how many ancestors the difficulty of a block under
// the rule-set may depend on.
func ancestorsNeeded(rules *chaincfg.ConsensusRuleSet) int {
	n := int(rules.DifficultyAdjustmentInterval())
	if rules.LWMADifficultyCalculation && int(rules.LWMAWindow) > n {
		n = int(rules.LWMAWindow)
	}
	return n
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *verifyCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	store, err := loadHeaderDB(false)
	if err != nil {
		return err
	}
	defer store.Close()

	flags := blockchain.BFNoPoWCheck
	if cmd.PoW {
		flags = blockchain.BFNone
	}

	var tip *blockchain.Header
	if cmd.From > 0 {
		tip, err = store.HeaderByHeight(cmd.From - 1)
		if err != nil {
			return err
		}
	}

	params := activeNetParams
	var checked, mismatches uint64
	err = store.ForEach(cmd.From, func(header *blockchain.Header) error {
		rules, err := params.RuleSetForHeight(header.Height)
		if err != nil {
			return err
		}
		window, err := store.AncestorWindow(tip, ancestorsNeeded(rules))
		if err != nil {
			return err
		}

		err = blockchain.CheckHeader(params, header, tip, window, flags)
		var ruleErr blockchain.RuleError
		switch {
		case errors.As(err, &ruleErr):
			mismatches++
			fmt.Fprintf(output, "height %d (%v): %v\n", header.Height,
				header.Hash, ruleErr)
		case err != nil:
			return err
		}

		checked++
		tip = header
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Verified %d %s, %d %s\n", checked,
		wlog.PickNoun(checked, "header", "headers"), mismatches,
		wlog.PickNoun(mismatches, "mismatch", "mismatches"))
	if mismatches > 0 {
		return fmt.Errorf("%d %s failed verification", mismatches,
			wlog.PickNoun(mismatches, "header", "headers"))
	}
	return nil
}
