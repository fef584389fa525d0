// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
)

// subsidyCmd defines the configuration options for the subsidy command.
type subsidyCmd struct {
	Height   int32  `long:"height" required:"true" description:"Height of the block"`
	PrevHash string `long:"prevhash" description:"Hash of the previous block, required in the randomized eras"`
}

// subsidyCfg defines the configuration options for the command.
var subsidyCfg subsidyCmd

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *subsidyCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	rules, err := activeNetParams.RuleSetForHeight(cmd.Height)
	if err != nil {
		return err
	}

	var prevHash *chainhash.Hash
	if cmd.PrevHash != "" {
		prevHash, err = chainhash.NewHashFromStr(cmd.PrevHash)
		if err != nil {
			return fmt.Errorf("invalid previous block hash: %w", err)
		}
	} else if rules.SubsidyEra.Randomized() {
		return fmt.Errorf("the %v subsidy era at height %d derives the "+
			"reward from the previous block -- --prevhash is required",
			rules.SubsidyEra, cmd.Height)
	}

	subsidy, err := blockchain.CalcBlockSubsidy(cmd.Height, rules, prevHash)
	if err != nil {
		return err
	}
	maxSubsidy, err := blockchain.MaxBlockSubsidy(cmd.Height, rules)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Height:       %d\n", cmd.Height)
	fmt.Fprintf(output, "Subsidy era:  %v\n", rules.SubsidyEra)
	fmt.Fprintf(output, "Subsidy:      %v\n", subsidy)
	fmt.Fprintf(output, "Era maximum:  %v\n", maxSubsidy)
	return nil
}
