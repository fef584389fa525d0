// Copyright (c) 2013 Conformal Systems LLC.
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
	"github.com/whippetcoin/whippetd/headerdb"
)

// blockArg selects a stored header by height or by hash.
type blockArg struct {
	Block string `positional-arg-name:"block" description:"Height or hash of the block"`
}

// showHeaderCmd defines the configuration options for the showheader
// command.
type showHeaderCmd struct {
	Args blockArg `positional-args:"yes" required:"yes"`
}

// dropAfterCmd defines the configuration options for the dropafter command.
type dropAfterCmd struct {
	Args blockArg `positional-args:"yes" required:"yes"`
}

var (
	// showHeaderCfg defines the configuration options for the command.
	showHeaderCfg showHeaderCmd

	// dropAfterCfg defines the configuration options for the command.
	dropAfterCfg dropAfterCmd
)

// lookupHeader returns the stored header selected by arg, which is either a
// block height or a block hash.
func lookupHeader(store *headerdb.Store, arg string) (*blockchain.Header, error) {
	if len(arg) == chainhash.MaxHashStringSize {
		hash, err := chainhash.NewHashFromStr(arg)
		if err != nil {
			return nil, err
		}
		return store.HeaderByHash(hash)
	}

	height, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a block height nor a "+
			"block hash", arg)
	}
	return store.HeaderByHeight(int32(height))
}

// requiredBits recomputes the compact target the header must carry from the
// stored headers below it.
func requiredBits(store *headerdb.Store, header *blockchain.Header) (uint32, error) {
	var tip *blockchain.Header
	if header.Height > 0 {
		var err error
		tip, err = store.HeaderByHeight(header.Height - 1)
		if err != nil {
			return 0, err
		}
	}

	rules, err := activeNetParams.RuleSetForHeight(header.Height)
	if err != nil {
		return 0, err
	}
	window, err := store.AncestorWindow(tip, ancestorsNeeded(rules))
	if err != nil {
		return 0, err
	}
	return blockchain.NextWorkRequired(activeNetParams, tip,
		header.Timestamp, window)
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *showHeaderCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	store, err := loadHeaderDB(false)
	if err != nil {
		return err
	}
	defer store.Close()

	header, err := lookupHeader(store, cmd.Args.Block)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Height:       %d\n", header.Height)
	fmt.Fprintf(output, "Hash:         %v\n", header.Hash)
	fmt.Fprintf(output, "Time:         %v\n",
		time.Unix(header.Timestamp, 0).UTC())
	fmt.Fprintf(output, "Bits:         %08x\n", header.Bits)
	fmt.Fprintf(output, "Target:       %064x\n",
		blockchain.CompactToBig(header.Bits))
	fmt.Fprintf(output, "Work:         %v\n", blockchain.CalcWork(header.Bits))

	required, err := requiredBits(store, header)
	if err != nil {
		fmt.Fprintf(output, "Required:     unknown (%v)\n", err)
		return nil
	}
	fmt.Fprintf(output, "Required:     %08x\n", required)
	return nil
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *dropAfterCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	store, err := loadHeaderDB(false)
	if err != nil {
		return err
	}
	defer store.Close()

	header, err := lookupHeader(store, cmd.Args.Block)
	if err != nil {
		return err
	}

	dropped, err := store.DropAfter(header.Height)
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "Dropped %d headers, new tip %v (height %d)\n",
		dropped, header.Hash, header.Height)
	return nil
}
