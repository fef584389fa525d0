// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain_test

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
	"github.com/whippetcoin/whippetd/chaincfg"
	"github.com/whippetcoin/whippetd/whiputil"
)

// addToHash treats hash as a little endian 256-bit number and adds n to it.
func addToHash(hash *chainhash.Hash, n int64) {
	sum := blockchain.HashToBig(hash)
	sum.Add(sum, big.NewInt(n))
	b := sum.Bytes()
	var out chainhash.Hash
	for i := 0; i < len(b) && i < chainhash.HashSize; i++ {
		out[i] = b[len(b)-1-i]
	}
	*hash = out
}

// checkRandomizedSubsidies walks heights [from, to] on the main network
// feeding each subsidy back into the previous hash, as a chain of blocks
// paying their full subsidy would.
func checkRandomizedSubsidies(t *testing.T, from, to int32) {
	t.Helper()

	params := &chaincfg.MainNetParams
	var prevHash chainhash.Hash
	var sawBelowMax bool
	for height := from; height <= to; height++ {
		rules, err := params.RuleSetForHeight(height)
		if err != nil {
			t.Fatalf("RuleSetForHeight(%d): %v", height, err)
		}
		subsidy, err := blockchain.CalcBlockSubsidy(height, rules, &prevHash)
		if err != nil {
			t.Fatalf("CalcBlockSubsidy(%d): %v", height, err)
		}

		halvings := height / rules.SubsidyHalvingInterval
		maxReward := whiputil.Coins(1000000 >> uint(halvings))
		if height >= 4500 {
			maxReward = whiputil.Coins(100000 >> uint(halvings))
		}
		if !whiputil.MoneyRange(subsidy) {
			t.Fatalf("height %d: subsidy %v outside money range",
				height, subsidy)
		}
		if subsidy <= 0 || subsidy > maxReward {
			t.Fatalf("height %d: subsidy %v outside (0, %v]", height,
				subsidy, maxReward)
		}
		if subsidy%whiputil.Coins(1) != 0 {
			t.Fatalf("height %d: subsidy %v is not whole coins",
				height, subsidy)
		}
		if subsidy < maxReward {
			sawBelowMax = true
		}

		// Same inputs give the same answer.
		again, err := blockchain.CalcBlockSubsidy(height, rules, &prevHash)
		if err != nil || again != subsidy {
			t.Fatalf("height %d: recomputed subsidy %v (%v) differs "+
				"from %v", height, again, err, subsidy)
		}

		addToHash(&prevHash, int64(subsidy))
	}
	if !sawBelowMax {
		t.Fatalf("no subsidy in [%d, %d] was below the maximum", from, to)
	}
}

func TestSubsidyFirst100k(t *testing.T) {
	checkRandomizedSubsidies(t, 0, 100000)
}

func TestSubsidy100kTo145k(t *testing.T) {
	checkRandomizedSubsidies(t, 100000, 144999)
}

// TestRandomizedSubsidyValues pins the digest mapping so an accidental change
// to it shows up as a consensus break.
func TestRandomizedSubsidyValues(t *testing.T) {
	params := &chaincfg.MainNetParams
	var zeroHash chainhash.Hash
	tests := []struct {
		name     string
		height   int32
		rulesAt  int32
		prevHash *chainhash.Hash
		want     int64
	}{
		{"launch", 1, 0, &zeroHash, 322177},
		{"launch from genesis", 1, 0, params.GenesisHash, 600631},
		{"scaled", 4500, 4500, &zeroHash, 59019},
		{"scaled one halving", 100000, 100000, &zeroHash, 45589},
		{"launch rules tail", 600000, 0, &zeroHash, 9688},
	}

	for _, test := range tests {
		rules, err := params.RuleSetForHeight(test.rulesAt)
		if err != nil {
			t.Fatalf("%s: RuleSetForHeight: %v", test.name, err)
		}
		got, err := blockchain.CalcBlockSubsidy(test.height, rules,
			test.prevHash)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != whiputil.Coins(test.want) {
			t.Errorf("%s: got %v, want %v", test.name, got,
				whiputil.Coins(test.want))
		}
	}
}

// expectedFixedSubsidy is the closed form of the fixed reward schedule.
func expectedFixedSubsidy(height int32, rules *chaincfg.ConsensusRuleSet) whiputil.Amount {
	halvings := height / rules.SubsidyHalvingInterval
	if halvings < 6 {
		return whiputil.Coins(50000 >> uint(halvings))
	}
	return whiputil.Coins(1000)
}

// TestFixedSubsidy checks the fixed reward schedule.  The era is a property
// of the rule-set, so heights below the fork are evaluated with the fixed
// rule-set explicitly.
func TestFixedSubsidy(t *testing.T) {
	params := &chaincfg.MainNetParams
	rules, err := params.RuleSetForHeight(145000)
	if err != nil {
		t.Fatalf("RuleSetForHeight: %v", err)
	}
	if rules.SubsidyEra != chaincfg.SubsidyEraFixed {
		t.Fatalf("height 145000 is in era %v", rules.SubsidyEra)
	}

	interval := params.RuleSets[0].SubsidyHalvingInterval
	tests := []struct {
		height int32
		want   int64
	}{
		{145000, 25000},
		{interval - 1, 50000},
		{interval, 25000},
		{interval * 2, 12500},
		{interval * 5, 1562},
		{interval * 6, 1000},
		{interval * 7, 1000},
		{interval * 20, 1000},
	}

	hashes := []*chainhash.Hash{{}, params.GenesisHash, {0xff, 0x01}}
	for _, test := range tests {
		for _, prevHash := range hashes {
			got, err := blockchain.CalcBlockSubsidy(test.height, rules,
				prevHash)
			if err != nil {
				t.Errorf("height %d: unexpected error: %v",
					test.height, err)
				continue
			}
			if got != whiputil.Coins(test.want) {
				t.Errorf("height %d: got %v, want %v", test.height,
					got, whiputil.Coins(test.want))
			}
			if got != expectedFixedSubsidy(test.height, rules) {
				t.Errorf("height %d: got %v, closed form %v",
					test.height, got,
					expectedFixedSubsidy(test.height, rules))
			}
		}
	}

	// Resolved on the network itself, a height below the fork draws from
	// the scaled randomized era instead.
	below, err := params.RuleSetForHeight(interval - 1)
	if err != nil {
		t.Fatalf("RuleSetForHeight: %v", err)
	}
	if below.SubsidyEra != chaincfg.SubsidyEraScaledRandom {
		t.Errorf("height %d is in era %v, want %v", interval-1,
			below.SubsidyEra, chaincfg.SubsidyEraScaledRandom)
	}
	got, err := blockchain.BlockSubsidy(params, interval-1, &chainhash.Hash{})
	if err != nil {
		t.Fatalf("BlockSubsidy: unexpected error: %v", err)
	}
	if got <= 0 || got > whiputil.Coins(100000) {
		t.Errorf("height %d: subsidy %v outside (0, 100000 WHP]",
			interval-1, got)
	}

	// The fixed era does not need a previous hash at all.
	if _, err := blockchain.CalcBlockSubsidy(200000, rules, nil); err != nil {
		t.Errorf("nil hash in fixed era: unexpected error: %v", err)
	}
}

func TestMaxBlockSubsidy(t *testing.T) {
	params := &chaincfg.MainNetParams
	tests := []struct {
		height int32
		want   int64
	}{
		{0, 1000000},
		{4499, 1000000},
		{4500, 100000},
		{100000, 50000},
		{145000, 25000},
		{700000, 1000},
	}
	for _, test := range tests {
		rules, err := params.RuleSetForHeight(test.height)
		if err != nil {
			t.Fatalf("RuleSetForHeight(%d): %v", test.height, err)
		}
		got, err := blockchain.MaxBlockSubsidy(test.height, rules)
		if err != nil {
			t.Errorf("height %d: unexpected error: %v", test.height, err)
			continue
		}
		if got != whiputil.Coins(test.want) {
			t.Errorf("height %d: got %v, want %v", test.height, got,
				whiputil.Coins(test.want))
		}
	}
}

func TestBlockSubsidyErrors(t *testing.T) {
	params := &chaincfg.MainNetParams

	_, err := blockchain.BlockSubsidy(params, -1, &chainhash.Hash{})
	if !blockchain.IsErrorCode(err, blockchain.ErrInvalidHeight) {
		t.Errorf("negative height: got %v, want ErrInvalidHeight", err)
	}

	_, err = blockchain.BlockSubsidy(params, 10, nil)
	if _, ok := err.(blockchain.AssertError); !ok {
		t.Errorf("randomized era without hash: got %v, want AssertError",
			err)
	}

	_, err = blockchain.CalcBlockSubsidy(10, nil, &chainhash.Hash{})
	if _, ok := err.(blockchain.AssertError); !ok {
		t.Errorf("nil rule-set: got %v, want AssertError", err)
	}
}
