// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
	"github.com/whippetcoin/whippetd/chaincfg"
	"github.com/whippetcoin/whippetd/whiputil"
)

func TestCheckProofOfWork(t *testing.T) {
	powLimit := chaincfg.RegressionNetParams.RuleSets[0].PowLimit
	var lowHash chainhash.Hash
	lowHash[0] = 0x01
	var highHash chainhash.Hash
	for i := range highHash {
		highHash[i] = 0xff
	}

	tests := []struct {
		name string
		hash *chainhash.Hash
		bits uint32
		code blockchain.ErrorCode
		ok   bool
	}{
		{name: "valid", hash: &lowHash, bits: 0x207fffff, ok: true},
		{name: "hash above target", hash: &highHash, bits: 0x207fffff,
			code: blockchain.ErrHighHash},
		{name: "negative target", hash: &lowHash, bits: 0x20800001,
			code: blockchain.ErrUnexpectedDifficulty},
		{name: "above limit", hash: &lowHash, bits: 0x21010000,
			code: blockchain.ErrUnexpectedDifficulty},
	}

	for _, test := range tests {
		err := blockchain.CheckProofOfWork(test.hash, test.bits, powLimit)
		if test.ok {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", test.name, err)
			}
			continue
		}
		if !blockchain.IsErrorCode(err, test.code) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.code)
		}
	}
}

func TestCheckHeader(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	var highHash chainhash.Hash
	for i := range highHash {
		highHash[i] = 0xff
	}

	tip := &blockchain.Header{Height: 10, Timestamp: 1000, Bits: 0x207fffff}
	tests := []struct {
		name   string
		header blockchain.Header
		flags  blockchain.BehaviorFlags
		code   blockchain.ErrorCode
		ok     bool
	}{
		{
			name:   "valid",
			header: blockchain.Header{Height: 11, Timestamp: 1060, Bits: 0x207fffff},
			ok:     true,
		},
		{
			name:   "wrong height",
			header: blockchain.Header{Height: 12, Timestamp: 1060, Bits: 0x207fffff},
			code:   blockchain.ErrInvalidHeight,
		},
		{
			name:   "wrong bits",
			header: blockchain.Header{Height: 11, Timestamp: 1060, Bits: 0x1d00ffff},
			code:   blockchain.ErrUnexpectedDifficulty,
		},
		{
			name: "high hash",
			header: blockchain.Header{Height: 11, Timestamp: 1060,
				Bits: 0x207fffff, Hash: highHash},
			code: blockchain.ErrHighHash,
		},
		{
			name: "high hash without pow check",
			header: blockchain.Header{Height: 11, Timestamp: 1060,
				Bits: 0x207fffff, Hash: highHash},
			flags: blockchain.BFNoPoWCheck,
			ok:    true,
		},
	}

	for _, test := range tests {
		header := test.header
		err := blockchain.CheckHeader(params, &header, tip, nil, test.flags)
		if test.ok {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", test.name, err)
			}
			continue
		}
		if !blockchain.IsErrorCode(err, test.code) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.code)
		}
	}

	// Genesis is checked against a nil tip.
	genesis := &blockchain.Header{Height: 0, Bits: 0x207fffff}
	if err := blockchain.CheckHeaderDifficulty(params, genesis, nil, nil); err != nil {
		t.Errorf("genesis: unexpected error: %v", err)
	}
}

func TestCheckBlockSubsidy(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	var prevHash chainhash.Hash
	subsidy := whiputil.Coins(50000)
	fees := whiputil.Amount(12345)

	tests := []struct {
		name    string
		claimed whiputil.Amount
		fees    whiputil.Amount
		code    blockchain.ErrorCode
		ok      bool
	}{
		{name: "exact", claimed: subsidy + fees, fees: fees, ok: true},
		{name: "under", claimed: subsidy, fees: fees, ok: true},
		{name: "over", claimed: subsidy + fees + 1, fees: fees,
			code: blockchain.ErrBadCoinbaseValue},
		{name: "negative claim", claimed: -1, fees: fees,
			code: blockchain.ErrBadCoinbaseValue},
		{name: "negative fees", claimed: subsidy, fees: -1,
			code: blockchain.ErrBadFees},
		{name: "fees above max", claimed: subsidy,
			fees: whiputil.Amount(whiputil.MaxAtoms),
			code: blockchain.ErrBadFees},
	}

	for _, test := range tests {
		err := blockchain.CheckBlockSubsidy(params, 1, &prevHash,
			test.claimed, test.fees)
		if test.ok {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", test.name, err)
			}
			continue
		}
		if !blockchain.IsErrorCode(err, test.code) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.code)
		}
	}
}
