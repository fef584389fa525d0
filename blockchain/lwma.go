// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/whippetcoin/whippetd/chaincfg"
)

// maxSolvetimeMultiple caps each LWMA solvetime at this many target spacings
// so a single stalled block cannot drag the average down.
const maxSolvetimeMultiple = 6

// calcLWMARequiredDifficulty implements the linearly weighted moving average
// retarget.  The most recent LWMAWindow blocks, ending with tip, are averaged
// with the newest block weighted highest.  When the chain does not yet hold a
// full window the tip difficulty carries over unchanged.
func calcLWMARequiredDifficulty(tip *Header,
	rules *chaincfg.ConsensusRuleSet, window AncestorWindow) (uint32, error) {

	n := int64(rules.LWMAWindow)
	if int64(windowLen(window)) < n {
		log.Debugf("LWMA window at height %d holds %d of %d ancestors, "+
			"keeping target %08x", tip.Height+1, windowLen(window), n,
			tip.Bits)
		return tip.Bits, nil
	}
	if err := verifyWindow(tip, window, int(n)); err != nil {
		return 0, err
	}

	t := rules.TargetSpacingSecs()
	k := n * (n + 1) * t / 2

	// blockAt returns the j'th block of the window counting from the
	// oldest, so blockAt(n) is the tip.
	blockAt := func(j int64) *Header {
		if j == n {
			return tip
		}
		return window.Ancestor(int(n - 1 - j))
	}

	// Dividing each target by n*k in one step gives the same result as
	// dividing by n and then k, since both truncate.
	divisor := big.NewInt(n * k)
	avgTarget := new(big.Int)
	var sumWeightedSolvetimes int64
	prevTimestamp := window.Ancestor(int(n - 1)).Timestamp
	for j := int64(1); j <= n; j++ {
		block := blockAt(j)

		// Force timestamps to be strictly increasing.
		thisTimestamp := block.Timestamp
		if thisTimestamp <= prevTimestamp {
			thisTimestamp = prevTimestamp + 1
		}

		solvetime := thisTimestamp - prevTimestamp
		if solvetime > maxSolvetimeMultiple*t {
			solvetime = maxSolvetimeMultiple * t
		}
		prevTimestamp = thisTimestamp

		sumWeightedSolvetimes += solvetime * j

		target := CompactToBig(block.Bits)
		if target.Sign() < 0 {
			target.SetInt64(0)
		}
		avgTarget.Add(avgTarget, target.Div(target, divisor))
	}

	nextTarget := avgTarget.Mul(avgTarget, big.NewInt(sumWeightedSolvetimes))
	if nextTarget.Cmp(rules.PowLimit) > 0 {
		nextTarget.Set(rules.PowLimit)
	}

	nextBits := BigToCompact(nextTarget)
	log.Debugf("LWMA difficulty retarget at block height %d", tip.Height+1)
	log.Debugf("Weighted solvetimes %d, normalizer %d", sumWeightedSolvetimes, k)
	log.Debugf("New target %08x (%064x)", nextBits, CompactToBig(nextBits))
	return nextBits, nil
}
