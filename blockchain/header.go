// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Header is the part of a block header the consensus engine consumes.
type Header struct {
	// Height is the height of the block in the chain.
	Height int32

	// Timestamp is the block time in seconds since the unix epoch.
	Timestamp int64

	// Bits is the compact encoding of the block's target difficulty.
	Bits uint32

	// Hash is the hash of the block.  It seeds the randomized subsidy of
	// the block's child.
	Hash chainhash.Hash
}

// AncestorWindow is a read-only view of the validated headers preceding a
// tip.  Ancestor(0) is the tip's parent, Ancestor(1) its grandparent and so
// on, without gaps.  A window shorter than requested signals that the chain
// does not hold enough history.
//
// Implementations must not be mutated while the engine is using them and
// the engine never retains a window past the call it was passed to.
type AncestorWindow interface {
	// Len returns the number of ancestors available.
	Len() int

	// Ancestor returns the ancestor i+1 blocks below the tip.
	Ancestor(i int) *Header
}

// HeaderSlice is an AncestorWindow backed by a slice ordered by strictly
// descending height.
type HeaderSlice []*Header

// Len returns the number of headers in the slice.
func (s HeaderSlice) Len() int {
	return len(s)
}

// Ancestor returns the i'th header in the slice.
func (s HeaderSlice) Ancestor(i int) *Header {
	return s[i]
}

// windowLen returns the length of a possibly nil window.
func windowLen(window AncestorWindow) int {
	if window == nil {
		return 0
	}
	return window.Len()
}

// verifyWindow ensures the first n ancestors in the window directly precede
// tip with no gaps.
func verifyWindow(tip *Header, window AncestorWindow, n int) error {
	if windowLen(window) < n {
		str := fmt.Sprintf("ancestor window holds %d headers below "+
			"height %d, need %d", windowLen(window), tip.Height, n)
		return ruleError(ErrMissingAncestors, str)
	}
	for i := 0; i < n; i++ {
		ancestor := window.Ancestor(i)
		want := tip.Height - 1 - int32(i)
		if ancestor == nil || ancestor.Height != want {
			got := int32(-1)
			if ancestor != nil {
				got = ancestor.Height
			}
			str := fmt.Sprintf("ancestor %d of height %d is at height "+
				"%d, want %d", i, tip.Height, got, want)
			return ruleError(ErrMissingAncestors, str)
		}
	}
	return nil
}
