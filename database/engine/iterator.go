// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

// Range selects the keys k with Start <= k < Limit.  A nil Start has no
// lower bound and a nil Limit no upper bound.
type Range struct {
	Start []byte
	Limit []byte
}

// BytesPrefix returns the range of every key beginning with prefix.
func BytesPrefix(prefix []byte) *Range {
	// The limit is the shortest key greater than every key with the
	// prefix: drop trailing 0xff bytes and increment the last one left.
	// A prefix of only 0xff bytes has no upper bound.
	var limit []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			limit = append([]byte(nil), prefix[:i+1]...)
			limit[i]++
			break
		}
	}
	return &Range{Start: prefix, Limit: limit}
}
