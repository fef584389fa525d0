// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements the whippet consensus arithmetic: the block
subsidy schedule and the difficulty retarget algorithms.

Every function in the package is a pure function of its arguments.  The
rule-set in effect at a height comes from chaincfg and headers are handed in
by the caller, typically from a headerdb.Store, so nothing here touches
storage or the clock.

Difficulty

Three retarget algorithms are selected by the flags of the rule-set governing
the new block:

  - LWMA, a linearly weighted moving average over the most recent
    LWMAWindow blocks, retargeting every block
  - Digishield, retargeting every block from the parent's solve time with an
    amplitude filter
  - the legacy periodic retarget every PowTargetTimespan/PowTargetSpacing
    blocks

CalcNextRequiredDifficulty runs the selected algorithm.  NextWorkRequired
additionally resolves the rule-set and applies the network special cases.

Subsidy

Rule-sets in a randomized era draw each reward from a keyed blake2b digest of
the previous block hash and the height, so every node derives the same value.
The fixed era pays an exact halving schedule.  See CalcBlockSubsidy.

Errors

Consensus failures are returned as RuleError values carrying an ErrorCode.
AssertError reports an internal inconsistency such as a rule-set without a
halving interval and should be treated as fatal.
*/
package blockchain
