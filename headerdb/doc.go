// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package headerdb stores a chain of block headers on top of a database/engine
backend and serves the ancestor windows the difficulty engine consumes.

Layout

	h<height>  big-endian height -> 48 byte header
	x<hash>    block hash -> little-endian height
	t          height of the highest stored header

Backends register themselves with the engine package when imported:

	import (
		_ "github.com/whippetcoin/whippetd/database/engine/leveldb"
		_ "github.com/whippetcoin/whippetd/database/engine/pebbledb"
	)
*/
package headerdb
