// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
)

const (
	// serializedHeaderLen is the length of a stored header: height (4),
	// timestamp (8), bits (4) and hash (32).
	serializedHeaderLen = 4 + 8 + 4 + chainhash.HashSize

	// heightKeyLen is the length of a height index key.
	heightKeyLen = 1 + 4
)

var (
	// byteOrder is the preferred byte order used for serializing numeric
	// fields for storage in the database.
	byteOrder = binary.LittleEndian

	// heightPrefix prefixes the keys mapping a big-endian height to the
	// serialized header at that height.  Big-endian keys iterate in
	// height order.
	heightPrefix = []byte("h")

	// hashPrefix prefixes the keys mapping a block hash to its height.
	hashPrefix = []byte("x")

	// tipKey holds the height of the highest stored header.
	tipKey = []byte("t")
)

// heightKey returns the height index key for the passed height.
func heightKey(height int32) []byte {
	key := make([]byte, heightKeyLen)
	copy(key, heightPrefix)
	binary.BigEndian.PutUint32(key[1:], uint32(height))
	return key
}

// hashKey returns the hash index key for the passed hash.
func hashKey(hash *chainhash.Hash) []byte {
	key := make([]byte, 1+chainhash.HashSize)
	copy(key, hashPrefix)
	copy(key[1:], hash[:])
	return key
}

// serializeHeight returns the passed height as stored under the hash index
// and tip keys.
func serializeHeight(height int32) []byte {
	var buf [4]byte
	byteOrder.PutUint32(buf[:], uint32(height))
	return buf[:]
}

// deserializeHeight decodes a height written by serializeHeight.
func deserializeHeight(serialized []byte) (int32, error) {
	if len(serialized) != 4 {
		return 0, fmt.Errorf("%w: height entry is %d bytes", ErrCorrupt,
			len(serialized))
	}
	return int32(byteOrder.Uint32(serialized)), nil
}

// serializeHeader returns the storage encoding of the passed header.
func serializeHeader(header *blockchain.Header) []byte {
	buf := make([]byte, serializedHeaderLen)
	byteOrder.PutUint32(buf[0:4], uint32(header.Height))
	byteOrder.PutUint64(buf[4:12], uint64(header.Timestamp))
	byteOrder.PutUint32(buf[12:16], header.Bits)
	copy(buf[16:], header.Hash[:])
	return buf
}

// deserializeHeader decodes a header written by serializeHeader.
func deserializeHeader(serialized []byte) (*blockchain.Header, error) {
	if len(serialized) != serializedHeaderLen {
		return nil, fmt.Errorf("%w: header entry is %d bytes, want %d",
			ErrCorrupt, len(serialized), serializedHeaderLen)
	}

	header := &blockchain.Header{
		Height:    int32(byteOrder.Uint32(serialized[0:4])),
		Timestamp: int64(byteOrder.Uint64(serialized[4:12])),
		Bits:      byteOrder.Uint32(serialized[12:16]),
	}
	copy(header.Hash[:], serialized[16:])
	return header, nil
}
