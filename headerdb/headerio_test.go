// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"bytes"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
)

func TestHeaderSerialization(t *testing.T) {
	header := &blockchain.Header{
		Height:    371337,
		Timestamp: 1386475638,
		Bits:      0x1c15ea59,
		Hash:      chainhash.DoubleHashH([]byte("header")),
	}

	serialized := serializeHeader(header)
	if len(serialized) != 48 {
		t.Fatalf("serialized header is %d bytes, want 48", len(serialized))
	}
	got, err := deserializeHeader(serialized)
	if err != nil {
		t.Fatalf("deserializeHeader: %v", err)
	}
	if *got != *header {
		t.Fatalf("got %+v, want %+v", got, header)
	}

	_, err = deserializeHeader(serialized[:47])
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("short entry: got %v, want ErrCorrupt", err)
	}
	_, err = deserializeHeight([]byte{1, 2, 3})
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("short height: got %v, want ErrCorrupt", err)
	}
}

// TestHeightKeyOrder ensures height keys sort in height order.
func TestHeightKeyOrder(t *testing.T) {
	heights := []int32{0, 1, 255, 256, 65535, 65536, 1 << 24, 1<<31 - 1}
	for i := 1; i < len(heights); i++ {
		a, b := heightKey(heights[i-1]), heightKey(heights[i])
		if bytes.Compare(a, b) >= 0 {
			t.Errorf("key for %d does not sort before key for %d",
				heights[i-1], heights[i])
		}
	}
}
