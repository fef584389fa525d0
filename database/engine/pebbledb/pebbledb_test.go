// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pebbledb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whippetcoin/whippetd/database/engine"
)

func TestEngineSuite(t *testing.T) {
	engine.TestSuiteEngine(t, func() engine.Engine {
		db, err := NewDB(filepath.Join(t.TempDir(), "suite"), true, 0, 0)
		require.NoError(t, err, "failed to create pebbledb")
		return db
	})
}

func TestOpenRegistered(t *testing.T) {
	require.Contains(t, engine.SupportedDrivers(), DbType)

	path := filepath.Join(t.TempDir(), "open")
	_, err := NewDB(path, false, 0, 0)
	require.ErrorIs(t, err, ErrDbMissing)

	engine.TestSuiteOpen(t, DbType, path)
}

func TestLevelOptions(t *testing.T) {
	levels := levelOptions()
	require.Len(t, levels, 7)
	require.EqualValues(t, 2<<20, levels[0].TargetFileSize)
	require.EqualValues(t, 128<<20, levels[6].TargetFileSize)
}
