// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whippetcoin/whippetd/database/engine"
)

func TestEngineSuite(t *testing.T) {
	engine.TestSuiteEngine(t, func() engine.Engine {
		db, err := NewDB(filepath.Join(t.TempDir(), "suite"), true)
		require.NoError(t, err, "failed to create leveldb")
		return db
	})
}

func TestOpenRegistered(t *testing.T) {
	require.Contains(t, engine.SupportedDrivers(), DbType)
	engine.TestSuiteOpen(t, DbType, filepath.Join(t.TempDir(), "open"))
}
