// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

func TestParseAndSetDebugLevels(t *testing.T) {
	defer SetLogLevels("info")

	require.Equal(t, []string{"CHAN", "HDDB", "WCTL"}, SupportedSubsystems())

	require.NoError(t, ParseAndSetDebugLevels("debug"))
	for _, id := range SupportedSubsystems() {
		require.Equalf(t, btclog.LevelDebug, SubsystemLoggers[id].Level(),
			"subsystem %s", id)
	}

	require.NoError(t, ParseAndSetDebugLevels("CHAN=trace,HDDB=warn"))
	require.Equal(t, btclog.LevelTrace, chanLog.Level())
	require.Equal(t, btclog.LevelWarn, hddbLog.Level())
	require.Equal(t, btclog.LevelDebug, WctlLog.Level())

	for _, bad := range []string{"loud", "CHAN", "CHAN=loud", "BOGUS=info"} {
		require.Errorf(t, ParseAndSetDebugLevels(bad), "level spec %q", bad)
	}
	require.Error(t, ParseAndSetDebugLevels("CHAN=info,HDDB"))
}

func TestPickNoun(t *testing.T) {
	require.Equal(t, "header", PickNoun(1, "header", "headers"))
	require.Equal(t, "headers", PickNoun(0, "header", "headers"))
	require.Equal(t, "headers", PickNoun(2, "header", "headers"))
}
