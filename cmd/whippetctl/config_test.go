// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
	"github.com/whippetcoin/whippetd/sampleconfig"
)

func TestMain(m *testing.M) {
	// Keep the default configuration file out of the home directory.
	dir, err := os.MkdirTemp("", "whippetctl")
	if err != nil {
		panic(err)
	}
	defaultConfigFile = filepath.Join(dir, defaultConfigFilename)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestDefaultConfigFile(t *testing.T) {
	require.NoError(t, os.RemoveAll(defaultConfigFile))

	_, err := runCmd(t, "--regtest", "params")
	require.NoError(t, err)

	contents, err := os.ReadFile(defaultConfigFile)
	require.NoError(t, err)
	require.Equal(t, sampleconfig.FileContents, string(contents))

	// The sample only holds comments, so the defaults stay in effect.
	out, err := runCmd(t, "params", "--height", "0")
	require.NoError(t, err)
	require.Contains(t, out, "Network:             mainnet")
}

func TestDefaultDataDir(t *testing.T) {
	homeDir := btcutil.AppDataDir("whippetctl", false)
	require.NotEqual(t, ".", homeDir)
	require.Equal(t, filepath.Join(homeDir, "data"), defaultConfig().DataDir)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "custom.conf")
	require.NoError(t, os.WriteFile(configFile, []byte(
		"[Global Options]\nregtest=1\ndbtype=bogus\n"), 0600))

	_, err := runCmd(t, "--configfile", configFile, "params")
	require.ErrorContains(t, err, "database type [bogus] is invalid")

	// Command line options take precedence over the file.
	out, err := runCmd(t, "-C", configFile, "--dbtype", "pebble", "params")
	require.NoError(t, err)
	require.Contains(t, out, "Network:             regtest")

	_, err = runCmd(t, "--configfile", filepath.Join(dir, "missing.conf"),
		"params")
	require.ErrorContains(t, err, "does not exist")

	require.NoError(t, os.WriteFile(configFile, []byte(
		"[Global Options]\nnosuchoption=1\n"), 0600))
	_, err = runCmd(t, "--configfile", configFile, "params")
	require.ErrorContains(t, err, "error parsing config file")
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("WHIPPETCTL_TEST_DIR", "/tmp/whippet")
	require.Equal(t, filepath.Clean("/tmp/whippet/data"),
		cleanAndExpandPath("$WHIPPETCTL_TEST_DIR/data/"))

	usr, err := user.Current()
	if err == nil && usr.HomeDir != "" {
		require.Equal(t, filepath.Join(usr.HomeDir, "data"),
			cleanAndExpandPath("~/data"))
	}
}
