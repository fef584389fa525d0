// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"github.com/whippetcoin/whippetd/blockchain"
)

// runCmd runs the utility with args and returns what the command printed.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	output = &buf
	t.Cleanup(func() { output = os.Stdout })

	err := run(args)
	return buf.String(), err
}

// regtestRecords returns a dump of headers from height first up to, but not
// including, last.  Every header carries the regtest limit bits.
func regtestRecords(first, last int32) []headerRecord {
	records := make([]headerRecord, 0, last-first)
	for height := first; height < last; height++ {
		var seed [8]byte
		binary.LittleEndian.PutUint32(seed[:4], uint32(height))
		copy(seed[4:], "regt")
		records = append(records, headerRecord{
			Height: height,
			Time:   1600000000 + int64(height)*60,
			Bits:   "207fffff",
			Hash:   chainhash.HashH(seed[:]).String(),
		})
	}
	return records
}

// writeDump writes records as a JSON lines file and returns its path.
func writeDump(t *testing.T, records []headerRecord) string {
	t.Helper()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range records {
		require.NoError(t, enc.Encode(&records[i]))
	}
	path := filepath.Join(t.TempDir(), "headers.jsonl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestLoadHeaderDB(t *testing.T) {
	for _, dbType := range []string{"leveldb", "pebble"} {
		t.Run(dbType, func(t *testing.T) {
			cfg = defaultConfig()
			cfg.DataDir = t.TempDir()
			cfg.DbType = dbType

			_, err := loadHeaderDB(false)
			require.ErrorContains(t, err, "run the import command first")

			store, err := loadHeaderDB(true)
			require.NoError(t, err)
			genesis := &blockchain.Header{
				Timestamp: 1600000000,
				Bits:      0x207fffff,
				Hash:      chainhash.HashH([]byte("genesis")),
			}
			require.NoError(t, store.PutHeaders([]*blockchain.Header{genesis}))
			require.NoError(t, store.Close())

			// Both modes open an existing database and keep its
			// headers.
			for _, create := range []bool{true, false} {
				store, err = loadHeaderDB(create)
				require.NoError(t, err)
				tip, err := store.Tip()
				require.NoError(t, err)
				require.Equal(t, genesis.Hash, tip.Hash)
				require.NoError(t, store.Close())
			}
		})
	}
}

func TestGlobalOptions(t *testing.T) {
	dataDir := t.TempDir()

	_, err := runCmd(t, "--testnet", "--regtest", "params")
	require.ErrorContains(t, err, "can't be used together")

	_, err = runCmd(t, "--dbtype", "bogus", "params")
	require.ErrorContains(t, err, "database type [bogus] is invalid")

	_, err = runCmd(t, "--debuglevel", "loud", "params")
	require.ErrorContains(t, err, "debug level [loud] is invalid")

	out, err := runCmd(t, "--debuglevel", "show", "params")
	require.NoError(t, err)
	require.Contains(t, out, "Supported subsystems [CHAN HDDB WCTL]")

	out, err = runCmd(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")

	out, err = runCmd(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, appName+" version ")

	logDir := t.TempDir()
	_, err = runCmd(t, "--regtest", "--datadir", dataDir, "--logdir",
		logDir, "params")
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(logDir, "regtest"))

	_, err = runCmd(t, "--regtest", "--datadir", dataDir, "verify")
	require.ErrorContains(t, err, "no header database")
}

func TestParamsCmd(t *testing.T) {
	out, err := runCmd(t, "--regtest", "params")
	require.NoError(t, err)
	require.Contains(t, out, "Network:             regtest")
	require.Contains(t, out, "Fork heights:        [0]")
	require.Contains(t, out, "Subsidy era:         fixed")
	require.Contains(t, out, "Pow limit bits:      207fffff")

	out, err = runCmd(t, "--testnet", "params", "--height", "3000")
	require.NoError(t, err)
	require.Contains(t, out, "Rule-set effective at height 2000")
	require.Contains(t, out, "Difficulty:          digishield")
	require.NotContains(t, out, "Rule-set effective at height 0\n")

	out, err = runCmd(t, "--testnet", "params", "--height", "200000")
	require.NoError(t, err)
	require.Contains(t, out, "Difficulty:          lwma (window 240)")
}

func TestSubsidyCmd(t *testing.T) {
	out, err := runCmd(t, "--regtest", "subsidy", "--height", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Subsidy:      50000 WHP")
	require.Contains(t, out, "Era maximum:  50000 WHP")

	_, err = runCmd(t, "subsidy", "--height", "1")
	require.ErrorContains(t, err, "--prevhash is required")

	var zeroHash chainhash.Hash
	out, err = runCmd(t, "subsidy", "--height", "1", "--prevhash",
		zeroHash.String())
	require.NoError(t, err)
	require.Contains(t, out, "Subsidy era:  legacy-random")
	require.Contains(t, out, "Subsidy:      322177 WHP")

	_, err = runCmd(t, "subsidy", "--height", "1", "--prevhash", "xyz")
	require.ErrorContains(t, err, "invalid previous block hash")

	_, err = runCmd(t, "subsidy")
	require.Error(t, err)
}

func TestNextWorkCmd(t *testing.T) {
	out, err := runCmd(t, "--testnet", "nextwork", "--height", "3000",
		"--time", "1090", "--lastretarget", "1000", "--bits", "1c1a1206")
	require.NoError(t, err)
	require.Contains(t, out, "(digishield)")
	require.Contains(t, out, "Bits:         1c1b5fb9")

	// The rule-set may be picked explicitly.  Without ancestors LWMA
	// keeps the tip difficulty.
	out, err = runCmd(t, "--testnet", "nextwork", "--height", "3000",
		"--time", "1090", "--lastretarget", "1000", "--bits", "0x1c1a1206",
		"--rulesheight", "200000")
	require.NoError(t, err)
	require.Contains(t, out, "Bits:         1c1a1206")

	_, err = runCmd(t, "nextwork", "--height", "1", "--time", "1",
		"--lastretarget", "0", "--bits", "zz")
	require.ErrorContains(t, err, "invalid compact bits")
}

func TestImportVerify(t *testing.T) {
	for _, dbType := range []string{"leveldb", "pebble"} {
		t.Run(dbType, func(t *testing.T) {
			dataDir := t.TempDir()
			global := []string{"--regtest", "--datadir", dataDir,
				"--dbtype", dbType}
			cmd := func(args ...string) []string {
				return append(append([]string{}, global...), args...)
			}

			dump := writeDump(t, regtestRecords(0, 30))
			out, err := runCmd(t, cmd("import", "--batch", "7",
				"--verify", dump)...)
			require.NoError(t, err)
			require.Contains(t, out, "Imported 30 headers")
			require.Contains(t, out, "(height 29)")

			// Extend the stored chain.
			more := writeDump(t, regtestRecords(30, 40))
			out, err = runCmd(t, cmd("import", "--verify", more)...)
			require.NoError(t, err)
			require.Contains(t, out, "Imported 10 headers")

			// The same headers can't be appended twice.
			out, err = runCmd(t, cmd("import", more)...)
			require.ErrorContains(t, err, "has height 30, want 40")
			require.Contains(t, out, "Imported 0 headers")

			out, err = runCmd(t, cmd("verify")...)
			require.NoError(t, err)
			require.Contains(t, out, "Verified 40 headers, 0 mismatches")

			out, err = runCmd(t, cmd("verify", "--from", "35")...)
			require.NoError(t, err)
			require.Contains(t, out, "Verified 5 headers, 0 mismatches")
		})
	}
}

func TestImportVerifyMismatch(t *testing.T) {
	records := regtestRecords(0, 12)
	records[5].Bits = "1d00ffff"
	dump := writeDump(t, records)

	// Verification while importing stops at the bad header and keeps the
	// ones accepted before it.
	dataDir := t.TempDir()
	out, err := runCmd(t, "--regtest", "--datadir", dataDir, "import",
		"--verify", dump)
	require.ErrorContains(t, err, "at height 5")
	require.Contains(t, out, "Imported 5 headers")

	// Without verification everything is stored and verify reports the
	// mismatch.
	dataDir = t.TempDir()
	out, err = runCmd(t, "--regtest", "--datadir", dataDir, "import", dump)
	require.NoError(t, err)
	require.Contains(t, out, "Imported 12 headers")

	out, err = runCmd(t, "--regtest", "--datadir", dataDir, "verify")
	require.ErrorContains(t, err, "1 header failed verification")
	require.Contains(t, out, "height 5 (")
	require.Contains(t, out, "Verified 12 headers, 1 mismatch\n")
}

func TestImportBadDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"height":0,"time":1,"bits":"207fffff","hash":"00"}`+"\n"+
			`{"height":1,`), 0600))

	dataDir := t.TempDir()
	out, err := runCmd(t, "--regtest", "--datadir", dataDir, "import", path)
	require.ErrorContains(t, err, "reading header 2")
	require.Contains(t, out, "Imported 1 header\n")

	_, err = runCmd(t, "--regtest", "--datadir", dataDir, "import",
		filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
}

func TestShowHeaderDropAfter(t *testing.T) {
	dataDir := t.TempDir()
	records := regtestRecords(0, 20)
	_, err := runCmd(t, "--regtest", "--datadir", dataDir, "import",
		writeDump(t, records))
	require.NoError(t, err)

	out, err := runCmd(t, "--regtest", "--datadir", dataDir, "showheader",
		"12")
	require.NoError(t, err)
	require.Contains(t, out, "Hash:         "+records[12].Hash)
	require.Contains(t, out, "Bits:         207fffff")
	require.Contains(t, out, "Work:         2\n")
	require.Contains(t, out, "Required:     207fffff")

	out, err = runCmd(t, "--regtest", "--datadir", dataDir, "showheader",
		records[0].Hash)
	require.NoError(t, err)
	require.Contains(t, out, "Height:       0\n")

	_, err = runCmd(t, "--regtest", "--datadir", dataDir, "showheader", "20")
	require.ErrorContains(t, err, "header not found")
	_, err = runCmd(t, "--regtest", "--datadir", dataDir, "showheader", "tip")
	require.ErrorContains(t, err, "neither a block height nor a block hash")

	out, err = runCmd(t, "--regtest", "--datadir", dataDir, "dropafter",
		records[14].Hash)
	require.NoError(t, err)
	require.Contains(t, out, "Dropped 5 headers")

	out, err = runCmd(t, "--regtest", "--datadir", dataDir, "verify")
	require.NoError(t, err)
	require.Contains(t, out, "Verified 15 headers, 0 mismatches")

	// The dropped headers can be imported again.
	out, err = runCmd(t, "--regtest", "--datadir", dataDir, "import",
		writeDump(t, records[15:]))
	require.NoError(t, err)
	require.Contains(t, out, "Imported 5 headers")
}
