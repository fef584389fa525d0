// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/whippetcoin/whippetd/headerdb"
	wlog "github.com/whippetcoin/whippetd/internal/log"

	_ "github.com/whippetcoin/whippetd/database/engine/leveldb"
	_ "github.com/whippetcoin/whippetd/database/engine/pebbledb"
)

const (
	appName = "whippetctl"

	// headerDbNamePrefix is the prefix for the header database.
	headerDbNamePrefix = "headers"
)

var (
	log = wlog.WctlLog

	// output receives the results printed by the commands.
	output io.Writer = os.Stdout
)

// loadHeaderDB opens the header database of the active network, creating it
// when create is set and it does not exist yet.
func loadHeaderDB(create bool) (*headerdb.Store, error) {
	// The database name is based on the database type.
	dbName := headerDbNamePrefix + "_" + cfg.DbType
	dbPath := filepath.Join(cfg.DataDir, dbName)

	exists := fileExists(dbPath)
	if !exists {
		if !create {
			return nil, errors.New("no header database at " + dbPath +
				" -- run the import command first")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, err
		}
	}

	log.Infof("Loading header database from '%s'", dbPath)
	return headerdb.Open(cfg.DbType, dbPath, create && !exists)
}

// newParser resets every option to its default and returns a parser with
// all commands registered.
func newParser() *flags.Parser {
	cfg = defaultConfig()
	paramsCfg = paramsCmd{}
	subsidyCfg = subsidyCmd{}
	nextWorkCfg = nextWorkCmd{}
	importCfg = defaultImportCmd()
	verifyCfg = verifyCmd{}
	showHeaderCfg = showHeaderCmd{}
	dropAfterCfg = dropAfterCmd{}

	parserFlags := flags.Options(flags.HelpFlag | flags.PassDoubleDash)
	parser := flags.NewNamedParser(appName, parserFlags)
	parser.AddGroup("Global Options", "", cfg)
	parser.AddCommand("params",
		"Show the consensus rule-sets of the network",
		"Show the fork heights of the network and the rule-set governing "+
			"the requested height.", &paramsCfg)
	parser.AddCommand("subsidy",
		"Calculate the subsidy of a block",
		"Calculate the subsidy of the block at the requested height "+
			"built on the given previous block hash.", &subsidyCfg)
	parser.AddCommand("nextwork",
		"Calculate the difficulty following a block",
		"Run the difficulty retarget of the rule-set governing the "+
			"block after the given tip.  No ancestors are supplied, so "+
			"LWMA rule-sets keep the tip difficulty.", &nextWorkCfg)
	parser.AddCommand("import",
		"Import headers from a JSON lines dump",
		"Import headers from a file holding one JSON object with "+
			"height, time, bits and hash per line.  The headers must "+
			"extend the stored tip.", &importCfg)
	parser.AddCommand("verify",
		"Verify the difficulty of the stored headers",
		"Walk the header database recomputing the difficulty each "+
			"header is required to carry and report mismatches.",
		&verifyCfg)
	parser.AddCommand("showheader",
		"Show a stored header",
		"Show the stored header at the given height or with the given "+
			"hash along with the difficulty it is required to carry.",
		&showHeaderCfg)
	parser.AddCommand("dropafter",
		"Remove the headers above a block",
		"Remove every stored header above the given height or hash, "+
			"making it the new tip.", &dropAfterCfg)
	parser.AddCommand("version", "Show the version", "", &versionCmd{})
	return parser
}

// run parses args and invokes the Execute function of the selected command.
func run(args []string) error {
	defer wlog.CloseLogRotator()

	parser := newParser()
	if err := loadConfigFile(parser, args); err != nil {
		return err
	}
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		switch {
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
			parser.WriteHelp(output)
			return nil
		case errors.Is(err, errSubsystemsShown):
			return nil
		}
		return err
	}
	return nil
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	defer os.Stdout.Sync()

	err := run(os.Args[1:])
	if err != nil {
		log.Error(err)
	}
	return err
}

func main() {
	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
