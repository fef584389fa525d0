// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/whippetcoin/whippetd/chaincfg"
	"github.com/whippetcoin/whippetd/database/engine"
	wlog "github.com/whippetcoin/whippetd/internal/log"
	"github.com/whippetcoin/whippetd/sampleconfig"
)

const (
	defaultConfigFilename = "whippetctl.conf"
	defaultDbType         = "leveldb"
	defaultDebugLevel     = "info"
	defaultLogName        = "whippetctl.log"
)

var (
	whippetctlHomeDir = btcutil.AppDataDir("whippetctl", false)
	defaultConfigFile = filepath.Join(whippetctlHomeDir, defaultConfigFilename)
	activeNetParams   = &chaincfg.MainNetParams

	// cfg holds the global options of the current invocation.  It is reset
	// to the defaults each time the command line is parsed.
	cfg = defaultConfig()

	// errSubsystemsShown is returned by setupGlobalConfig once the
	// supported subsystems have been listed in response to
	// --debuglevel=show.  It does not indicate a failure.
	errSubsystemsShown = errors.New("supported subsystems shown")
)

// config defines the global configuration options.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Location of the header database directory"`
	LogDir     string `long:"logdir" description:"Also write logs to a rotated file in this directory"`
	DbType     string `long:"dbtype" description:"Database backend to use for the header database"`
	TestNet    bool   `long:"testnet" description:"Use the test network"`
	RegTest    bool   `long:"regtest" description:"Use the regression test network"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
}

// defaultConfig returns the global options before the command line is
// applied.
func defaultConfig() *config {
	return &config{
		ConfigFile: defaultConfigFile,
		DataDir:    filepath.Join(whippetctlHomeDir, "data"),
		DbType:     defaultDbType,
		DebugLevel: defaultDebugLevel,
	}
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but the variables can still be expanded via POSIX-style
	// $VARIABLE.
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Expand initial ~ to the current user's home directory, or ~otheruser
	// to otheruser's home directory.  On Windows, both forward and backward
	// slashes can be used.
	path = path[1:]

	pathSeparators := string(os.PathSeparator)
	if runtime.GOOS == "windows" {
		pathSeparators += "/"
	}

	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	}

	homeDir := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		homeDir = u.HomeDir
	}
	// Fallback to CWD if user lookup fails or user has no home directory.
	if homeDir == "" {
		homeDir = "."
	}

	return filepath.Join(homeDir, path)
}

// createDefaultConfigFile writes the sample configuration to the passed
// path.
func createDefaultConfigFile(destinationPath string) error {
	// Create the destination directory if it does not exists
	err := os.MkdirAll(filepath.Dir(destinationPath), 0700)
	if err != nil {
		return err
	}
	return os.WriteFile(destinationPath, []byte(sampleconfig.FileContents),
		0600)
}

// loadConfigFile applies the configuration file selected on the command
// line, or the default one, to the options of parser.  A missing default
// file is created from the sample configuration.  Options given on the
// command line are parsed afterwards and take precedence.
func loadConfigFile(parser *flags.Parser, args []string) error {
	// Pre-parse the command line options to see if an alternative config
	// file was specified.  Any errors can be ignored here since they will
	// be caught by the final parse.
	preCfg := config{ConfigFile: defaultConfigFile}
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	preParser.ParseArgs(args)

	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	if !fileExists(configFile) {
		if preCfg.ConfigFile != defaultConfigFile {
			return fmt.Errorf("configuration file %s does not exist",
				configFile)
		}
		if err := createDefaultConfigFile(configFile); err != nil {
			log.Warnf("Unable to create the default configuration "+
				"file: %v", err)
			return nil
		}
	}

	err := flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		return fmt.Errorf("error parsing config file %s: %w", configFile,
			err)
	}
	return nil
}

// validDbType returns whether or not dbType is a supported database type.
func validDbType(dbType string) bool {
	for _, knownType := range engine.SupportedDrivers() {
		if dbType == knownType {
			return true
		}
	}

	return false
}

// setupGlobalConfig examines the global configuration options for any
// conditions which are invalid as well as performs any additional setup
// necessary after the initial parse.
func setupGlobalConfig() error {
	// Multiple networks can't be selected simultaneously.
	activeNetParams = &chaincfg.MainNetParams
	numNets := 0
	if cfg.TestNet {
		numNets++
		activeNetParams = &chaincfg.TestNetParams
	}
	if cfg.RegTest {
		numNets++
		activeNetParams = &chaincfg.RegressionNetParams
	}
	if numNets > 1 {
		return errors.New("the testnet and regtest params can't be " +
			"used together -- choose one of the two")
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Fprintln(output, "Supported subsystems",
			wlog.SupportedSubsystems())
		return errSubsystemsShown
	}
	if err := wlog.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return err
	}

	// Validate database type.
	if !validDbType(cfg.DbType) {
		str := "the specified database type [%v] is invalid -- " +
			"supported types %v"
		return fmt.Errorf(str, cfg.DbType,
			strings.Join(engine.SupportedDrivers(), ", "))
	}

	// Namespace the data and log directories per network.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir),
		activeNetParams.Name)
	if cfg.LogDir != "" {
		logFile := filepath.Join(cleanAndExpandPath(cfg.LogDir),
			activeNetParams.Name,
			defaultLogName)
		if err := wlog.InitLogRotator(logFile); err != nil {
			return err
		}
	}

	return nil
}
