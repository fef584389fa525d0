// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"runtime"

	"github.com/whippetcoin/whippetd/internal/version"
)

// versionCmd prints the version of the utility.
type versionCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *versionCmd) Execute(args []string) error {
	fmt.Fprintf(output, "%s version %s (Go version %s %s/%s)\n", appName,
		version.String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
