// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version provides a single location to house the version information
// for whippetctl and the other utilities provided in the same repository.
package version

import (
	"fmt"
	"strings"
)

// These constants define the application version and follow the semantic
// versioning 2.0.0 spec (https://semver.org/).
const (
	Major uint = 0
	Minor uint = 3
	Patch uint = 0
)

var (
	// PreRelease is defined as a variable so it can be overridden during the
	// build process with:
	// '-ldflags "-X github.com/whippetcoin/whippetd/internal/version.PreRelease=foo"'
	// Characters outside [0-9A-Za-z-] are dropped.
	PreRelease = "beta"

	// BuildMetadata is defined as a variable so it can be overridden during
	// the build process with:
	// '-ldflags "-X github.com/whippetcoin/whippetd/internal/version.BuildMetadata=foo"'
	// Characters outside [0-9A-Za-z-.] are dropped.
	BuildMetadata = ""
)

// String returns the application version as a properly formed string per the
// semantic versioning 2.0.0 spec.
func String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", Major, Minor, Patch)
	if pre := filterSemver(PreRelease, false); pre != "" {
		b.WriteString("-" + pre)
	}
	if build := filterSemver(BuildMetadata, true); build != "" {
		b.WriteString("+" + build)
	}
	return b.String()
}

// filterSemver strips every rune semantic versioning does not allow in a
// pre-release identifier, or in build metadata when build is set.
func filterSemver(s string, build bool) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z', r == '-':
			return r
		case r == '.' && build:
			return r
		}
		return -1
	}, s)
}
