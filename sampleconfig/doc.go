// Copyright (c) 2017 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package sampleconfig provides a single constant that contains the contents of
the sample configuration file for whippetctl.  whippetctl writes it to the
default configuration file path when no file exists there, so users get
commented samples of every global option.
*/
package sampleconfig
