// Copyright (c) 2017 The Decred developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sampleconfig

// FileContents is a string containing the commented example config for
// whippetctl.
const FileContents = `[Global Options]

; ------------------------------------------------------------------------------
; Data settings
; ------------------------------------------------------------------------------

; The directory holding the header databases.  Each network uses its own
; subdirectory.  The default is ~/.whippetctl/data on POSIX OSes,
; $LOCALAPPDATA/Whippetctl/data on Windows,
; ~/Library/Application Support/Whippetctl/data on macOS, and
; $home/whippetctl/data on Plan9.  Environment variables are expanded so they
; may be used.  NOTE: Windows environment variables are typically %VARIABLE%,
; but they must be accessed with $VARIABLE here.
; datadir=~/.whippetctl/data

; Database backend used for the header database.  Supported backends are
; leveldb and pebble.
; dbtype=leveldb


; ------------------------------------------------------------------------------
; Network settings
; ------------------------------------------------------------------------------

; Use the test network.
; testnet=1

; Use the regression test network.
; regtest=1


; ------------------------------------------------------------------------------
; Debug
; ------------------------------------------------------------------------------

; Debug logging level.
; Valid levels are {trace, debug, info, warn, error, critical}
; You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set
; log level for individual subsystems.  Use whippetctl --debuglevel=show to list
; available subsystems.
; debuglevel=info

; Also write logs to a rotated whippetctl.log below this directory.  Each
; network uses its own subdirectory.
; logdir=~/.whippetctl/logs
`
