// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine defines the minimal key/value storage interface the header
// database is written against, along with a registry of the backends that
// implement it.
package engine

import "errors"

var (
	// ErrNotFound is returned by Snapshot.Get when the key does not exist.
	// Backends translate their own not-found errors to it.
	ErrNotFound = errors.New("engine: key not found")

	// ErrUnknownType is returned by Open for an unregistered backend.
	ErrUnknownType = errors.New("engine: unknown database type")

	// ErrIterReleased is returned by Iterator.Error once the iterator has
	// been released.
	ErrIterReleased = errors.New("engine: iterator released")
)

// Engine is an ordered key/value store offering atomic write batches and
// point-in-time reads.
type Engine interface {
	Transaction() (Transaction, error)
	Snapshot() (Snapshot, error)
	Close() error
}

// Transaction batches writes which become visible atomically on Commit.
// Discard abandons the batch and may be called more than once.
type Transaction interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Commit() error
	Discard()
}

// Snapshot is a consistent read-only view of the engine.
type Snapshot interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	NewIterator(*Range) Iterator
	Releaser
}

// Releaser frees the resources held by a snapshot or iterator.  Release may
// be called more than once.
type Releaser interface {
	Release()
}

// Iterator walks the keys of a Range in byte order.  A new iterator is
// positioned before the first key, so Next and Last both land on a pair.
//
// The slices returned by Key and Value are only valid until the iterator is
// moved and must not be modified.
type Iterator interface {
	// First and Last move to the lowest and highest key of the range.
	First() bool
	Last() bool

	// Seek moves to the lowest key at or above key.
	Seek(key []byte) bool

	Next() bool
	Prev() bool
	Valid() bool

	// Key and Value return nil when the iterator is not on a pair.
	Key() []byte
	Value() []byte

	// Error returns the first error hit while iterating.  Running off
	// either end of the range is not an error.
	Error() error

	Releaser
}
