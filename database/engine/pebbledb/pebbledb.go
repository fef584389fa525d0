// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pebbledb implements engine.Engine on top of pebble.  It registers
// itself under DbType "pebble".
package pebbledb

import (
	"errors"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/whippetcoin/whippetd/database/engine"
)

// DbType is the identifier the backend registers itself under.
const DbType = "pebble"

var (
	ErrDbClosed         = errors.New("pebbledb: closed")
	ErrDbMissing        = errors.New("pebbledb: database does not exist")
	ErrTxClosed         = errors.New("pebbledb: transaction already closed")
	ErrSnapshotReleased = errors.New("pebbledb: snapshot released")
)

// Defaults for the block cache size in megabytes and the open file limit.
const (
	DefaultCache   = 64
	DefaultHandles = 16
)

func init() {
	driver := engine.Driver{
		DbType: DbType,
		Open: func(path string, create bool) (engine.Engine, error) {
			return NewDB(path, create, DefaultCache, DefaultHandles)
		},
	}
	if err := engine.RegisterDriver(driver); err != nil {
		panic(err)
	}
}

// levelOptions doubles the target file size of each level, starting at
// 2MiB, with bloom filters on every level.
func levelOptions() []pebble.LevelOptions {
	levels := make([]pebble.LevelOptions, 7)
	for i := range levels {
		levels[i] = pebble.LevelOptions{
			TargetFileSize: (2 << 20) << i,
			FilterPolicy:   bloom.FilterPolicy(10),
		}
	}
	return levels
}

// NewDB opens the pebble database at dbPath with a block cache of cache
// megabytes and at most handles open files.  When create is set the
// database must not already exist; otherwise it must.
func NewDB(dbPath string, create bool, cache, handles int) (engine.Engine, error) {
	if cache <= 0 {
		cache = DefaultCache
	}
	if handles <= 0 {
		handles = DefaultHandles
	}
	if !create {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, ErrDbMissing
		}
	}

	blockCache := pebble.NewCache(int64(cache) << 20)
	defer blockCache.Unref()

	opts := &pebble.Options{
		Cache:                    blockCache,
		ErrorIfExists:            create,
		MaxOpenFiles:             handles,
		MaxConcurrentCompactions: runtime.NumCPU,
		Levels:                   levelOptions(),
	}
	opts.Experimental.ReadSamplingMultiplier = -1

	pdb, err := pebble.Open(dbPath, opts)
	if err != nil {
		return nil, err
	}
	return &db{pdb: pdb}, nil
}

// db adapts a pebble database to engine.Engine.
type db struct {
	pdb    *pebble.DB
	closed atomic.Bool
}

// Transaction starts a write batch.  Writes stay invisible to snapshots
// until it commits.
func (d *db) Transaction() (engine.Transaction, error) {
	if d.closed.Load() {
		return nil, ErrDbClosed
	}
	return &transaction{batch: d.pdb.NewBatch()}, nil
}

func (d *db) Snapshot() (engine.Snapshot, error) {
	if d.closed.Load() {
		return nil, ErrDbClosed
	}
	return &snapshot{s: d.pdb.NewSnapshot()}, nil
}

func (d *db) Close() error {
	if d.closed.Swap(true) {
		return ErrDbClosed
	}
	return d.pdb.Close()
}

// transaction adapts a pebble batch to engine.Transaction.  The batch is
// closed once it has been committed or discarded.
type transaction struct {
	batch  *pebble.Batch
	closed bool
}

func (t *transaction) Put(key, value []byte) error {
	if t.closed {
		return ErrTxClosed
	}
	return t.batch.Set(key, value, nil)
}

func (t *transaction) Delete(key []byte) error {
	if t.closed {
		return ErrTxClosed
	}
	return t.batch.Delete(key, nil)
}

func (t *transaction) Commit() error {
	if t.closed {
		return ErrTxClosed
	}
	err := t.batch.Commit(pebble.Sync)
	t.Discard()
	return err
}

func (t *transaction) Discard() {
	if !t.closed {
		t.closed = true
		t.batch.Close()
	}
}

// snapshot adapts a pebble snapshot to engine.Snapshot.
type snapshot struct {
	s        *pebble.Snapshot
	released bool
}

// Get returns a copy of the value stored under key.
func (s *snapshot) Get(key []byte) ([]byte, error) {
	if s.released {
		return nil, ErrSnapshotReleased
	}

	value, closer, err := s.s.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return append([]byte(nil), value...), nil
}

func (s *snapshot) Has(key []byte) (bool, error) {
	_, err := s.Get(key)
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *snapshot) NewIterator(r *engine.Range) engine.Iterator {
	if s.released {
		return &iterator{err: ErrSnapshotReleased}
	}

	iter, err := s.s.NewIter(&pebble.IterOptions{
		LowerBound: r.Start,
		UpperBound: r.Limit,
	})
	if err != nil {
		return &iterator{err: err}
	}
	return &iterator{iter: iter}
}

func (s *snapshot) Release() {
	if !s.released {
		s.released = true
		s.s.Close()
	}
}

// iterator adapts a pebble iterator to engine.Iterator.  A nil iter stands
// for an iterator that failed to open and reports err.
type iterator struct {
	iter     *pebble.Iterator
	started  bool
	released bool
	err      error
}

func (i *iterator) usable() bool {
	return i.iter != nil && !i.released
}

func (i *iterator) First() bool {
	i.started = true
	return i.usable() && i.iter.First()
}

func (i *iterator) Last() bool {
	i.started = true
	return i.usable() && i.iter.Last()
}

func (i *iterator) Seek(key []byte) bool {
	i.started = true
	return i.usable() && i.iter.SeekGE(key)
}

// Next moves to the first key on the first call, like goleveldb iterators.
func (i *iterator) Next() bool {
	if !i.usable() {
		return false
	}
	if !i.started {
		i.started = true
		return i.iter.First()
	}
	return i.iter.Next()
}

// Prev moves to the last key on the first call.
func (i *iterator) Prev() bool {
	if !i.usable() {
		return false
	}
	if !i.started {
		i.started = true
		return i.iter.Last()
	}
	return i.iter.Prev()
}

func (i *iterator) Valid() bool {
	return i.usable() && i.iter.Valid()
}

func (i *iterator) Key() []byte {
	if !i.Valid() {
		return nil
	}
	return i.iter.Key()
}

func (i *iterator) Value() []byte {
	if !i.Valid() {
		return nil
	}
	return i.iter.Value()
}

func (i *iterator) Error() error {
	switch {
	case i.released:
		return engine.ErrIterReleased
	case i.iter == nil:
		return i.err
	}
	return i.iter.Error()
}

func (i *iterator) Release() {
	if i.usable() {
		i.iter.Close()
	}
	i.released = true
}
