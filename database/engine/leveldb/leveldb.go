// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldb implements engine.Engine on top of goleveldb.  It registers
// itself under DbType "leveldb".
package leveldb

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/whippetcoin/whippetd/database/engine"
)

// DbType is the identifier the backend registers itself under.
const DbType = "leveldb"

func init() {
	driver := engine.Driver{
		DbType: DbType,
		Open:   NewDB,
	}
	if err := engine.RegisterDriver(driver); err != nil {
		panic(err)
	}
}

// NewDB opens the leveldb database at dbPath.  When create is set the
// database must not already exist; otherwise it must.
func NewDB(dbPath string, create bool) (engine.Engine, error) {
	opts := opt.Options{
		ErrorIfExist:   create,
		ErrorIfMissing: !create,
		Strict:         opt.DefaultStrict,
		Compression:    opt.NoCompression,
		Filter:         filter.NewBloomFilter(10),
	}
	ldb, err := leveldb.OpenFile(dbPath, &opts)
	if err != nil {
		return nil, err
	}
	return &db{ldb: ldb}, nil
}

// db adapts a goleveldb database to engine.Engine.
type db struct {
	ldb *leveldb.DB
}

// Transaction opens a leveldb transaction.  Writes stay invisible to
// snapshots until it commits.
func (d *db) Transaction() (engine.Transaction, error) {
	tx, err := d.ldb.OpenTransaction()
	if err != nil {
		return nil, err
	}
	return &transaction{tx: tx}, nil
}

func (d *db) Snapshot() (engine.Snapshot, error) {
	s, err := d.ldb.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &snapshot{s: s}, nil
}

func (d *db) Close() error {
	return d.ldb.Close()
}

// transaction adapts a leveldb transaction to engine.Transaction.
type transaction struct {
	tx *leveldb.Transaction
}

func (t *transaction) Put(key, value []byte) error {
	return t.tx.Put(key, value, nil)
}

func (t *transaction) Delete(key []byte) error {
	return t.tx.Delete(key, nil)
}

func (t *transaction) Commit() error {
	return t.tx.Commit()
}

func (t *transaction) Discard() {
	t.tx.Discard()
}

// snapshot adapts a leveldb snapshot to engine.Snapshot.
type snapshot struct {
	s *leveldb.Snapshot
}

func (s *snapshot) Get(key []byte) ([]byte, error) {
	value, err := s.s.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, engine.ErrNotFound
	}
	return value, err
}

func (s *snapshot) Has(key []byte) (bool, error) {
	return s.s.Has(key, nil)
}

// NewIterator returns a leveldb iterator over r, which already satisfies
// engine.Iterator.
func (s *snapshot) NewIterator(r *engine.Range) engine.Iterator {
	return s.s.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

func (s *snapshot) Release() {
	s.s.Release()
}
