// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/lru"
	"github.com/whippetcoin/whippetd/blockchain"
	"github.com/whippetcoin/whippetd/database/engine"
)

// Errors that the store may return.  They are wrapped with details, so test
// for them with errors.Is.
var (
	ErrNotFound      = errors.New("header not found")
	ErrEmpty         = errors.New("header database is empty")
	ErrNotContiguous = errors.New("headers do not extend the stored tip")
	ErrDuplicate     = errors.New("duplicate header hash")
	ErrCorrupt       = errors.New("corrupt header database entry")
)

// recentHashesLimit is the number of recently stored hashes remembered to
// reject duplicates without a database read.
const recentHashesLimit = 2048

// Store persists a single chain of headers indexed by height and by hash.
// Headers can only be appended on top of the current tip.
//
// Store is safe for concurrent access.
type Store struct {
	db engine.Engine

	mtx    sync.RWMutex
	tip    *blockchain.Header
	recent lru.Cache
}

// New returns a Store backed by the passed engine, loading the current tip.
// The Store takes ownership of db and closes it on Close.
func New(db engine.Engine) (*Store, error) {
	s := &Store{
		db:     db,
		recent: lru.NewCache(recentHashesLimit),
	}

	snapshot, err := db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	serialized, err := snapshot.Get(tipKey)
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, err
	}
	height, err := deserializeHeight(serialized)
	if err != nil {
		return nil, err
	}
	s.tip, err = fetchHeader(snapshot, height)
	if err != nil {
		return nil, fmt.Errorf("loading tip: %w", err)
	}
	return s, nil
}

// Open opens, or creates when create is set, a header database of the
// passed engine type at path.  The backend must have been registered by
// importing its package.
func Open(dbType, path string, create bool) (*Store, error) {
	db, err := engine.Open(dbType, path, create)
	if err != nil {
		return nil, err
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	if s.tip != nil {
		log.Infof("Opened %s header database at %s with tip %v (height %d)",
			dbType, path, s.tip.Hash, s.tip.Height)
	} else {
		log.Infof("Opened empty %s header database at %s", dbType, path)
	}
	return s, nil
}

// Close closes the underlying engine.
func (s *Store) Close() error {
	return s.db.Close()
}

// fetchHeader reads the header stored at height from the snapshot.
func fetchHeader(snapshot engine.Snapshot, height int32) (*blockchain.Header, error) {
	serialized, err := snapshot.Get(heightKey(height))
	if errors.Is(err, engine.ErrNotFound) {
		return nil, fmt.Errorf("%w: height %d", ErrNotFound, height)
	}
	if err != nil {
		return nil, err
	}
	header, err := deserializeHeader(serialized)
	if err != nil {
		return nil, err
	}
	if header.Height != height {
		return nil, fmt.Errorf("%w: header under height %d claims "+
			"height %d", ErrCorrupt, height, header.Height)
	}
	return header, nil
}

// Tip returns the highest stored header or ErrEmpty.
func (s *Store) Tip() (*blockchain.Header, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.tip == nil {
		return nil, ErrEmpty
	}
	tip := *s.tip
	return &tip, nil
}

// PutHeaders appends headers, which must be ordered by height and start
// directly above the current tip (at zero for an empty store), in a single
// atomic write.  Headers whose hash is already stored are rejected.
func (s *Store) PutHeaders(headers []*blockchain.Header) error {
	if len(headers) == 0 {
		return nil
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	nextHeight := int32(0)
	if s.tip != nil {
		nextHeight = s.tip.Height + 1
	}

	snapshot, err := s.db.Snapshot()
	if err != nil {
		return err
	}
	defer snapshot.Release()

	batchHashes := make(map[chainhash.Hash]struct{}, len(headers))
	for i, header := range headers {
		want := nextHeight + int32(i)
		if header.Height != want {
			return fmt.Errorf("%w: header %v has height %d, want %d",
				ErrNotContiguous, header.Hash, header.Height, want)
		}

		if _, ok := batchHashes[header.Hash]; ok || s.recent.Contains(header.Hash) {
			return fmt.Errorf("%w: %v", ErrDuplicate, header.Hash)
		}
		exists, err := snapshot.Has(hashKey(&header.Hash))
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %v", ErrDuplicate, header.Hash)
		}
		batchHashes[header.Hash] = struct{}{}
	}

	tx, err := s.db.Transaction()
	if err != nil {
		return err
	}
	for _, header := range headers {
		err := tx.Put(heightKey(header.Height), serializeHeader(header))
		if err == nil {
			err = tx.Put(hashKey(&header.Hash), serializeHeight(header.Height))
		}
		if err != nil {
			tx.Discard()
			return err
		}
	}
	newTip := *headers[len(headers)-1]
	if err := tx.Put(tipKey, serializeHeight(newTip.Height)); err != nil {
		tx.Discard()
		return err
	}
	if err := tx.Commit(); err != nil {
		tx.Discard()
		return err
	}

	for _, header := range headers {
		s.recent.Add(header.Hash)
	}
	s.tip = &newTip

	log.Debugf("Stored %d headers, new tip %v (height %d)", len(headers),
		newTip.Hash, newTip.Height)
	log.Tracef("New tip: %v", newLogClosure(func() string {
		return spew.Sdump(&newTip)
	}))
	return nil
}

// HeaderByHeight returns the header stored at the passed height.
func (s *Store) HeaderByHeight(height int32) (*blockchain.Header, error) {
	snapshot, err := s.db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	return fetchHeader(snapshot, height)
}

// HeaderByHash returns the header with the passed hash.
func (s *Store) HeaderByHash(hash *chainhash.Hash) (*blockchain.Header, error) {
	snapshot, err := s.db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	serialized, err := snapshot.Get(hashKey(hash))
	if errors.Is(err, engine.ErrNotFound) {
		return nil, fmt.Errorf("%w: hash %v", ErrNotFound, hash)
	}
	if err != nil {
		return nil, err
	}
	height, err := deserializeHeight(serialized)
	if err != nil {
		return nil, err
	}
	return fetchHeader(snapshot, height)
}

// AncestorWindow returns up to n headers directly below tip, nearest first,
// suitable for the difficulty engine.  The window is cut short where the
// store has no header, which the engine treats as missing history.
func (s *Store) AncestorWindow(tip *blockchain.Header, n int) (blockchain.HeaderSlice, error) {
	if tip == nil || n <= 0 || tip.Height <= 0 {
		return nil, nil
	}

	start := int64(tip.Height) - int64(n)
	if start < 0 {
		start = 0
	}

	snapshot, err := s.db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	iter := snapshot.NewIterator(&engine.Range{
		Start: heightKey(int32(start)),
		Limit: heightKey(tip.Height),
	})
	defer iter.Release()

	window := make(blockchain.HeaderSlice, 0, tip.Height-int32(start))
	want := tip.Height - 1
	for ok := iter.Last(); ok; ok = iter.Prev() {
		header, err := deserializeHeader(iter.Value())
		if err != nil {
			return nil, err
		}
		if header.Height != want {
			break
		}
		window = append(window, header)
		want--
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return window, nil
}

// ForEach calls fn with every stored header from the passed height upwards
// in height order.  Iteration stops at the first error fn returns.
func (s *Store) ForEach(from int32, fn func(*blockchain.Header) error) error {
	if from < 0 {
		from = 0
	}

	snapshot, err := s.db.Snapshot()
	if err != nil {
		return err
	}
	defer snapshot.Release()

	iter := snapshot.NewIterator(&engine.Range{
		Start: heightKey(from),
		Limit: engine.BytesPrefix(heightPrefix).Limit,
	})
	defer iter.Release()

	for iter.Next() {
		header, err := deserializeHeader(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(header); err != nil {
			return err
		}
	}
	return iter.Error()
}

// DropAfter removes every header above height so the header at height
// becomes the tip.  A negative height empties the store.  It returns the
// number of headers removed.
func (s *Store) DropAfter(height int32) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.tip == nil || height >= s.tip.Height {
		return 0, nil
	}
	if height < -1 {
		height = -1
	}

	snapshot, err := s.db.Snapshot()
	if err != nil {
		return 0, err
	}
	defer snapshot.Release()

	var newTip *blockchain.Header
	if height >= 0 {
		newTip, err = fetchHeader(snapshot, height)
		if err != nil {
			return 0, err
		}
	}

	iter := snapshot.NewIterator(&engine.Range{
		Start: heightKey(height + 1),
		Limit: engine.BytesPrefix(heightPrefix).Limit,
	})
	defer iter.Release()

	tx, err := s.db.Transaction()
	if err != nil {
		return 0, err
	}
	var dropped []chainhash.Hash
	for iter.Next() {
		header, err := deserializeHeader(iter.Value())
		if err == nil {
			err = tx.Delete(heightKey(header.Height))
		}
		if err == nil {
			err = tx.Delete(hashKey(&header.Hash))
		}
		if err != nil {
			tx.Discard()
			return 0, err
		}
		dropped = append(dropped, header.Hash)
	}
	if err := iter.Error(); err != nil {
		tx.Discard()
		return 0, err
	}

	if newTip != nil {
		err = tx.Put(tipKey, serializeHeight(newTip.Height))
	} else {
		err = tx.Delete(tipKey)
	}
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		tx.Discard()
		return 0, err
	}

	for _, hash := range dropped {
		s.recent.Delete(hash)
	}
	s.tip = newTip

	log.Infof("Dropped %d headers above height %d", len(dropped), height)
	return len(dropped), nil
}
