// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// putAll writes kvs to e in a single committed transaction.
func putAll(t *testing.T, e Engine, kvs ...string) {
	t.Helper()

	tx, err := e.Transaction()
	require.NoError(t, err, "failed to create transaction")
	for i := 0; i+1 < len(kvs); i += 2 {
		require.NoError(t, tx.Put([]byte(kvs[i]), []byte(kvs[i+1])))
	}
	require.NoError(t, tx.Commit(), "failed to commit transaction")
}

// collect returns the keys of r in iteration order.
func collect(t *testing.T, e Engine, r *Range) []string {
	t.Helper()

	snapshot, err := e.Snapshot()
	require.NoError(t, err, "failed to create snapshot")
	defer snapshot.Release()

	iter := snapshot.NewIterator(r)
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	return keys
}

// TestSuiteEngine runs the behavior every Engine implementation must share.
// newEngine is called once per subtest and must return an empty engine.
func TestSuiteEngine(t *testing.T, newEngine func() Engine) {
	t.Run("Isolation", func(t *testing.T) {
		e := newEngine()
		defer e.Close()

		tx, err := e.Transaction()
		require.NoError(t, err, "failed to create transaction")
		require.NoError(t, tx.Put([]byte("t"), []byte{0x2a}))

		// Uncommitted writes are invisible.
		before, err := e.Snapshot()
		require.NoError(t, err, "failed to create snapshot")
		defer before.Release()

		has, err := before.Has([]byte("t"))
		require.NoError(t, err)
		require.False(t, has)
		value, err := before.Get([]byte("t"))
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, value)

		require.NoError(t, tx.Commit(), "failed to commit transaction")

		// Snapshots taken earlier keep their view.
		_, err = before.Get([]byte("t"))
		require.ErrorIs(t, err, ErrNotFound)

		after, err := e.Snapshot()
		require.NoError(t, err, "failed to create snapshot")
		defer after.Release()
		value, err = after.Get([]byte("t"))
		require.NoError(t, err)
		require.Equal(t, []byte{0x2a}, value)
	})

	t.Run("OverwriteAndDelete", func(t *testing.T) {
		e := newEngine()
		defer e.Close()

		putAll(t, e, "keep", "1", "drop", "2")

		tx, err := e.Transaction()
		require.NoError(t, err, "failed to create transaction")
		require.NoError(t, tx.Put([]byte("keep"), []byte("3")))
		require.NoError(t, tx.Delete([]byte("drop")))
		require.NoError(t, tx.Delete([]byte("never-written")))
		require.NoError(t, tx.Commit())

		snapshot, err := e.Snapshot()
		require.NoError(t, err, "failed to create snapshot")
		defer snapshot.Release()

		value, err := snapshot.Get([]byte("keep"))
		require.NoError(t, err)
		require.Equal(t, []byte("3"), value)

		has, err := snapshot.Has([]byte("drop"))
		require.NoError(t, err)
		require.False(t, has, "deleted key still present")
	})

	t.Run("Ranges", func(t *testing.T) {
		e := newEngine()
		defer e.Close()

		putAll(t, e, "h1", "a", "h2", "b", "h3", "c", "x1", "d", "x10", "e",
			"x2", "f")

		tests := []struct {
			name string
			r    *Range
			want []string
		}{
			{"below every key", &Range{Start: []byte("a"), Limit: []byte("h1")}, nil},
			{"limit excluded", &Range{Start: []byte("h0"), Limit: []byte("h2")}, []string{"h1"}},
			{"start included", &Range{Start: []byte("h1"), Limit: []byte("h3")}, []string{"h1", "h2"}},
			{"start between keys", &Range{Start: []byte("h10"), Limit: []byte("h30")}, []string{"h2", "h3"}},
			{"empty", &Range{Start: []byte("h2"), Limit: []byte("h2")}, nil},
			{"prefix", BytesPrefix([]byte("x1")), []string{"x1", "x10"}},
			{"unbounded", &Range{}, []string{"h1", "h2", "h3", "x1", "x10", "x2"}},
		}
		for _, test := range tests {
			require.Equal(t, test.want, collect(t, e, test.r), test.name)
		}
	})

	t.Run("Reverse", func(t *testing.T) {
		e := newEngine()
		defer e.Close()

		putAll(t, e, "a1", "", "b1", "", "b2", "", "b3", "", "c1", "")

		snapshot, err := e.Snapshot()
		require.NoError(t, err, "failed to create snapshot")
		defer snapshot.Release()

		iter := snapshot.NewIterator(BytesPrefix([]byte("b")))
		defer iter.Release()

		var keys []string
		for ok := iter.Last(); ok; ok = iter.Prev() {
			keys = append(keys, string(iter.Key()))
		}
		require.Equal(t, []string{"b3", "b2", "b1"}, keys)
		require.False(t, iter.Valid())
		require.Nil(t, iter.Key())

		require.True(t, iter.Seek([]byte("b2")))
		require.Equal(t, []byte("b2"), iter.Key())
		require.True(t, iter.First())
		require.Equal(t, []byte("b1"), iter.Key())
	})

	t.Run("Release", func(t *testing.T) {
		e := newEngine()

		tx, err := e.Transaction()
		require.NoError(t, err, "failed to create transaction")
		tx.Discard()
		tx.Discard()
		require.Error(t, tx.Commit(), "committed a discarded transaction")

		snapshot, err := e.Snapshot()
		require.NoError(t, err, "failed to create snapshot")
		iter := snapshot.NewIterator(&Range{})
		require.NoError(t, iter.Error())
		iter.Release()
		iter.Release()

		snapshot.Release()
		snapshot.Release()
		_, err = snapshot.Get([]byte("t"))
		require.Error(t, err, "read from a released snapshot")

		require.NoError(t, e.Close(), "failed to close engine")
		require.Error(t, e.Close(), "closed the engine twice")

		_, err = e.Transaction()
		require.Error(t, err, "transaction on a closed engine")
		_, err = e.Snapshot()
		require.Error(t, err, "snapshot on a closed engine")
	})
}

// TestSuiteOpen checks the registered backend dbType honors the create flag
// of Open and persists data at path, which must not exist yet.
func TestSuiteOpen(t *testing.T, dbType, path string) {
	_, err := Open(dbType, path, false)
	require.Error(t, err, "opened a missing database")

	e, err := Open(dbType, path, true)
	require.NoError(t, err, "failed to create database")
	putAll(t, e, "t", "tip")
	require.NoError(t, e.Close())

	_, err = Open(dbType, path, true)
	require.Error(t, err, "created over an existing database")

	e, err = Open(dbType, path, false)
	require.NoError(t, err, "failed to reopen database")
	defer e.Close()

	snapshot, err := e.Snapshot()
	require.NoError(t, err)
	defer snapshot.Release()
	value, err := snapshot.Get([]byte("t"))
	require.NoError(t, err)
	require.Equal(t, []byte("tip"), value)

	_, err = Open("bogus", path, false)
	require.ErrorIs(t, err, ErrUnknownType)
}
