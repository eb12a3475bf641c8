// Package storage is the raw Badger-backed byte store that
// internal/database's Disk builds its per-tier records on top of.
// Adapted from the teacher's internal/storage.Storage (a *badger.DB
// wrapper exposing NewStorage/Close plus transactional get/set for a
// handful of fixed preference/stats keys) into a domain-agnostic
// key/value layer: the preference and stats types are gone, replaced
// by the plain byte-keyed Get/Set/Has the tier database actually
// needs, since a solved tier's key (game name plus tier id) and value
// (packed Value/Remoteness records) have nothing to do with chess UI
// settings.
package storage

import (
	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound mirrors badger.ErrKeyNotFound under this package's own
// name, so callers never need to import badger themselves just to
// compare against it.
var ErrNotFound = badger.ErrKeyNotFound

// Store wraps a single BadgerDB handle rooted at one directory.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a Store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying Badger handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Has reports whether key is present.
func (s *Store) Has(key []byte) bool {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	return err == nil
}

// Get reads key's current value and passes it to fn while the
// transaction is still open, the zero-copy shape Badger's own
// item.Value callback takes. Returns ErrNotFound if key is absent.
func (s *Store) Get(key []byte, fn func([]byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(fn)
	})
}

// Set writes key -> value in its own transaction.
func (s *Store) Set(key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}
