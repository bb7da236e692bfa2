// path: internal/store/store.go

// Package store persists game records in a BadgerDB key-value store.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/PracplayLLC/chess-app/internal/export"
)

const gameKeyPrefix = "game:"

// ErrNotFound reports a game id with no saved record.
var ErrNotFound = errors.New("game not found")

// Summary describes a saved game without its full move list.
type Summary struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"savedAt"`
	Plies   int       `json:"plies"`
	Result  string    `json:"result"`
}

// entry is the stored value: the record plus its save timestamp.
type entry struct {
	SavedAt time.Time     `json:"savedAt"`
	Record  export.Record `json:"record"`
}

// Store wraps BadgerDB for persistent game storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

// Save stores rec under id, replacing any previous record.
func (s *Store) Save(id string, rec export.Record) error {
	if id == "" {
		return errors.New("empty game id")
	}
	data, err := json.Marshal(entry{SavedAt: time.Now().UTC(), Record: rec})
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(id), data)
	})
}

// Load returns the record saved under id.
func (s *Store) Load(id string) (export.Record, error) {
	var e entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	return e.Record, err
}

// Delete removes the record saved under id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// List returns summaries of every saved game in key order.
func (s *Store) List() ([]Summary, error) {
	var out []Summary
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(gameKeyPrefix):])
			var e entry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			out = append(out, Summary{
				ID:      id,
				SavedAt: e.SavedAt,
				Plies:   len(e.Record.Plies),
				Result:  e.Record.Result,
			})
		}
		return nil
	})
	return out, err
}
