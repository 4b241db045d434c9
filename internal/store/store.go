package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for the record families held in the database.
const (
	currentUserKey = "user:current"
	likesPrefix    = "likes:"
	commentsPrefix = "comments:"
)

// Store is the Badger-backed Interactions implementation.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// compile-time interface check
var _ Interactions = (*Store)(nil)

// New opens (or creates) the database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, ErrStorage.WithMessage("failed to open database").WithCause(err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// getRecord reads and decodes one record inside txn. Returns
// ErrNotFound when the key is absent and a storage error when the
// stored bytes fail to parse.
func getRecord(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return ErrStorage.WithMessage("failed to read record").WithCause(err)
	}

	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, dest); err != nil {
			return ErrStorage.WithMessage(fmt.Sprintf("corrupt record at %s", key)).WithCause(err)
		}
		return nil
	})
}

// setRecord encodes and writes one record inside txn.
func setRecord(txn *badger.Txn, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return ErrStorage.WithMessage("failed to marshal record").WithCause(err)
	}
	if err := txn.Set([]byte(key), data); err != nil {
		return ErrStorage.WithMessage("failed to write record").WithCause(err)
	}
	return nil
}

// view runs a read-only transaction after checking ctx.
func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

// update runs a read-modify-write transaction after checking ctx.
// Badger commits the transaction atomically, which is what preserves
// the like-counter invariant for each code key.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(fn)
}
