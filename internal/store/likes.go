package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/desperati0n/ismism/internal/domain"
)

func likesKey(code string) string {
	return likesPrefix + code
}

// GetIsmLikes returns the like state for code. A code nobody has
// interacted with yields the zero state, not an error.
func (s *Store) GetIsmLikes(ctx context.Context, code string) (*domain.IsmLikes, error) {
	var likes domain.IsmLikes

	err := s.view(ctx, func(txn *badger.Txn) error {
		return getRecord(txn, likesKey(code), &likes)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return &likes, nil
}

// ToggleIsmLike flips the user's like on code and returns the new
// state. The read and write happen in one transaction so concurrent
// toggles cannot lose counts.
func (s *Store) ToggleIsmLike(ctx context.Context, code string) (*domain.IsmLikes, error) {
	var likes domain.IsmLikes

	err := s.update(ctx, func(txn *badger.Txn) error {
		err := getRecord(txn, likesKey(code), &likes)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		likes.Toggle()
		return setRecord(txn, likesKey(code), likes)
	})
	if err != nil {
		return nil, err
	}

	return &likes, nil
}
