package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/desperati0n/ismism/internal/domain"
)

// newRandomUser mints a fresh anonymous identity with a readable
// display name.
func newRandomUser() domain.User {
	return domain.User{
		ID:   uuid.New().String(),
		Name: fmt.Sprintf("用户%d", rand.IntN(10000)),
	}
}

// GetCurrentUser returns the persisted browsing identity, creating one
// on first access. The generated identity survives restarts.
func (s *Store) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User

	err := s.update(ctx, func(txn *badger.Txn) error {
		err := getRecord(txn, currentUserKey, &user)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		user = newRandomUser()
		return setRecord(txn, currentUserKey, user)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SetCurrentUser replaces the persisted identity wholesale. The name
// must be non-empty after trimming; an empty ID keeps the stored one
// (or mints a fresh one when nothing is stored yet).
func (s *Store) SetCurrentUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return ErrInvalidInput.WithMessage("user cannot be nil")
	}
	name := strings.TrimSpace(user.Name)
	if name == "" {
		return ErrInvalidInput.WithMessage("user name cannot be empty")
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		next := domain.User{ID: user.ID, Name: name}

		if next.ID == "" {
			var stored domain.User
			err := getRecord(txn, currentUserKey, &stored)
			switch {
			case err == nil:
				next.ID = stored.ID
			case errors.Is(err, ErrNotFound):
				next.ID = uuid.New().String()
			default:
				return err
			}
		}

		return setRecord(txn, currentUserKey, next)
	})
}
