package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/store"
)

// GetCurrentUser returns the persisted browsing identity, creating one
// on first access.
func (s *Store) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	user, err := currentUserTx(ctx, tx)
	if errors.Is(err, sql.ErrNoRows) {
		user = &domain.User{
			ID:   uuid.New().String(),
			Name: fmt.Sprintf("用户%d", rand.IntN(10000)),
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO current_user_row (id, user_id, name) VALUES (1, ?, ?)`,
			user.ID, user.Name)
	}
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	return user, nil
}

// SetCurrentUser replaces the persisted identity wholesale.
func (s *Store) SetCurrentUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return store.ErrInvalidInput.WithMessage("user cannot be nil")
	}
	name := strings.TrimSpace(user.Name)
	if name == "" {
		return store.ErrInvalidInput.WithMessage("user name cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	id := user.ID
	if id == "" {
		stored, err := currentUserTx(ctx, tx)
		switch {
		case err == nil:
			id = stored.ID
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.New().String()
		default:
			return store.ErrStorage.WithCause(err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO current_user_row (id, user_id, name) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, name = excluded.name`,
		id, name)
	if err != nil {
		return store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return store.ErrStorage.WithCause(err)
	}
	return nil
}

// currentUserTx reads the singleton identity row inside tx. Returns
// sql.ErrNoRows when no identity has been created yet.
func currentUserTx(ctx context.Context, tx *sql.Tx) (*domain.User, error) {
	var user domain.User
	err := tx.QueryRowContext(ctx, `
		SELECT user_id, name FROM current_user_row WHERE id = 1`).
		Scan(&user.ID, &user.Name)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ensureCurrentUserTx resolves the identity inside tx, creating one
// on first use so comment authorship never fails on a fresh database.
func ensureCurrentUserTx(ctx context.Context, tx *sql.Tx) (*domain.User, error) {
	user, err := currentUserTx(ctx, tx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user = &domain.User{
		ID:   uuid.New().String(),
		Name: fmt.Sprintf("用户%d", rand.IntN(10000)),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO current_user_row (id, user_id, name) VALUES (1, ?, ?)`,
		user.ID, user.Name)
	if err != nil {
		return nil, err
	}
	return user, nil
}
