package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/store"
)

// GetIsmLikes returns the like state for code. A code nobody has
// interacted with yields the zero state, not an error.
func (s *Store) GetIsmLikes(ctx context.Context, code string) (*domain.IsmLikes, error) {
	var (
		likes domain.IsmLikes
		liked int
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT total_likes, liked_by_user FROM ism_likes WHERE code = ?`, code).
		Scan(&likes.TotalLikes, &liked)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.IsmLikes{}, nil
	}
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	likes.IsLikedByUser = liked != 0
	return &likes, nil
}

// ToggleIsmLike flips the viewer's like on code inside a single
// transaction and returns the new state.
func (s *Store) ToggleIsmLike(ctx context.Context, code string) (*domain.IsmLikes, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	var (
		likes domain.IsmLikes
		liked int
	)

	err = tx.QueryRowContext(ctx, `
		SELECT total_likes, liked_by_user FROM ism_likes WHERE code = ?`, code).
		Scan(&likes.TotalLikes, &liked)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrStorage.WithCause(err)
	}
	likes.IsLikedByUser = liked != 0

	likes.Toggle()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ism_likes (code, total_likes, liked_by_user) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			total_likes = excluded.total_likes,
			liked_by_user = excluded.liked_by_user`,
		code, likes.TotalLikes, boolToInt(likes.IsLikedByUser))
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	return &likes, nil
}
