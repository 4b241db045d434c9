package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/id"
	"github.com/desperati0n/ismism/internal/store"
)

// GetComments returns the comment list for code, most recent first,
// with each comment's replies in chronological order.
func (s *Store) GetComments(ctx context.Context, code string) ([]domain.Comment, error) {
	// Insertion order (rowid) breaks ties between same-timestamp rows,
	// so newest-first for comments is rowid descending.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author_id, author_name, content, created_at, likes, liked_by_user
		FROM comments WHERE code = ? ORDER BY rowid DESC`, code)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	index := map[string]int{}

	for rows.Next() {
		var (
			c         domain.Comment
			createdAt string
			liked     int
		)
		err := rows.Scan(&c.ID, &c.Author.ID, &c.Author.Name, &c.Content,
			&createdAt, &c.Likes, &liked)
		if err != nil {
			return nil, store.ErrStorage.WithCause(err)
		}
		if c.Timestamp, err = parseTime(createdAt); err != nil {
			return nil, store.ErrStorage.WithMessage("corrupt comment timestamp").WithCause(err)
		}
		c.LikedByUser = liked != 0
		c.Replies = []domain.Reply{}

		index[c.ID] = len(comments)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	if len(comments) == 0 {
		return comments, nil
	}

	replyRows, err := s.db.QueryContext(ctx, `
		SELECT r.comment_id, r.id, r.author_id, r.author_name, r.content,
			r.created_at, r.likes, r.liked_by_user, r.reply_to_id, r.reply_to_name
		FROM replies r
		JOIN comments c ON c.id = r.comment_id
		WHERE c.code = ? ORDER BY r.rowid ASC`, code)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var (
			commentID   string
			r           domain.Reply
			createdAt   string
			liked       int
			replyToID   sql.NullString
			replyToName sql.NullString
		)
		err := replyRows.Scan(&commentID, &r.ID, &r.Author.ID, &r.Author.Name,
			&r.Content, &createdAt, &r.Likes, &liked, &replyToID, &replyToName)
		if err != nil {
			return nil, store.ErrStorage.WithCause(err)
		}
		if r.Timestamp, err = parseTime(createdAt); err != nil {
			return nil, store.ErrStorage.WithMessage("corrupt reply timestamp").WithCause(err)
		}
		r.LikedByUser = liked != 0
		if replyToID.Valid {
			r.ReplyToUser = &domain.User{ID: replyToID.String, Name: replyToName.String}
		}

		if i, ok := index[commentID]; ok {
			comments[i].Replies = append(comments[i].Replies, r)
		}
	}
	if err := replyRows.Err(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	return comments, nil
}

// AddComment inserts a new top-level comment authored by the current
// user and returns it.
func (s *Store) AddComment(ctx context.Context, code, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, store.ErrInvalidInput.WithMessage("comment content cannot be empty")
	}

	commentID, err := id.Generate("comment")
	if err != nil {
		return nil, store.ErrStorage.WithMessage("failed to generate comment id").WithCause(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	author, err := ensureCurrentUserTx(ctx, tx)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	comment := domain.Comment{
		ID:        commentID,
		Author:    *author,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Replies:   []domain.Reply{},
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comments (id, code, author_id, author_name, content, created_at, likes, liked_by_user)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0)`,
		comment.ID, code, comment.Author.ID, comment.Author.Name,
		comment.Content, formatTime(comment.Timestamp))
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	return &comment, nil
}

// DeleteComment removes the comment and, through the foreign key
// cascade, all its replies. Deleting a missing id is a no-op.
func (s *Store) DeleteComment(ctx context.Context, code, commentID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM comments WHERE code = ? AND id = ?`, code, commentID)
	if err != nil {
		return store.ErrStorage.WithCause(err)
	}
	return nil
}

// ToggleCommentLike flips the viewer's like on the comment and returns
// the updated comment. A missing comment id fails loudly.
func (s *Store) ToggleCommentLike(ctx context.Context, code, commentID string) (*domain.Comment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	var (
		c         domain.Comment
		createdAt string
		liked     int
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, author_id, author_name, content, created_at, likes, liked_by_user
		FROM comments WHERE code = ? AND id = ?`, code, commentID).
		Scan(&c.ID, &c.Author.ID, &c.Author.Name, &c.Content, &createdAt, &c.Likes, &liked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCommentNotFound
	}
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	if c.Timestamp, err = parseTime(createdAt); err != nil {
		return nil, store.ErrStorage.WithMessage("corrupt comment timestamp").WithCause(err)
	}
	c.LikedByUser = liked != 0
	c.Replies = []domain.Reply{}

	c.ToggleLike()

	_, err = tx.ExecContext(ctx, `
		UPDATE comments SET likes = ?, liked_by_user = ? WHERE id = ?`,
		c.Likes, boolToInt(c.LikedByUser), c.ID)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	return &c, nil
}

// AddReply appends a reply to the comment's thread and returns it.
// A missing comment id fails loudly rather than silently dropping the
// reply.
func (s *Store) AddReply(ctx context.Context, code, commentID, content string, replyTo *domain.User) (*domain.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, store.ErrInvalidInput.WithMessage("reply content cannot be empty")
	}

	replyID, err := id.Generate("reply")
	if err != nil {
		return nil, store.ErrStorage.WithMessage("failed to generate reply id").WithCause(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM comments WHERE code = ? AND id = ?`, code, commentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCommentNotFound
	}
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	author, err := ensureCurrentUserTx(ctx, tx)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	reply := domain.Reply{
		ID:          replyID,
		Author:      *author,
		Content:     content,
		Timestamp:   time.Now().UTC(),
		ReplyToUser: replyTo,
	}

	var replyToID, replyToName sql.NullString
	if replyTo != nil {
		replyToID = nullString(replyTo.ID)
		replyToName = nullString(replyTo.Name)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO replies (id, comment_id, author_id, author_name, content,
			created_at, likes, liked_by_user, reply_to_id, reply_to_name)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		reply.ID, commentID, reply.Author.ID, reply.Author.Name,
		reply.Content, formatTime(reply.Timestamp), replyToID, replyToName)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	return &reply, nil
}

// DeleteReply removes one reply from its parent comment. Missing ids
// are no-ops.
func (s *Store) DeleteReply(ctx context.Context, code, commentID, replyID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM replies WHERE id = ? AND comment_id IN (
			SELECT id FROM comments WHERE code = ? AND id = ?)`,
		replyID, code, commentID)
	if err != nil {
		return store.ErrStorage.WithCause(err)
	}
	return nil
}

// ToggleReplyLike flips the viewer's like on a reply and returns the
// updated reply. Missing ids fail loudly.
func (s *Store) ToggleReplyLike(ctx context.Context, code, commentID, replyID string) (*domain.Reply, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM comments WHERE code = ? AND id = ?`, code, commentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCommentNotFound
	}
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	var (
		r           domain.Reply
		createdAt   string
		liked       int
		replyToID   sql.NullString
		replyToName sql.NullString
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, author_id, author_name, content, created_at, likes, liked_by_user,
			reply_to_id, reply_to_name
		FROM replies WHERE comment_id = ? AND id = ?`, commentID, replyID).
		Scan(&r.ID, &r.Author.ID, &r.Author.Name, &r.Content, &createdAt,
			&r.Likes, &liked, &replyToID, &replyToName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrReplyNotFound
	}
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	if r.Timestamp, err = parseTime(createdAt); err != nil {
		return nil, store.ErrStorage.WithMessage("corrupt reply timestamp").WithCause(err)
	}
	r.LikedByUser = liked != 0
	if replyToID.Valid {
		r.ReplyToUser = &domain.User{ID: replyToID.String, Name: replyToName.String}
	}

	r.ToggleLike()

	_, err = tx.ExecContext(ctx, `
		UPDATE replies SET likes = ?, liked_by_user = ? WHERE id = ?`,
		r.Likes, boolToInt(r.LikedByUser), r.ID)
	if err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, store.ErrStorage.WithCause(err)
	}
	return &r, nil
}
