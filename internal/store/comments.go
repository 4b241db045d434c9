package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/id"
)

func commentsKey(code string) string {
	return commentsPrefix + code
}

// getComments reads the comment list for code inside txn. Absence
// reads as an empty list.
func getComments(txn *badger.Txn, code string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := getRecord(txn, commentsKey(code), &comments)
	if errors.Is(err, ErrNotFound) {
		return []domain.Comment{}, nil
	}
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetComments returns the comment list for code, most recent first.
func (s *Store) GetComments(ctx context.Context, code string) ([]domain.Comment, error) {
	var comments []domain.Comment

	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		comments, err = getComments(txn, code)
		return err
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// AddComment prepends a new top-level comment authored by the current
// user and returns it.
func (s *Store) AddComment(ctx context.Context, code, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput.WithMessage("comment content cannot be empty")
	}

	commentID, err := id.Generate("comment")
	if err != nil {
		return nil, ErrStorage.WithMessage("failed to generate comment id").WithCause(err)
	}

	var comment domain.Comment

	err = s.update(ctx, func(txn *badger.Txn) error {
		author, err := s.currentUserTxn(txn)
		if err != nil {
			return err
		}

		comments, err := getComments(txn, code)
		if err != nil {
			return err
		}

		comment = domain.Comment{
			ID:        commentID,
			Author:    author,
			Content:   content,
			Timestamp: time.Now().UTC(),
			Replies:   []domain.Reply{},
		}

		comments = append([]domain.Comment{comment}, comments...)
		return setRecord(txn, commentsKey(code), comments)
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// DeleteComment removes the comment and all its replies. Deleting an
// id that is already gone is a no-op.
func (s *Store) DeleteComment(ctx context.Context, code, commentID string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		comments, err := getComments(txn, code)
		if err != nil {
			return err
		}

		filtered := slices.DeleteFunc(comments, func(c domain.Comment) bool {
			return c.ID == commentID
		})
		if len(filtered) == len(comments) {
			return nil
		}

		return setRecord(txn, commentsKey(code), filtered)
	})
}

// ToggleCommentLike flips the viewer's like on the comment and returns
// the updated comment. A missing comment id fails loudly.
func (s *Store) ToggleCommentLike(ctx context.Context, code, commentID string) (*domain.Comment, error) {
	var comment domain.Comment

	err := s.update(ctx, func(txn *badger.Txn) error {
		comments, err := getComments(txn, code)
		if err != nil {
			return err
		}

		i := slices.IndexFunc(comments, func(c domain.Comment) bool {
			return c.ID == commentID
		})
		if i < 0 {
			return ErrCommentNotFound
		}

		comments[i].ToggleLike()
		comment = comments[i]
		return setRecord(txn, commentsKey(code), comments)
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// AddReply appends a reply to the comment's thread and returns it.
// replyTo optionally names the user being addressed. A missing comment
// id fails loudly rather than silently dropping the reply.
func (s *Store) AddReply(ctx context.Context, code, commentID, content string, replyTo *domain.User) (*domain.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput.WithMessage("reply content cannot be empty")
	}

	replyID, err := id.Generate("reply")
	if err != nil {
		return nil, ErrStorage.WithMessage("failed to generate reply id").WithCause(err)
	}

	var reply domain.Reply

	err = s.update(ctx, func(txn *badger.Txn) error {
		author, err := s.currentUserTxn(txn)
		if err != nil {
			return err
		}

		comments, err := getComments(txn, code)
		if err != nil {
			return err
		}

		i := slices.IndexFunc(comments, func(c domain.Comment) bool {
			return c.ID == commentID
		})
		if i < 0 {
			return ErrCommentNotFound
		}

		reply = domain.Reply{
			ID:          replyID,
			Author:      author,
			Content:     content,
			Timestamp:   time.Now().UTC(),
			ReplyToUser: replyTo,
		}

		comments[i].Replies = append(comments[i].Replies, reply)
		return setRecord(txn, commentsKey(code), comments)
	})
	if err != nil {
		return nil, err
	}

	return &reply, nil
}

// DeleteReply removes one reply from its parent comment. A missing
// comment or reply id is a no-op.
func (s *Store) DeleteReply(ctx context.Context, code, commentID, replyID string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		comments, err := getComments(txn, code)
		if err != nil {
			return err
		}

		i := slices.IndexFunc(comments, func(c domain.Comment) bool {
			return c.ID == commentID
		})
		if i < 0 {
			return nil
		}

		j := comments[i].FindReply(replyID)
		if j < 0 {
			return nil
		}

		comments[i].Replies = slices.Delete(comments[i].Replies, j, j+1)
		return setRecord(txn, commentsKey(code), comments)
	})
}

// ToggleReplyLike flips the viewer's like on a reply and returns the
// updated reply. Missing ids fail loudly.
func (s *Store) ToggleReplyLike(ctx context.Context, code, commentID, replyID string) (*domain.Reply, error) {
	var reply domain.Reply

	err := s.update(ctx, func(txn *badger.Txn) error {
		comments, err := getComments(txn, code)
		if err != nil {
			return err
		}

		i := slices.IndexFunc(comments, func(c domain.Comment) bool {
			return c.ID == commentID
		})
		if i < 0 {
			return ErrCommentNotFound
		}

		j := comments[i].FindReply(replyID)
		if j < 0 {
			return ErrReplyNotFound
		}

		comments[i].Replies[j].ToggleLike()
		reply = comments[i].Replies[j]
		return setRecord(txn, commentsKey(code), comments)
	})
	if err != nil {
		return nil, err
	}

	return &reply, nil
}

// currentUserTxn resolves the current user inside an existing write
// transaction, creating one on first use so comment authorship never
// fails on a fresh database.
func (s *Store) currentUserTxn(txn *badger.Txn) (domain.User, error) {
	var user domain.User
	err := getRecord(txn, currentUserKey, &user)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.User{}, err
	}

	user = newRandomUser()
	if err := setRecord(txn, currentUserKey, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
