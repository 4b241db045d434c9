package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/store"
)

// InteractionService wraps the interactions store with input policy:
// codes must be well formed, content must be non-empty after trimming.
// The store backing it is substitutable, so the policy lives here
// rather than being duplicated per backend.
type InteractionService struct {
	store  store.Interactions
	logger *slog.Logger
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(st store.Interactions, logger *slog.Logger) *InteractionService {
	return &InteractionService{
		store:  st,
		logger: logger,
	}
}

// checkCode rejects codes that could never name a catalog entry.
// The $ symbol stays legal here: entries can carry it as a literal
// coordinate, so interaction state may attach to such codes too.
func checkCode(code string) error {
	if !domain.ValidCode(code) {
		return store.ErrInvalidInput.WithMessage("malformed code " + code)
	}
	return nil
}

// CurrentUser returns the local viewer identity, creating one on
// first use.
func (s *InteractionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.store.GetCurrentUser(ctx)
}

// RenameCurrentUser updates the viewer's display name while keeping
// the stored identity.
func (s *InteractionService) RenameCurrentUser(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, store.ErrInvalidInput.WithMessage("user name cannot be empty")
	}

	if err := s.store.SetCurrentUser(ctx, &domain.User{Name: name}); err != nil {
		return nil, err
	}
	return s.store.GetCurrentUser(ctx)
}

// Likes returns the like state for one catalog entry.
func (s *InteractionService) Likes(ctx context.Context, code string) (*domain.IsmLikes, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	return s.store.GetIsmLikes(ctx, code)
}

// ToggleLike flips the viewer's like on one catalog entry.
func (s *InteractionService) ToggleLike(ctx context.Context, code string) (*domain.IsmLikes, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	return s.store.ToggleIsmLike(ctx, code)
}

// Comments returns the comment thread for one catalog entry, most
// recent first.
func (s *InteractionService) Comments(ctx context.Context, code string) ([]domain.Comment, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	return s.store.GetComments(ctx, code)
}

// AddComment posts a new top-level comment as the current user.
func (s *InteractionService) AddComment(ctx context.Context, code, content string) (*domain.Comment, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, store.ErrInvalidInput.WithMessage("comment content cannot be empty")
	}

	comment, err := s.store.AddComment(ctx, code, content)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("comment added", "code", code, "comment_id", comment.ID)
	return comment, nil
}

// DeleteComment removes a comment and its replies.
func (s *InteractionService) DeleteComment(ctx context.Context, code, commentID string) error {
	if err := checkCode(code); err != nil {
		return err
	}
	return s.store.DeleteComment(ctx, code, commentID)
}

// ToggleCommentLike flips the viewer's like on a comment.
func (s *InteractionService) ToggleCommentLike(ctx context.Context, code, commentID string) (*domain.Comment, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	return s.store.ToggleCommentLike(ctx, code, commentID)
}

// AddReply posts a reply under an existing comment, optionally
// addressed at another participant.
func (s *InteractionService) AddReply(ctx context.Context, code, commentID, content string, replyTo *domain.User) (*domain.Reply, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, store.ErrInvalidInput.WithMessage("reply content cannot be empty")
	}

	reply, err := s.store.AddReply(ctx, code, commentID, content, replyTo)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("reply added", "code", code, "comment_id", commentID, "reply_id", reply.ID)
	return reply, nil
}

// DeleteReply removes one reply.
func (s *InteractionService) DeleteReply(ctx context.Context, code, commentID, replyID string) error {
	if err := checkCode(code); err != nil {
		return err
	}
	return s.store.DeleteReply(ctx, code, commentID, replyID)
}

// ToggleReplyLike flips the viewer's like on a reply.
func (s *InteractionService) ToggleReplyLike(ctx context.Context, code, commentID, replyID string) (*domain.Reply, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	return s.store.ToggleReplyLike(ctx, code, commentID, replyID)
}
