// Package store defines the durable interaction state for catalog
// entries: the local viewer identity, per-code like aggregates, and
// per-code threaded comment lists.
package store

import (
	"context"

	"github.com/desperati0n/ismism/internal/domain"
)

// Interactions is the persistence interface for all interaction state.
// The reference implementation is Badger-backed (Store); a SQLite
// variant lives in the sqlite subpackage. Any backing medium must give
// read-modify-write atomicity per code key so the like counters stay
// consistent.
type Interactions interface {
	// Lifecycle
	Close() error

	// Identity. GetCurrentUser lazily creates and persists a local
	// identity on first use; SetCurrentUser replaces it wholesale.
	GetCurrentUser(ctx context.Context) (*domain.User, error)
	SetCurrentUser(ctx context.Context, user *domain.User) error

	// Entry-level likes. Absence is not an error: a code that was
	// never liked reads as {0, false}.
	GetIsmLikes(ctx context.Context, code string) (*domain.IsmLikes, error)
	ToggleIsmLike(ctx context.Context, code string) (*domain.IsmLikes, error)

	// Comments. Lists are most-recent-first; replies inside a comment
	// are chronological.
	GetComments(ctx context.Context, code string) ([]domain.Comment, error)
	AddComment(ctx context.Context, code, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, code, commentID string) error
	ToggleCommentLike(ctx context.Context, code, commentID string) (*domain.Comment, error)

	// Replies.
	AddReply(ctx context.Context, code, commentID, content string, replyTo *domain.User) (*domain.Reply, error)
	DeleteReply(ctx context.Context, code, commentID, replyID string) error
	ToggleReplyLike(ctx context.Context, code, commentID, replyID string) (*domain.Reply, error)
}
