package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/store"
	"github.com/desperati0n/ismism/internal/store/sqlite"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	tmpDir := t.TempDir()

	s, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ismism-sqlite-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening runs the schema again without error
	s, err = sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestCurrentUserLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user, err := s.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.Name)

	again, err := s.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	require.NoError(t, s.SetCurrentUser(ctx, &domain.User{Name: "读者"}))
	renamed, err := s.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, renamed.ID)
	assert.Equal(t, "读者", renamed.Name)

	err = s.SetCurrentUser(ctx, &domain.User{Name: "  "})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestLikesRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	code := "1-2-3-4"

	likes, err := s.GetIsmLikes(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 0, likes.TotalLikes)
	assert.False(t, likes.IsLikedByUser)

	likes, err = s.ToggleIsmLike(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 1, likes.TotalLikes)
	assert.True(t, likes.IsLikedByUser)

	likes, err = s.ToggleIsmLike(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 0, likes.TotalLikes)
	assert.False(t, likes.IsLikedByUser)

	other, err := s.GetIsmLikes(ctx, "4-4-4-4")
	require.NoError(t, err)
	assert.Equal(t, 0, other.TotalLikes)
}

func TestCommentOrdering(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	code := "2-3-1-4"

	first, err := s.AddComment(ctx, code, "first")
	require.NoError(t, err)
	second, err := s.AddComment(ctx, code, "second")
	require.NoError(t, err)

	comments, err := s.GetComments(ctx, code)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, first.ID, comments[1].ID)

	// Replies stay chronological under their parent
	r1, err := s.AddReply(ctx, code, first.ID, "one", nil)
	require.NoError(t, err)
	r2, err := s.AddReply(ctx, code, first.ID, "two", nil)
	require.NoError(t, err)

	comments, err = s.GetComments(ctx, code)
	require.NoError(t, err)
	require.Len(t, comments[1].Replies, 2)
	assert.Equal(t, r1.ID, comments[1].Replies[0].ID)
	assert.Equal(t, r2.ID, comments[1].Replies[1].ID)
	assert.Empty(t, comments[0].Replies)
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	code := "1-1-1-1"

	comment, err := s.AddComment(ctx, code, "root")
	require.NoError(t, err)
	reply, err := s.AddReply(ctx, code, comment.ID, "child", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteComment(ctx, code, comment.ID))

	comments, err := s.GetComments(ctx, code)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// The orphaned reply cannot be liked anymore
	_, err = s.ToggleReplyLike(ctx, code, comment.ID, reply.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Repeat deletes are no-ops
	require.NoError(t, s.DeleteComment(ctx, code, comment.ID))
}

func TestReplyMentionRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	code := "3-2-1-4"

	comment, err := s.AddComment(ctx, code, "root")
	require.NoError(t, err)

	target := &domain.User{ID: "user-x", Name: "某人"}
	reply, err := s.AddReply(ctx, code, comment.ID, "agreed", target)
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyToUser)

	comments, err := s.GetComments(ctx, code)
	require.NoError(t, err)
	got := comments[0].Replies[0]
	require.NotNil(t, got.ReplyToUser)
	assert.Equal(t, "user-x", got.ReplyToUser.ID)
	assert.Equal(t, "某人", got.ReplyToUser.Name)

	plain, err := s.AddReply(ctx, code, comment.ID, "no mention", nil)
	require.NoError(t, err)
	assert.Nil(t, plain.ReplyToUser)
}

func TestLikeToggleErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	code := "1-2-3-4"

	_, err := s.ToggleCommentLike(ctx, code, "comment-nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	comment, err := s.AddComment(ctx, code, "root")
	require.NoError(t, err)

	_, err = s.ToggleReplyLike(ctx, code, comment.ID, "reply-nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.AddReply(ctx, code, "comment-nope", "lost", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	liked, err := s.ToggleCommentLike(ctx, code, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.True(t, liked.LikedByUser)
}

func TestCommentsSurviveReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ismism-sqlite-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()
	code := "1-2-3-4"

	s, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)

	comment, err := s.AddComment(ctx, code, "durable")
	require.NoError(t, err)
	_, err = s.ToggleIsmLike(ctx, code)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	defer s.Close()

	comments, err := s.GetComments(ctx, code)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	likes, err := s.GetIsmLikes(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 1, likes.TotalLikes)
}
