package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desperati0n/ismism/internal/store"
)

func TestGarbledTimestampIsStorageError(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()

	comment, err := s.AddComment(ctx, "1-2-3-4", "结构先于主体")
	require.NoError(t, err)
	_, err = s.AddReply(ctx, "1-2-3-4", comment.ID, "存在先于本质", nil)
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE comments SET created_at = 'garbled'`)
	require.NoError(t, err)

	_, err = s.GetComments(ctx, "1-2-3-4")
	assert.ErrorIs(t, err, store.ErrStorage)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	_, err = s.ToggleCommentLike(ctx, "1-2-3-4", comment.ID)
	assert.ErrorIs(t, err, store.ErrStorage)
}

func TestGarbledReplyTimestampIsStorageError(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()

	comment, err := s.AddComment(ctx, "1-2-3-4", "结构先于主体")
	require.NoError(t, err)
	_, err = s.AddReply(ctx, "1-2-3-4", comment.ID, "存在先于本质", nil)
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE replies SET created_at = 'garbled'`)
	require.NoError(t, err)

	_, err = s.GetComments(ctx, "1-2-3-4")
	assert.ErrorIs(t, err, store.ErrStorage)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}