package domain_test

import (
	"testing"

	"github.com/desperati0n/ismism/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsmLikesToggleSymmetry(t *testing.T) {
	likes := domain.IsmLikes{}

	likes.Toggle()
	assert.Equal(t, 1, likes.TotalLikes)
	assert.True(t, likes.IsLikedByUser)

	likes.Toggle()
	assert.Equal(t, 0, likes.TotalLikes)
	assert.False(t, likes.IsLikedByUser)

	// From a non-zero base the pair still restores the original state
	likes = domain.IsmLikes{TotalLikes: 7, IsLikedByUser: false}
	likes.Toggle()
	likes.Toggle()
	assert.Equal(t, 7, likes.TotalLikes)
	assert.False(t, likes.IsLikedByUser)
}

func TestIsmLikesNeverNegativeFromZero(t *testing.T) {
	likes := domain.IsmLikes{}
	for range 20 {
		likes.Toggle()
		assert.GreaterOrEqual(t, likes.TotalLikes, 0)
	}
}

func TestCommentToggleLike(t *testing.T) {
	c := domain.Comment{Likes: 3, LikedByUser: true}
	c.ToggleLike()
	assert.Equal(t, 2, c.Likes)
	assert.False(t, c.LikedByUser)
	c.ToggleLike()
	assert.Equal(t, 3, c.Likes)
	assert.True(t, c.LikedByUser)
}

func TestFindReply(t *testing.T) {
	c := domain.Comment{Replies: []domain.Reply{
		{ID: "reply-a"},
		{ID: "reply-b"},
	}}
	assert.Equal(t, 0, c.FindReply("reply-a"))
	assert.Equal(t, 1, c.FindReply("reply-b"))
	assert.Equal(t, -1, c.FindReply("reply-c"))
}
