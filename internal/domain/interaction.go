package domain

import "time"

// User is the local viewer identity. One per browser profile; created
// lazily on first use and only ever replaced wholesale.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsmLikes is the aggregate like state for one catalog entry.
type IsmLikes struct {
	TotalLikes    int  `json:"totalLikes"`
	IsLikedByUser bool `json:"isLikedByUser"`
}

// Toggle flips the local viewer's like state and adjusts the counter
// symmetrically. The toggle is the only mutator of TotalLikes, so the
// counter can never go negative from the zero state.
func (l *IsmLikes) Toggle() {
	if l.IsLikedByUser {
		l.TotalLikes--
	} else {
		l.TotalLikes++
	}
	l.IsLikedByUser = !l.IsLikedByUser
}

// Reply is a threaded response owned by its parent comment.
type Reply struct {
	ID          string    `json:"id"`
	Author      User      `json:"author"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Likes       int       `json:"likes"`
	LikedByUser bool      `json:"likedByUser"`
	// ReplyToUser is the user being addressed, for @-mention display.
	ReplyToUser *User `json:"replyToUser,omitempty"`
}

// ToggleLike flips the viewer's like state on the reply.
func (r *Reply) ToggleLike() {
	if r.LikedByUser {
		r.Likes--
	} else {
		r.Likes++
	}
	r.LikedByUser = !r.LikedByUser
}

// Comment is a top-level comment on a catalog entry. Replies keep
// insertion order, which is chronological: new replies append while
// new comments prepend to the entry's list.
type Comment struct {
	ID          string    `json:"id"`
	Author      User      `json:"author"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Likes       int       `json:"likes"`
	LikedByUser bool      `json:"likedByUser"`
	Replies     []Reply   `json:"replies"`
}

// ToggleLike flips the viewer's like state on the comment.
func (c *Comment) ToggleLike() {
	if c.LikedByUser {
		c.Likes--
	} else {
		c.Likes++
	}
	c.LikedByUser = !c.LikedByUser
}

// FindReply returns the index of the reply with the given id, or -1.
func (c *Comment) FindReply(replyID string) int {
	for i := range c.Replies {
		if c.Replies[i].ID == replyID {
			return i
		}
	}
	return -1
}
