package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultProfilePicture is the stock avatar for accounts created without one.
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

// DefaultPostImage is the placeholder cover for posts created without one.
const DefaultPostImage = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"

// User is the account identity record. The password hash replaces the
// plaintext immediately on creation or update and never serializes to JSON.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	ProfilePicture string     `bun:"profile_picture" json:"profilePicture,omitempty"`
	IsAdmin        bool       `bun:"is_admin,notnull,default:false" json:"isAdmin"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Post is an article authored by an admin.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:pst"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	Title         string     `bun:"title,notnull,unique" json:"title,omitempty"`
	Slug          string     `bun:"slug,notnull,unique" json:"slug,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	Image         string     `bun:"image" json:"image,omitempty"`
	Category      string     `bun:"category" json:"category,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Comment belongs to a post and an author. Likes are a plain list updated
// read-modify-write, without optimistic locking.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PostID        uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"postId,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	Likes         []string   `bun:"likes" json:"likes"`
	NumberOfLikes int        `bun:"number_of_likes,notnull,default:0" json:"numberOfLikes"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// LikedBy reports whether the given user already liked the comment.
func (c *Comment) LikedBy(userID uuid.UUID) bool {
	id := userID.String()
	for _, liker := range c.Likes {
		if liker == id {
			return true
		}
	}
	return false
}

// ToggleLike adds or removes the user from the like list and keeps the
// counter in sync.
func (c *Comment) ToggleLike(userID uuid.UUID) {
	id := userID.String()
	for i, liker := range c.Likes {
		if liker == id {
			c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
			c.NumberOfLikes = len(c.Likes)
			return
		}
	}
	c.Likes = append(c.Likes, id)
	c.NumberOfLikes = len(c.Likes)
}
