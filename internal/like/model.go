package like

import (
	"time"
)

// PostLike is one row of the post_likes association table. The composite
// primary key is also the uniqueness guard for the insert half of the
// toggle, so no duplicate (user, post) pair can exist.
type PostLike struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	PostID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_likes"
}

type CommentLike struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CommentID uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// Status describes a target's like state for one viewer.
type Status struct {
	Count   int64
	IsLiked bool
}
