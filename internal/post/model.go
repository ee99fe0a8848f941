package post

import (
	"time"

	"github.com/tguillot/plume/internal/user"
)

type Post struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Title     string    `gorm:"size:150;not null"`
	Content   string    `gorm:"type:text;not null"`
	UserID    uint      `gorm:"not null;index"`
	User      user.User `gorm:"foreignKey:UserID"`
	// Deleting a post removes its comments, see DeletePost.
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
