package post

import (
	"time"

	"github.com/tguillot/plume/internal/user"
)

type Comment struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Content   string    `gorm:"type:text;not null"`
	UserID    uint      `gorm:"not null;index"`
	User      user.User `gorm:"foreignKey:UserID"`
	PostID    uint      `gorm:"not null;index"`
}
