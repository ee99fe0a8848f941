package user

import "time"

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Username  string `gorm:"uniqueIndex;size:100;not null"`
	Password  string `gorm:"size:200;not null"` // bcrypt hash, never the plaintext
}
