package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post, listed oldest first.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"not null" json:"content"`
	AuthorID  uint           `gorm:"not null" json:"author_id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
