package models

import (
	"time"

	"gorm.io/gorm"
)

// PostTag classifies a post. The set mirrors the community's fixed tag
// choices; TagNone is the default and means "untagged".
type PostTag string

const (
	TagNone           PostTag = "none"
	TagMissing        PostTag = "missing"
	TagAdoptionUpdate PostTag = "adoption_update"
	TagQA             PostTag = "qa"
	TagOther          PostTag = "other"
	TagCare           PostTag = "care"
	TagHealth         PostTag = "health"
	TagSuccess        PostTag = "success"
	TagEvent          PostTag = "event"
	TagFound          PostTag = "found"
)

// Valid reports whether t is a known post tag.
func (t PostTag) Valid() bool {
	switch t {
	case TagNone, TagMissing, TagAdoptionUpdate, TagQA, TagOther,
		TagCare, TagHealth, TagSuccess, TagEvent, TagFound:
		return true
	}
	return false
}

// Post is a community post. ShelterID is set automatically at creation time
// iff the author holds an APPROVED shelter profile, and never changes after.
type Post struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"size:200;not null" json:"title"`
	Content   string          `gorm:"type:text;not null" json:"content"`
	ImageURL  string          `json:"image_url"`
	Tag       PostTag         `gorm:"type:varchar(50);not null;default:'none';index" json:"tag"`
	Location  string          `gorm:"size:255" json:"location"`
	AuthorID  uint            `gorm:"not null;index" json:"author_id"`
	Author    User            `gorm:"foreignKey:AuthorID" json:"author"`
	ShelterID *uint           `gorm:"index" json:"shelter_id,omitempty"`
	Shelter   *ShelterProfile `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// BookmarksCount is not persisted; computed at query time
	BookmarksCount int `gorm:"->" json:"bookmarks_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Bookmarked indicates whether the current requesting user bookmarked this post (computed)
	Bookmarked bool           `gorm:"->" json:"bookmarked"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
