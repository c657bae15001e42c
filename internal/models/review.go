package models

import "time"

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// StoreReview is a user's rating of a store. The unique index on
// (store_id, author_id) makes the one-review-per-store rule atomic: a
// duplicate insert fails at the storage layer and is translated into the
// DUPLICATE error kind rather than being guarded by a prior existence query.
type StoreReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_store_author" json:"store_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_store_author" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductReview is a user's rating of a product, one per (product, author).
type ProductReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_author" json:"product_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_product_author" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
