package models

import "time"

// DefaultProfileScore is the score assigned to newly created profiles.
const DefaultProfileScore = 100

// Profile holds contact and display metadata for a user. Exactly one per
// user; created at signup, or upserted on first profile read for accounts
// that predate profiles.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Country   string    `gorm:"size:100" json:"country"`
	City      string    `gorm:"size:100" json:"city"`
	Score     int       `gorm:"not null;default:100" json:"score"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
