package models

import "time"

// ShelterProfile is a user's shelter registration. At most one per user,
// enforced by the unique index on UserID. Non-status fields are mutable by
// the owner; status is mutable only through the admin approval workflow.
type ShelterProfile struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	User               *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	Description        string         `gorm:"type:text;not null" json:"description"`
	Address            string         `gorm:"type:text;not null" json:"address"`
	Phone              string         `gorm:"size:20;not null" json:"phone"`
	Email              string         `gorm:"not null" json:"email"`
	ProfileImageURL    string         `json:"profile_image_url"`
	CoverImageURL      string         `json:"cover_image_url"`
	VerificationDocURL string         `gorm:"not null" json:"verification_doc_url"`
	Status             ApprovalStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	ReviewedByUserID   *uint          `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt         *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ShelterProfile) TableName() string {
	return "shelter_profiles"
}
