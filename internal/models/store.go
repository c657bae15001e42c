package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreType distinguishes pet shops from supply shops in the marketplace.
type StoreType string

const (
	// StoreTypePet sells animals.
	StoreTypePet StoreType = "PET"
	// StoreTypeSupplies sells pet supplies.
	StoreTypeSupplies StoreType = "SUPPLIES"
)

// Valid reports whether t is a known store type.
func (t StoreType) Valid() bool {
	return t == StoreTypePet || t == StoreTypeSupplies
}

// Store is a seller storefront. A user may own any number of stores; each
// goes through the PENDING/APPROVED/REJECTED admin workflow independently.
// At creation, at least one of VerificationDocURL or VerificationStatement
// must be present.
type Store struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	OwnerID               uint           `gorm:"not null;index" json:"owner_id"`
	Owner                 *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name                  string         `gorm:"size:255;not null" json:"name"`
	Description           string         `gorm:"type:text;not null" json:"description"`
	StoreType             StoreType      `gorm:"type:varchar(10);not null" json:"store_type"`
	Status                ApprovalStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	ProfileImageURL       string         `json:"profile_image_url"`
	CoverImageURL         string         `json:"cover_image_url"`
	VerificationDocURL    string         `json:"verification_doc_url"`
	VerificationStatement string         `gorm:"type:text" json:"verification_statement"`
	ReviewedByUserID      *uint          `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt            *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`

	Products []Product `gorm:"foreignKey:StoreID" json:"products,omitempty"`
}

// Product belongs to a store. It may only be created while the parent store
// is APPROVED; the check happens at creation time only, so a later status
// flip on the store does not touch existing products.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	StoreID     uint            `gorm:"not null;index" json:"store_id"`
	Store       *Store          `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
