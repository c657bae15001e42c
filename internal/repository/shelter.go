package repository

import (
	"context"
	"errors"
	"time"

	"pawhaven/internal/cache"
	"pawhaven/internal/models"

	"gorm.io/gorm"
)

// ShelterRepository defines persistence operations for shelter profiles.
type ShelterRepository interface {
	Create(ctx context.Context, shelter *models.ShelterProfile) error
	GetByID(ctx context.Context, id uint) (*models.ShelterProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.ShelterProfile, error)
	ListApproved(ctx context.Context, limit, offset int) ([]models.ShelterProfile, error)
	ListByStatus(ctx context.Context, status models.ApprovalStatus, limit, offset int) ([]models.ShelterProfile, error)
	Update(ctx context.Context, shelter *models.ShelterProfile) error
	SetStatus(ctx context.Context, id uint, status models.ApprovalStatus, reviewerID uint) (*models.ShelterProfile, error)
	ApprovedIDForUser(ctx context.Context, userID uint) (*uint, error)
}

type shelterRepository struct {
	db *gorm.DB
}

// NewShelterRepository returns a new ShelterRepository implementation.
func NewShelterRepository(db *gorm.DB) ShelterRepository {
	return &shelterRepository{db: db}
}

// Create inserts a shelter profile. The unique index on user_id enforces the
// one-shelter-per-user rule atomically; a duplicate insert surfaces as a
// DUPLICATE error without a prior existence query.
func (r *shelterRepository) Create(ctx context.Context, shelter *models.ShelterProfile) error {
	if err := r.db.WithContext(ctx).Create(shelter).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewDuplicateError("You already have a shelter profile")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateShelter(ctx, shelter.ID)
	return nil
}

func (r *shelterRepository) GetByID(ctx context.Context, id uint) (*models.ShelterProfile, error) {
	var shelter models.ShelterProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&shelter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Shelter profile", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &shelter, nil
}

func (r *shelterRepository) GetByUserID(ctx context.Context, userID uint) (*models.ShelterProfile, error) {
	var shelter models.ShelterProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&shelter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &shelter, nil
}

func (r *shelterRepository) ListApproved(ctx context.Context, limit, offset int) ([]models.ShelterProfile, error) {
	var shelters []models.ShelterProfile
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&shelters).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return shelters, nil
}

func (r *shelterRepository) ListByStatus(ctx context.Context, status models.ApprovalStatus, limit, offset int) ([]models.ShelterProfile, error) {
	var shelters []models.ShelterProfile
	q := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&shelters).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return shelters, nil
}

func (r *shelterRepository) Update(ctx context.Context, shelter *models.ShelterProfile) error {
	if err := r.db.WithContext(ctx).Save(shelter).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateShelter(ctx, shelter.ID)
	return nil
}

// SetStatus applies an approval decision and records who made it. Any
// transition between the three statuses is allowed, including reversing an
// earlier decision.
func (r *shelterRepository) SetStatus(ctx context.Context, id uint, status models.ApprovalStatus, reviewerID uint) (*models.ShelterProfile, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.ShelterProfile{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              status,
			"reviewed_by_user_id": reviewerID,
			"reviewed_at":         now,
		})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Shelter profile", id)
	}
	cache.InvalidateShelter(ctx, id)
	return r.GetByID(ctx, id)
}

// ApprovedIDForUser returns the user's shelter profile ID iff it is APPROVED,
// nil otherwise. Used to stamp shelter attribution on new posts.
func (r *shelterRepository) ApprovedIDForUser(ctx context.Context, userID uint) (*uint, error) {
	var shelter models.ShelterProfile
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND status = ?", userID, models.StatusApproved).
		First(&shelter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	id := shelter.ID
	return &id, nil
}
