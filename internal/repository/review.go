package repository

import (
	"context"

	"pawhaven/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for store and product
// reviews.
type ReviewRepository interface {
	CreateStoreReview(ctx context.Context, review *models.StoreReview) error
	ListStoreReviews(ctx context.Context, storeID uint, limit, offset int) ([]models.StoreReview, error)
	CreateProductReview(ctx context.Context, review *models.ProductReview) error
	ListProductReviews(ctx context.Context, productID uint, limit, offset int) ([]models.ProductReview, error)
	AverageStoreRating(ctx context.Context, storeID uint) (float64, int64, error)
	AverageProductRating(ctx context.Context, productID uint) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateStoreReview inserts a review. The (store_id, author_id) unique index
// enforces one review per user per store atomically; concurrent duplicate
// submissions lose the insert race and surface as DUPLICATE.
func (r *reviewRepository) CreateStoreReview(ctx context.Context, review *models.StoreReview) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewDuplicateError("You have already reviewed this store")
		}
		return models.NewInternalError(err)
	}
	return r.db.WithContext(ctx).Preload("Author").First(review, review.ID).Error
}

func (r *reviewRepository) ListStoreReviews(ctx context.Context, storeID uint, limit, offset int) ([]models.StoreReview, error) {
	var reviews []models.StoreReview
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) CreateProductReview(ctx context.Context, review *models.ProductReview) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return models.NewDuplicateError("You have already reviewed this product")
		}
		return models.NewInternalError(err)
	}
	return r.db.WithContext(ctx).Preload("Author").First(review, review.ID).Error
}

func (r *reviewRepository) ListProductReviews(ctx context.Context, productID uint, limit, offset int) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

type ratingAggregate struct {
	Avg   float64
	Count int64
}

// AverageStoreRating computes the store's average rating on read. The
// average is never stored.
func (r *reviewRepository) AverageStoreRating(ctx context.Context, storeID uint) (float64, int64, error) {
	var agg ratingAggregate
	if err := r.db.WithContext(ctx).
		Model(&models.StoreReview{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("store_id = ?", storeID).
		Scan(&agg).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return agg.Avg, agg.Count, nil
}

// AverageProductRating computes the product's average rating on read.
func (r *reviewRepository) AverageProductRating(ctx context.Context, productID uint) (float64, int64, error) {
	var agg ratingAggregate
	if err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&agg).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return agg.Avg, agg.Count, nil
}
