package service

import (
	"context"

	"pawhaven/internal/models"
	"pawhaven/internal/repository"
	"pawhaven/internal/validation"
)

// ReviewService handles store and product reviews. Duplicate protection
// lives in the database unique indexes; this layer only validates input and
// confirms the target exists.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	storeRepo  repository.StoreRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, storeRepo repository.StoreRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		storeRepo:  storeRepo,
	}
}

// ReviewInput is the request body for both review kinds.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateStoreReview records a rating for a store. One review per author per
// store; a second attempt surfaces as DUPLICATE from the insert itself.
func (s *ReviewService) CreateStoreReview(ctx context.Context, authorID, storeID uint, in ReviewInput) (*models.StoreReview, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		return nil, err
	}

	review := &models.StoreReview{
		StoreID:  storeID,
		AuthorID: authorID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := s.reviewRepo.CreateStoreReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListStoreReviews returns a store's reviews, newest first, with the
// computed average.
func (s *ReviewService) ListStoreReviews(ctx context.Context, storeID uint, limit, offset int) ([]models.StoreReview, float64, int64, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		return nil, 0, 0, err
	}
	reviews, err := s.reviewRepo.ListStoreReviews(ctx, storeID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, count, err := s.reviewRepo.AverageStoreRating(ctx, storeID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, avg, count, nil
}

// CreateProductReview records a rating for a product.
func (s *ReviewService) CreateProductReview(ctx context.Context, authorID, productID uint, in ReviewInput) (*models.ProductReview, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.storeRepo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.ProductReview{
		ProductID: productID,
		AuthorID:  authorID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.reviewRepo.CreateProductReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListProductReviews returns a product's reviews, newest first, with the
// computed average.
func (s *ReviewService) ListProductReviews(ctx context.Context, productID uint, limit, offset int) ([]models.ProductReview, float64, int64, error) {
	if _, err := s.storeRepo.GetProduct(ctx, productID); err != nil {
		return nil, 0, 0, err
	}
	reviews, err := s.reviewRepo.ListProductReviews(ctx, productID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, count, err := s.reviewRepo.AverageProductRating(ctx, productID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, avg, count, nil
}
