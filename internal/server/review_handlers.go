package server

import (
	"pawhaven/internal/models"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateStoreReview handles POST /api/stores/:id/reviews. One review per user
// per store; a second attempt yields 409.
// @Summary Review a store
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param request body service.ReviewInput true "Review fields"
// @Success 201 {object} models.StoreReview
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /stores/{id}/reviews [post]
func (s *Server) CreateStoreReview(c *fiber.Ctx) error {
	if s.featureDisabled(c, "reviews") {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Reviews", "disabled"))
	}

	userID := c.Locals("userID").(uint)
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateStoreReview(c.Context(), userID, storeID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetStoreReviews handles GET /api/stores/:id/reviews
// @Summary List store reviews
// @Description Return a store's reviews newest first with the rating aggregate
// @Tags reviews
// @Produce json
// @Param id path int true "Store ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} object{reviews=[]models.StoreReview,average_rating=number,review_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id}/reviews [get]
func (s *Server) GetStoreReviews(c *fiber.Ctx) error {
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	reviews, avg, count, err := s.reviewService.ListStoreReviews(c.Context(), storeID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"average_rating": avg,
		"review_count":   count,
	})
}

// CreateProductReview handles POST /api/products/:id/reviews. One review per
// user per product.
// @Summary Review a product
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body service.ReviewInput true "Review fields"
// @Success 201 {object} models.ProductReview
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /products/{id}/reviews [post]
func (s *Server) CreateProductReview(c *fiber.Ctx) error {
	if s.featureDisabled(c, "reviews") {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Reviews", "disabled"))
	}

	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateProductReview(c.Context(), userID, productID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetProductReviews handles GET /api/products/:id/reviews
// @Summary List product reviews
// @Description Return a product's reviews newest first with the rating aggregate
// @Tags reviews
// @Produce json
// @Param id path int true "Product ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} object{reviews=[]models.ProductReview,average_rating=number,review_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/reviews [get]
func (s *Server) GetProductReviews(c *fiber.Ctx) error {
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	reviews, avg, count, err := s.reviewService.ListProductReviews(c.Context(), productID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"average_rating": avg,
		"review_count":   count,
	})
}
