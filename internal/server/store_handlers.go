package server

import (
	"pawhaven/internal/models"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateStore handles POST /api/stores
// @Summary Register a store
// @Description Submit a store for admin approval; it starts PENDING. A user may own several stores.
// @Tags stores
// @Accept json
// @Produce json
// @Param request body service.RegisterStoreInput true "Store fields"
// @Success 201 {object} models.Store
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /stores [post]
func (s *Server) CreateStore(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var in service.RegisterStoreInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	store, err := s.approvalService.RegisterStore(c.Context(), userID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// GetMyStores handles GET /api/stores/me. Owners see all their stores in any
// status.
// @Summary List own stores
// @Tags stores
// @Produce json
// @Success 200 {array} models.Store
// @Security BearerAuth
// @Router /stores/me [get]
func (s *Server) GetMyStores(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	stores, err := s.storeRepo.ListByOwner(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(stores)
}

// GetStore handles GET /api/stores/:id. Non-approved stores are invisible to
// the public, so they read as 404 here.
// @Summary Get a store
// @Description Return an approved store's public profile with its products and rating
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} object{store=models.Store,average_rating=number,review_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id} [get]
func (s *Server) GetStore(c *fiber.Ctx) error {
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	store, err := s.storeRepo.GetByIDWithProducts(c.Context(), storeID)
	if err != nil {
		return respondAppError(c, err)
	}
	if store.Status != models.StatusApproved {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Store", storeID))
	}

	avg, count, err := s.reviewRepo.AverageStoreRating(c.Context(), storeID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"store":          store,
		"average_rating": avg,
		"review_count":   count,
	})
}

// ManageStore handles GET /api/stores/:id/manage. Owner-only view of a store
// in any status; supports filtering products by name.
// @Summary Manage a store
// @Description Owner view of a store with its products, optionally filtered by name
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Param q query string false "Product name filter"
// @Success 200 {object} object{store=models.Store,products=[]models.Product}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /stores/{id}/manage [get]
func (s *Server) ManageStore(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	store, err := s.approvalService.GetManagedStore(c.Context(), userID, storeID)
	if err != nil {
		return respondAppError(c, err)
	}

	query := c.Query("q")
	products := store.Products
	if query != "" {
		products, err = s.storeRepo.ListProducts(c.Context(), storeID, query)
		if err != nil {
			return respondAppError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"store":    store,
		"products": products,
	})
}

// UpdateStore handles PUT /api/stores/:id. Owner-only; status and
// verification material are untouchable.
// @Summary Update a store
// @Tags stores
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param request body service.UpdateStoreInput true "Store fields"
// @Success 200 {object} models.Store
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /stores/{id} [put]
func (s *Server) UpdateStore(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdateStoreInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	store, err := s.approvalService.UpdateStore(c.Context(), userID, storeID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(store)
}

// AddProduct handles POST /api/stores/:id/products. The store must be
// APPROVED at this moment.
// @Summary Add a product
// @Description Create a product under an owned, approved store
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param request body service.ProductInput true "Product fields"
// @Success 201 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /stores/{id}/products [post]
func (s *Server) AddProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.approvalService.AddProduct(c.Context(), userID, storeID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetProduct handles GET /api/products/:id
// @Summary Get a product
// @Description Return a product with its store and review aggregate
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{product=models.Product,average_rating=number,review_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProduct(c *fiber.Ctx) error {
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.storeRepo.GetProduct(c.Context(), productID)
	if err != nil {
		return respondAppError(c, err)
	}

	avg, count, err := s.reviewRepo.AverageProductRating(c.Context(), productID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"product":        product,
		"average_rating": avg,
		"review_count":   count,
	})
}

// UpdateProduct handles PUT /api/products/:id. Owner of the product's store
// only.
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body service.ProductInput true "Product fields"
// @Success 200 {object} models.Product
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [put]
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.approvalService.UpdateProduct(c.Context(), userID, productID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct handles DELETE /api/products/:id. Owner of the product's
// store only.
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.approvalService.DeleteProduct(c.Context(), userID, productID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
