package server

import (
	"strings"

	"pawhaven/internal/models"
	"pawhaven/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Marketplace handles GET /api/market. Pages are a fixed 12 products of
// APPROVED stores; q searches product names, descriptions, and store names,
// and type narrows to one store type.
// @Summary Browse the marketplace
// @Description List or search products from approved stores, 12 per page
// @Tags market
// @Produce json
// @Param q query string false "Search query"
// @Param type query string false "Store type filter (PET or SUPPLIES)"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} repository.MarketplacePage
// @Failure 400 {object} models.ErrorResponse
// @Router /market [get]
func (s *Server) Marketplace(c *fiber.Ctx) error {
	if s.featureDisabled(c, "marketplace") {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Marketplace", "disabled"))
	}

	query := strings.TrimSpace(c.Query("q"))

	var storeType models.StoreType
	if t := c.Query("type"); t != "" {
		storeType = models.StoreType(strings.ToUpper(t))
		if !storeType.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("type must be PET or SUPPLIES"))
		}
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	observability.RecordMarketplaceRequest(query != "")

	result, err := s.storeRepo.Marketplace(c.Context(), query, storeType, page)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(result)
}
