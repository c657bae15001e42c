package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags handles GET /api/admin/feature-flags
// @Summary Inspect feature flags
// @Description Return the raw flag configuration and its evaluation for the requesting admin
// @Tags admin
// @Produce json
// @Success 200 {object} object{raw=object,evaluated=object}
// @Security BearerAuth
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
