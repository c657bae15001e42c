package server

import (
	"pawhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/admin/dashboard
// @Summary Admin dashboard
// @Description Return entity totals and pending approval counts
// @Tags admin
// @Produce json
// @Success 200 {object} object{totals=object,pending=object}
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	ctx := c.Context()
	db := s.db.WithContext(ctx)

	var userCount, postCount, shelterCount, storeCount, productCount int64
	var pendingShelters, pendingStores int64

	counts := []struct {
		dest  *int64
		model any
	}{
		{&userCount, &models.User{}},
		{&postCount, &models.Post{}},
		{&shelterCount, &models.ShelterProfile{}},
		{&storeCount, &models.Store{}},
		{&productCount, &models.Product{}},
	}
	for _, cnt := range counts {
		if err := db.Model(cnt.model).Count(cnt.dest).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	if err := db.Model(&models.ShelterProfile{}).
		Where("status = ?", models.StatusPending).
		Count(&pendingShelters).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if err := db.Model(&models.Store{}).
		Where("status = ?", models.StatusPending).
		Count(&pendingStores).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"totals": fiber.Map{
			"users":    userCount,
			"posts":    postCount,
			"shelters": shelterCount,
			"stores":   storeCount,
			"products": productCount,
		},
		"pending": fiber.Map{
			"shelters": pendingShelters,
			"stores":   pendingStores,
		},
	})
}

// GetPendingShelters handles GET /api/admin/shelters/pending
// @Summary List pending shelters
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.ShelterProfile
// @Security BearerAuth
// @Router /admin/shelters/pending [get]
func (s *Server) GetPendingShelters(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	shelters, err := s.shelterRepo.ListByStatus(c.Context(), models.StatusPending, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(shelters)
}

// ApproveShelter handles POST /api/admin/shelters/:id/approve. Admins may
// move a shelter to APPROVED from any current status.
// @Summary Approve a shelter
// @Tags admin
// @Produce json
// @Param id path int true "Shelter ID"
// @Success 200 {object} models.ShelterProfile
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/shelters/{id}/approve [post]
func (s *Server) ApproveShelter(c *fiber.Ctx) error {
	return s.decideShelter(c, models.StatusApproved)
}

// RejectShelter handles POST /api/admin/shelters/:id/reject
// @Summary Reject a shelter
// @Tags admin
// @Produce json
// @Param id path int true "Shelter ID"
// @Success 200 {object} models.ShelterProfile
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/shelters/{id}/reject [post]
func (s *Server) RejectShelter(c *fiber.Ctx) error {
	return s.decideShelter(c, models.StatusRejected)
}

func (s *Server) decideShelter(c *fiber.Ctx, status models.ApprovalStatus) error {
	reviewerID := c.Locals("userID").(uint)
	shelterID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	shelter, err := s.approvalService.SetShelterStatus(c.Context(), shelterID, status, reviewerID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(shelter)
}

// GetPendingStores handles GET /api/admin/stores/pending
// @Summary List pending stores
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Store
// @Security BearerAuth
// @Router /admin/stores/pending [get]
func (s *Server) GetPendingStores(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	stores, err := s.storeRepo.ListByStatus(c.Context(), models.StatusPending, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(stores)
}

// ApproveStore handles POST /api/admin/stores/:id/approve
// @Summary Approve a store
// @Tags admin
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Store
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/stores/{id}/approve [post]
func (s *Server) ApproveStore(c *fiber.Ctx) error {
	return s.decideStore(c, models.StatusApproved)
}

// RejectStore handles POST /api/admin/stores/:id/reject
// @Summary Reject a store
// @Tags admin
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Store
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/stores/{id}/reject [post]
func (s *Server) RejectStore(c *fiber.Ctx) error {
	return s.decideStore(c, models.StatusRejected)
}

func (s *Server) decideStore(c *fiber.Ctx, status models.ApprovalStatus) error {
	reviewerID := c.Locals("userID").(uint)
	storeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	store, err := s.approvalService.SetStoreStatus(c.Context(), storeID, status, reviewerID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(store)
}

// GetAllUsers handles GET /api/admin/users
// @Summary List users
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /admin/users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(users)
}

// DeleteUser handles DELETE /api/admin/users/:id. Admins cannot delete
// themselves or other admins.
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if targetID == adminID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot delete your own account"))
	}

	target, err := s.userRepo.GetByID(c.Context(), targetID)
	if err != nil {
		return respondAppError(c, err)
	}
	if target.IsAdmin {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Admin accounts cannot be deleted through the API"))
	}

	if err := s.userRepo.Delete(c.Context(), targetID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
