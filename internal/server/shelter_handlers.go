package server

import (
	"pawhaven/internal/models"
	"pawhaven/internal/repository"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterShelter handles POST /api/shelters/register
// @Summary Register a shelter
// @Description Submit a shelter profile for admin approval; it starts PENDING
// @Tags shelters
// @Accept json
// @Produce json
// @Param request body service.RegisterShelterInput true "Shelter fields"
// @Success 201 {object} models.ShelterProfile
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /shelters/register [post]
func (s *Server) RegisterShelter(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var in service.RegisterShelterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	shelter, err := s.approvalService.RegisterShelter(c.Context(), userID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shelter)
}

// GetMyShelter handles GET /api/shelters/me. Owners see their shelter in any
// status, including the review audit fields.
// @Summary Get own shelter
// @Description Return the authenticated user's shelter profile in any status
// @Tags shelters
// @Produce json
// @Success 200 {object} models.ShelterProfile
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /shelters/me [get]
func (s *Server) GetMyShelter(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	shelter, err := s.approvalService.GetMyShelter(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(shelter)
}

// UpdateMyShelter handles PUT /api/shelters/me. Status can never be changed
// through this surface.
// @Summary Update own shelter
// @Description Edit the authenticated user's shelter profile fields
// @Tags shelters
// @Accept json
// @Produce json
// @Param request body service.UpdateShelterInput true "Shelter fields"
// @Success 200 {object} models.ShelterProfile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /shelters/me [put]
func (s *Server) UpdateMyShelter(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var in service.UpdateShelterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	shelter, err := s.approvalService.UpdateMyShelter(c.Context(), userID, in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(shelter)
}

// GetShelters handles GET /api/shelters. Only APPROVED shelters are listed.
// @Summary List approved shelters
// @Tags shelters
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.ShelterProfile
// @Router /shelters [get]
func (s *Server) GetShelters(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	shelters, err := s.shelterRepo.ListApproved(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(shelters)
}

// GetShelter handles GET /api/shelters/:id. Non-approved shelters are
// invisible to the public, so they read as 404 here.
// @Summary Get a shelter
// @Description Return an approved shelter's public profile and its posts
// @Tags shelters
// @Produce json
// @Param id path int true "Shelter ID"
// @Success 200 {object} object{shelter=models.ShelterProfile,posts=[]models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Router /shelters/{id} [get]
func (s *Server) GetShelter(c *fiber.Ctx) error {
	shelterID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	shelter, err := s.shelterRepo.GetByID(c.Context(), shelterID)
	if err != nil {
		return respondAppError(c, err)
	}
	if shelter.Status != models.StatusApproved {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Shelter", shelterID))
	}

	currentUserID, _ := s.optionalUserID(c)
	posts, err := s.postRepo.List(c.Context(),
		repository.PostFilter{ShelterID: shelter.ID}, 10, 0, currentUserID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"shelter": shelter,
		"posts":   posts,
	})
}
