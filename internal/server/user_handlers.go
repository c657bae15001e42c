package server

import (
	"pawhaven/internal/cache"
	"pawhaven/internal/models"
	"pawhaven/internal/repository"
	"pawhaven/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Description Return the authenticated user's account and profile
// @Tags users
// @Produce json
// @Success 200 {object} object{user=models.User,profile=models.Profile}
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	// Accounts that predate profiles get one lazily on first read.
	profile, err := s.profileRepo.EnsureForUser(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Description Update contact and display fields on the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{phone=string,country=string,city=string,avatar_url=string} true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Phone     *string `json:"phone"`
		Country   *string `json:"country"`
		City      *string `json:"city"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileRepo.EnsureForUser(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if req.Phone != nil {
		if err := validation.ValidatePhone(*req.Phone); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		profile.Phone = *req.Phone
	}
	if req.Country != nil {
		profile.Country = *req.Country
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.profileRepo.Update(c.Context(), profile); err != nil {
		return respondAppError(c, err)
	}
	cache.InvalidateUser(c.Context(), userID)

	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:username
// @Summary Get public user profile
// @Description Return a user's public profile and recent posts by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{user=models.User,profile=models.Profile,posts=[]models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return respondAppError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	profile, err := s.profileRepo.EnsureForUser(c.Context(), user.ID)
	if err != nil {
		return respondAppError(c, err)
	}

	currentUserID, _ := s.optionalUserID(c)
	posts, err := s.postRepo.List(c.Context(),
		repository.PostFilter{AuthorID: user.ID}, 10, 0, currentUserID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
		"posts":   posts,
	})
}

// GetMyBookmarks handles GET /api/users/me/bookmarks
// @Summary List bookmarked posts
// @Description Return the authenticated user's bookmarked posts, most recently bookmarked first
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Post
// @Security BearerAuth
// @Router /users/me/bookmarks [get]
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	posts, err := s.postRepo.ListBookmarked(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(posts)
}
