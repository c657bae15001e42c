package server

import (
	"strings"

	"pawhaven/internal/models"
	"pawhaven/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description Return posts newest first, optionally filtered by tag
// @Tags posts
// @Produce json
// @Param tag query string false "Filter by tag"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	filter := repository.PostFilter{}
	if tag := c.Query("tag"); tag != "" {
		postTag := models.PostTag(tag)
		if !postTag.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unknown tag: "+tag))
		}
		filter.Tag = postTag
	}

	currentUserID, _ := s.optionalUserID(c)
	posts, err := s.postRepo.List(c.Context(), filter, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(posts)
}

// SearchPosts handles GET /api/posts/search
// @Summary Search posts
// @Description Case-insensitive substring search over post titles and content
// @Tags posts
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/search [get]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.postRepo.Search(c.Context(), query, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Description Return a single post with counts and the requester's liked/bookmarked flags
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	currentUserID, _ := s.optionalUserID(c)
	post, err := s.postRepo.GetByID(c.Context(), postID, currentUserID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Create a post; shelter attribution is applied automatically when the author owns an approved shelter
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,content=string,image_url=string,tag=string,location=string} true "Post fields"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
		Tag      string `json:"tag"`
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	tag := models.TagNone
	if req.Tag != "" {
		tag = models.PostTag(req.Tag)
		if !tag.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unknown tag: "+req.Tag))
		}
	}

	// Shelter attribution is decided at creation time only. It does not
	// change if the shelter's status changes later.
	shelterID, err := s.shelterRepo.ApprovedIDForUser(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Tag:       tag,
		Location:  req.Location,
		AuthorID:  userID,
		ShelterID: shelterID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return respondAppError(c, err)
	}

	created, err := s.postRepo.GetByID(c.Context(), post.ID, userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdatePost handles PUT /api/posts/:id. The lookup is owner-scoped, so a
// non-author gets 404 rather than learning the post exists.
// @Summary Update a post
// @Description Update an owned post's editable fields
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string,image_url=string,tag=string,location=string} true "Post fields"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		ImageURL *string `json:"image_url"`
		Tag      *string `json:"tag"`
		Location *string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondAppError(c, err)
	}
	if post.AuthorID != userID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title cannot be empty"))
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Content cannot be empty"))
		}
		post.Content = *req.Content
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	if req.Tag != nil {
		tag := models.PostTag(*req.Tag)
		if !tag.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unknown tag: "+*req.Tag))
		}
		post.Tag = tag
	}
	if req.Location != nil {
		post.Location = *req.Location
	}

	if err := s.postRepo.Update(c.Context(), post); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Authors and admins may delete;
// anyone else gets 403.
// @Summary Delete a post
// @Description Delete a post as its author or as an admin
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if post.AuthorID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(adminErr))
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You cannot delete this post"))
		}
	}

	if err := s.postRepo.Delete(c.Context(), postID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like. Repeating the call undoes the
// previous like.
// @Summary Toggle like
// @Description Like or unlike a post, returning the updated post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if post.Liked {
		err = s.postRepo.Unlike(c.Context(), userID, postID)
	} else {
		err = s.postRepo.Like(c.Context(), userID, postID)
	}
	if err != nil {
		return respondAppError(c, err)
	}

	updated, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(updated)
}

// ToggleBookmark handles POST /api/posts/:id/bookmark.
// @Summary Toggle bookmark
// @Description Bookmark or unbookmark a post, returning the updated post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/bookmark [post]
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	if post.Bookmarked {
		err = s.postRepo.Unbookmark(c.Context(), userID, postID)
	} else {
		err = s.postRepo.Bookmark(c.Context(), userID, postID)
	}
	if err != nil {
		return respondAppError(c, err)
	}

	updated, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(updated)
}
