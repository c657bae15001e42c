package server

import (
	"strings"

	"pawhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
// @Summary List comments
// @Description Return a post's comments oldest first
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Make sure the post exists so a bad ID yields 404, not an empty list.
	if _, err := s.postRepo.GetByID(c.Context(), postID, 0); err != nil {
		return respondAppError(c, err)
	}

	p := parsePagination(c, 50)
	comments, err := s.commentRepo.GetByPostID(c.Context(), postID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Create a comment
// @Description Add a comment to a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{content=string} true "Comment content"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	if _, err := s.postRepo.GetByID(c.Context(), postID, 0); err != nil {
		return respondAppError(c, err)
	}

	comment := &models.Comment{
		Content:  req.Content,
		AuthorID: userID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return respondAppError(c, err)
	}

	created, err := s.commentRepo.GetByID(c.Context(), comment.ID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment handles PUT /api/posts/:id/comments/:commentId. Only the
// author may edit.
// @Summary Update a comment
// @Description Edit an owned comment's content
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param request body object{content=string} true "Comment content"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments/{commentId} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return respondAppError(c, err)
	}
	if comment.PostID != postID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", commentID))
	}
	if comment.AuthorID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You cannot edit this comment"))
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(c.Context(), comment); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId. Authors
// and admins may delete.
// @Summary Delete a comment
// @Description Delete a comment as its author or as an admin
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return respondAppError(c, err)
	}
	if comment.PostID != postID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", commentID))
	}

	if comment.AuthorID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(adminErr))
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You cannot delete this comment"))
		}
	}

	if err := s.commentRepo.Delete(c.Context(), commentID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
