package server

import (
	"fmt"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment, then sends the client back to
// the post detail view.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID: userID,
		PostID: id,
		Text:   req.Text,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return seeOther(c, fmt.Sprintf("/posts/%d", id))
}

// DeleteComment handles DELETE /comments/:id. Allowed for the comment's
// author and for admins.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
