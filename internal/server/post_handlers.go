package server

import (
	"errors"
	"fmt"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postForm is the JSON shape of the create/edit post form, echoed empty on
// GET /create and pre-filled on GET /posts/:id/edit.
type postForm struct {
	Text      string `json:"text"`
	ImageURL  string `json:"image_url"`
	GroupSlug string `json:"group_slug"`
}

// commentForm is the empty comment form attached to the post detail view.
type commentForm struct {
	Text string `json:"text"`
}

// GetPost handles GET /posts/:id. The response carries the post, its
// comments oldest-first, and an empty comment form.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":         post,
		"comments":     comments,
		"comment_form": commentForm{},
	})
}

// NewPostForm handles GET /create, returning an empty form plus the groups a
// post can be published into.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"form":   postForm{},
		"groups": groups,
	})
}

// CreatePost handles POST /create.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:    userID,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		GroupSlug: req.GroupSlug,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// EditPostForm handles GET /posts/:id/edit. Only the author sees the form;
// anyone else is sent back to the post itself.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.UserID != userID {
		return seeOther(c, fmt.Sprintf("/posts/%d", post.ID))
	}

	form := postForm{Text: post.Text, ImageURL: post.ImageURL}
	if post.Group != nil {
		form.GroupSlug = post.Group.Slug
	}

	groups, err := s.groupService.ListGroups(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"form":   form,
		"groups": groups,
	})
}

// EditPost handles POST /posts/:id/edit. Edits by anyone but the author are
// not errors: the post stays unchanged and the client is redirected to the
// detail view.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:    userID,
		PostID:    id,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		GroupSlug: req.GroupSlug,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.ErrCodeUnauthorized {
			return seeOther(c, fmt.Sprintf("/posts/%d", id))
		}
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id. Author-only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
