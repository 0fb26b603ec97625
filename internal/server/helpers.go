package server

import (
	"errors"
	"strconv"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a handler already wrote the HTTP response
// and the caller should return nil to fiber.
var errResponseWritten = errors.New("response already written")

// parseID reads a positive numeric route parameter, writing a 400 response
// itself when the value is malformed.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage reads the ?page= query parameter. Anything unparseable or below
// one falls back to the first page; out-of-range values are clamped later
// against the actual page count.
func parsePage(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// seeOther redirects with 303, the post-mutation redirect used across the
// browser-style flows.
func seeOther(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// respondServiceError maps a service-layer error onto the right HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.ErrCodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case models.ErrCodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.ErrCodeConflict:
			return models.RespondWithError(c, fiber.StatusConflict, err)
		case models.ErrCodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
