package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /profile/:username/follow. Following yourself or
// an author you already follow changes nothing; every outcome lands on the
// follow feed.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.followService.Follow(c.Context(), userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return seeOther(c, "/follow")
}

// UnfollowAuthor handles GET /profile/:username/unfollow. Unfollowing an
// author you never followed is a no-op.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.followService.Unfollow(c.Context(), userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return seeOther(c, "/follow")
}
