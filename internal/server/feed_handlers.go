package server

import (
	"quill/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// HomeFeed handles GET /. The page comes from the Redis-backed cache when it
// is warm; new posts may lag behind by up to the cache TTL.
func (s *Server) HomeFeed(c *fiber.Ctx) error {
	page, err := s.feedService.HomeFeed(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GroupFeed handles GET /group/:slug.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.GroupFeedPage(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// ProfileFeed handles GET /profile/:username. The following flag reflects the
// viewer when one is authenticated and is always false otherwise.
func (s *Server) ProfileFeed(c *fiber.Ctx) error {
	viewerID, _ := middleware.ViewerID(c)

	feed, err := s.feedService.ProfileFeedPage(c.Context(), c.Params("username"), viewerID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// FollowFeed handles GET /follow, the posts of everyone the viewer follows.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	feed, err := s.feedService.FollowFeed(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}
