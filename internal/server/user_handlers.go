package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondWithAppError(c, err)
	}
	return c.JSON(user)
}

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.Follow(c.Context(), currentUserID(c), followeeID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Followed"})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.Unfollow(c.Context(), currentUserID(c), followeeID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}
