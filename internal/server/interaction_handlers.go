package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/tweets
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Text  string   `json:"text"`
		Media []string `json:"media"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.interactionService.CreateTweet(c.Context(), currentUserID(c), req.Text, req.Media)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// CreateReply handles POST /api/interactions/:id/reply
func (s *Server) CreateReply(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "id")
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

	result, err := s.interactionService.CreateReply(c.Context(), currentUserID(c), parentID, req.Text)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// CreateRetweet handles POST /api/interactions/:id/retweet
func (s *Server) CreateRetweet(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	retweet, err := s.interactionService.CreateRetweet(c.Context(), currentUserID(c), parentID)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(retweet)
}

// LikeInteraction handles POST /api/interactions/:id/like
func (s *Server) LikeInteraction(c *fiber.Ctx) error {
	interactionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.interactionService.Like(c.Context(), currentUserID(c), interactionID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Liked"})
}

// UnlikeInteraction handles DELETE /api/interactions/:id/like
func (s *Server) UnlikeInteraction(c *fiber.Ctx) error {
	interactionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.interactionService.Unlike(c.Context(), currentUserID(c), interactionID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unliked"})
}

// DeleteInteraction handles DELETE /api/interactions/:id
func (s *Server) DeleteInteraction(c *fiber.Ctx) error {
	interactionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.interactionService.Delete(c.Context(), currentUserID(c), interactionID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Deleted"})
}
