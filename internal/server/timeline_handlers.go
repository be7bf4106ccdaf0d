package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTimeline handles GET /api/timeline
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	viewerID := currentUserID(c)
	params := parsePagination(c)

	page, params, err := s.timelineService.ComputeTimeline(c.Context(), viewerID, params)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       page.Items,
		"pagination": listEnvelope(c, params, page.TotalCount, len(page.Items)),
	})
}
