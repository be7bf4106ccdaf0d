package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetTrends handles GET /api/trends
func (s *Server) GetTrends(c *fiber.Ctx) error {
	params := parsePagination(c)

	page, params, err := s.trendService.ListTrends(c.Context(), params)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       page.Trends,
		"pagination": listEnvelope(c, params, page.TotalCount, len(page.Trends)),
	})
}

// GetTrendTimeline handles GET /api/trends/:trend
func (s *Server) GetTrendTimeline(c *fiber.Ctx) error {
	topic := c.Params("trend")
	params := parsePagination(c)

	// Viewer flags stay zero-valued for anonymous browsing.
	viewerID, _ := s.optionalUserID(c)

	page, params, err := s.trendService.TrendTimeline(c.Context(), topic, viewerID, params)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"trend":      page.Trend,
		"data":       page.Items,
		"pagination": listEnvelope(c, params, page.TotalCount, len(page.Items)),
	})
}
