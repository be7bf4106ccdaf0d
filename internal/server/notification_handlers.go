package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Serving the page
// marks every notification of the caller as seen.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	recipientID := currentUserID(c)
	params := parsePagination(c)

	page, params, err := s.notificationService.ListNotifications(c.Context(), recipientID, params)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       page.Groups,
		"pagination": listEnvelope(c, params, page.TotalCount, len(page.Groups)),
	})
}

// GetUnseenNotificationCount handles GET /api/notifications/unseen
func (s *Server) GetUnseenNotificationCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnseenCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"notificationCount": count,
	})
}
