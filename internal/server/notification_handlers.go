package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Fetching the list marks
// every returned notification as read.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	notifications, err := s.notificationService.ListFor(c.Context(), userID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

// DeleteNotifications handles DELETE /api/notifications
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.notificationService.DeleteAllFor(c.Context(), userID); err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notifications deleted successfully",
	})
}
