package handlers

import (
	"restopos/internal/effects"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler exposes failed persistence effects to the operator.
type NotificationHandler struct {
	queue *effects.Queue
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(queue *effects.Queue) *NotificationHandler {
	return &NotificationHandler{queue: queue}
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/notifications", h.HandleGetNotifications)
}

// HandleGetNotifications returns the latest failures, newest last.
func (h *NotificationHandler) HandleGetNotifications(c *fiber.Ctx) error {
	return c.JSON(h.queue.Recent())
}
