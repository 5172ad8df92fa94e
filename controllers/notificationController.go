package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/notifications
func GetNotifications(c *fiber.Ctx) error {
	list, err := Feed.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not list notifications",
			"error":   err.Error(),
		})
	}
	return c.JSON(list)
}

// GET /api/notifications/unread-count
func UnreadCount(c *fiber.Ctx) error {
	count, err := Feed.UnreadCount()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not count notifications",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"unread": count})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(c *fiber.Ctx) error {
	if err := Feed.MarkRead(c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not mark notification read",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "marked read"})
}

// PUT /api/notifications/read-all
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := Feed.MarkAllRead(); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not mark notifications read",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "all marked read"})
}

// DELETE /api/notifications
func ClearNotifications(c *fiber.Ctx) error {
	if err := Feed.ClearAll(); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not clear notifications",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "cleared"})
}

// POST /api/notifications/scan — manual detector trigger (the periodic
// rescan runs on its own in the background).
func TriggerScan(c *fiber.Ctx) error {
	Detector.Scan()
	return c.JSON(fiber.Map{"message": "scan complete"})
}
