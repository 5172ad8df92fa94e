package controllers

import (
	"posdz-backend/database"
	"posdz-backend/middlewares"
	"posdz-backend/models"
	"posdz-backend/settings"

	"github.com/gofiber/fiber/v2"
)

// GET /api/settings
func GetSettings(c *fiber.Ctx) error {
	var all []models.Setting
	if err := database.DB.Order("key").Find(&all).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not list settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(all)
}

type SettingDTO struct {
	Key   string `json:"key" validate:"required,min=1"`
	Value string `json:"value"`
}

// PUT /api/settings
func PutSetting(c *fiber.Ctx) error {
	var input SettingDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	if err := settings.Set(database.DB, input.Key, input.Value); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not store setting",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"key": input.Key, "value": input.Value})
}
