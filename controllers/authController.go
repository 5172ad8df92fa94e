package controllers

import (
	"posdz-backend/database"
	"posdz-backend/middlewares"
	"posdz-backend/models"

	"github.com/gofiber/fiber/v2"
)

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(c *fiber.Ctx) error {
	var input LoginDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	if err := user.ComparePassword(input.Password); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Role)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"message": "Could not issue token",
			"error":   err.Error(),
		})
	}

	Feed.NotifyLogin(user.Username)

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.Id,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=4"`
}

// ChangePassword updates the authenticated user's own password.
func ChangePassword(c *fiber.Ctx) error {
	var input ChangePasswordDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "User not found"})
	}

	if err := user.ComparePassword(input.OldPassword); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"message": "Old password does not match"})
	}

	user.SetPassword(input.NewPassword)
	if err := database.DB.Model(&user).Update("password", user.Password).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "Could not update password", "error": err.Error()})
	}

	Feed.NotifyPasswordChange(user.Username)

	return c.JSON(fiber.Map{"message": "password updated"})
}

type CreateUserDTO struct {
	Username string `json:"username" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=admin cashier"`
}

// CreateUser adds a till account. Admin only.
func CreateUser(c *fiber.Ctx) error {
	var input CreateUserDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	user := models.User{Username: input.Username, Role: input.Role}
	user.SetPassword(input.Password)

	if err := database.DB.Create(&user).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
