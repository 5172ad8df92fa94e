package controllers

import (
	"posdz-backend/database"
	"posdz-backend/middlewares"
	"posdz-backend/models"
	"posdz-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CustomerCreateDTO struct {
	Name    string `json:"name" validate:"required,min=1"`
	Phone   string `json:"phone" validate:"omitempty"`
	Address string `json:"address" validate:"omitempty"`
	Note    string `json:"note" validate:"omitempty"`
}

type CustomerUpdateDTO struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Phone   *string `json:"phone" validate:"omitempty"`
	Address *string `json:"address" validate:"omitempty"`
	Note    *string `json:"note" validate:"omitempty"`
}

// POST /api/customer
func CreateCustomer(c *fiber.Ctx) error {
	var input CustomerCreateDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	customer := models.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Note:    input.Note,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}
	return c.Status(201).JSON(customer)
}

// GET /api/customers
func GetCustomers(c *fiber.Ctx) error {
	var customers []models.Customer
	if err := database.DB.Order("name").Find(&customers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not list customers",
			"error":   err.Error(),
		})
	}
	return c.JSON(customers)
}

// GET /api/customer/:id — includes the outstanding balance.
func GetCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid customer ID"})
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Customer not found"})
	}

	balance, err := Ledger.CustomerBalance(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"customer": customer,
		"balance":  balance,
	})
}

// PUT /api/customer/:id
func UpdateCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid customer ID"})
	}

	var input CustomerUpdateDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Nothing to update"})
	}

	res := database.DB.Model(&models.Customer{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Customer not found"})
	}

	var customer models.Customer
	database.DB.First(&customer, id)
	return c.JSON(customer)
}

// DELETE /api/customer/:id — deleting a customer with open debts is the
// caller's policy call; nothing is enforced here.
func DeleteCustomer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid customer ID"})
	}

	res := database.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not delete customer",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Customer not found"})
	}
	return c.JSON(fiber.Map{"message": "customer deleted"})
}
