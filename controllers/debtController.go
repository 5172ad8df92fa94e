package controllers

import (
	"posdz-backend/database"
	"posdz-backend/ledger"
	"posdz-backend/middlewares"
	"posdz-backend/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/debts?customer_id=N&unpaid=1
func GetDebts(c *fiber.Ctx) error {
	q := database.DB.Order("date DESC")
	if customerID := c.QueryInt("customer_id"); customerID > 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	if c.QueryBool("unpaid") {
		q = q.Where("is_paid = ?", false)
	}

	var debts []models.Debt
	if err := q.Find(&debts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not list debts",
			"error":   err.Error(),
		})
	}
	return c.JSON(debts)
}

type SettleDTO struct {
	Mode       string  `json:"mode" validate:"required,oneof=full partial"`
	AmountPaid float64 `json:"amount_paid" validate:"gte=0"`
}

// POST /api/debts/:id/settle
func SettleDebt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid debt ID"})
	}

	var input SettleDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	remaining, err := Ledger.SettleDebt(uint(id), input.AmountPaid, ledger.SettleMode(input.Mode))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"remaining": remaining})
}

// POST /api/customers/:id/settle-all
func SettleAllDebts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid customer ID"})
	}

	settled, err := Ledger.SettleAllDebtsForCustomer(uint(id))
	if err != nil {
		// Partial success must stay observable: report what did settle
		// alongside the failure.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Some debts could not be settled",
			"settled": settled,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"settled": settled})
}

// GET /api/customers/:id/balance
func GetCustomerBalance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid customer ID"})
	}

	balance, err := Ledger.CustomerBalance(uint(id))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"balance": balance})
}
