package controllers

import (
	"posdz-backend/database"
	"posdz-backend/ledger"
	"posdz-backend/middlewares"
	"posdz-backend/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/sale — checkout. Errors from the engine carry their own
// taxonomy and are mapped by the global error handler.
func CreateSale(c *fiber.Ctx) error {
	var input ledger.SaleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	sale, err := Ledger.RecordSale(input)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(sale)
}

// GET /api/sales
func GetSales(c *fiber.Ctx) error {
	q := database.DB.Order("date DESC")
	if customerID := c.QueryInt("customer_id"); customerID > 0 {
		q = q.Where("customer_id = ?", customerID)
	}

	var sales []models.Sale
	if err := q.Find(&sales).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not list sales",
			"error":   err.Error(),
		})
	}
	return c.JSON(sales)
}

// GET /api/sale/:id — the receipt with its line items, as printing needs it.
func GetSale(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid sale ID"})
	}

	var sale models.Sale
	if err := database.DB.Preload("Items").Preload("Customer").First(&sale, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Sale not found"})
	}
	return c.JSON(sale)
}

// GET /api/invoice-number/next — issues and consumes the next number.
func NextInvoiceNumber(c *fiber.Ctx) error {
	number, err := Ledger.NextInvoiceNumber()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoice_number": number})
}

// POST /api/invoice-number/reset — explicit "close day" action.
func ResetDailyCounter(c *fiber.Ctx) error {
	if err := Ledger.ResetDailyCounter(); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "counter reset"})
}
