package controllers

import (
	"time"

	"posdz-backend/database"
	"posdz-backend/middlewares"
	"posdz-backend/models"
	"posdz-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductCreateDTO struct {
	Name       string  `json:"name" validate:"required,min=1"`
	Barcode    string  `json:"barcode" validate:"omitempty"`
	Category   string  `json:"category" validate:"omitempty"`
	Price      float64 `json:"price" validate:"gte=0"`
	Cost       float64 `json:"cost" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"gte=0"`
	MinStock   int     `json:"min_stock" validate:"gte=0"`
	ExpiryDate string  `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

type ProductUpdateDTO struct {
	Name     *string  `json:"name" validate:"omitempty,min=1"`
	Barcode  *string  `json:"barcode" validate:"omitempty"`
	Category *string  `json:"category" validate:"omitempty"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Cost     *float64 `json:"cost" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
	MinStock *int     `json:"min_stock" validate:"omitempty,gte=0"`
}

// POST /api/product
func CreateProduct(c *fiber.Ctx) error {
	var input ProductCreateDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	product := models.Product{
		Name:     input.Name,
		Barcode:  input.Barcode,
		Category: input.Category,
		Price:    input.Price,
		Cost:     input.Cost,
		Quantity: input.Quantity,
		MinStock: input.MinStock,
	}
	if input.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", input.ExpiryDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid expiry date"})
		}
		product.ExpiryDate = &expiry
	}

	if err := database.DB.Create(&product).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(product)
}

// GET /api/products
func GetProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := database.DB.Order("name").Find(&products).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// GET /api/product/:id
func GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(product)
}

// PUT /api/product/:id
func UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var input ProductUpdateDTO
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Nothing to update"})
	}

	res := database.DB.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	var product models.Product
	database.DB.First(&product, id)
	return c.JSON(product)
}

// DELETE /api/product/:id
func DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	res := database.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
