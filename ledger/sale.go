package ledger

import (
	"fmt"

	"posdz-backend/models"
	"posdz-backend/utils"

	"gorm.io/gorm"
)

type SaleItemInput struct {
	ProductID   uint    `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// SaleInput is one checkout. IsDebt=false is a fully paid cash sale;
// IsDebt=true with Paid>0 is a partial payment plus debt; IsDebt=true with
// Paid=0 is a full credit sale.
type SaleInput struct {
	CustomerID *uint           `json:"customer_id"`
	Items      []SaleItemInput `json:"items" validate:"required,min=1,dive"`
	Discount   float64         `json:"discount" validate:"gte=0"`
	Paid       float64         `json:"paid" validate:"gte=0"`
	IsDebt     bool            `json:"is_debt"`
}

// RecordSale persists a checkout: sale header, line items, the debt record
// when sold on credit, and a best-effort stock decrement on the catalog.
//
// The header and its items are separate store writes with no cross-write
// rollback. If item persistence fails mid-way the sale stays committed and
// the error wraps ErrItemsNotPersisted so the caller can reconcile.
func (e *Engine) RecordSale(input SaleInput) (*models.Sale, error) {
	if len(input.Items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "sale needs at least one item"}
	}
	if input.Discount < 0 {
		return nil, &ValidationError{Field: "discount", Reason: "must not be negative"}
	}

	var itemsTotal float64
	for i, it := range input.Items {
		if it.Quantity <= 0 {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("items[%d].quantity", i),
				Reason: "must be greater than zero",
			}
		}
		if it.UnitPrice < 0 {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("items[%d].unit_price", i),
				Reason: "must not be negative",
			}
		}
		itemsTotal += float64(it.Quantity) * it.UnitPrice
	}

	total := utils.Round2(itemsTotal - input.Discount)
	if total < 0 {
		return nil, &ValidationError{Field: "discount", Reason: "exceeds items total"}
	}

	paid := utils.Round2(input.Paid)
	if input.IsDebt {
		if input.CustomerID == nil {
			return nil, &ValidationError{Field: "customer_id", Reason: "credit sale needs a customer"}
		}
		if paid < 0 || paid >= total {
			return nil, &ValidationError{Field: "paid", Reason: "credit sale requires paid < total"}
		}
	} else {
		// Cash sale: full payment enforced.
		paid = total
	}

	invoiceNumber, err := e.NextInvoiceNumber()
	if err != nil {
		return nil, err
	}

	sale := models.Sale{
		Date:          e.now(),
		CustomerID:    input.CustomerID,
		Discount:      utils.Round2(input.Discount),
		Total:         total,
		Paid:          paid,
		IsDebt:        input.IsDebt,
		InvoiceNumber: invoiceNumber,
	}
	if err := e.db.Omit("Items").Create(&sale).Error; err != nil {
		return nil, &StoreError{Op: "create sale", Err: err}
	}

	for i, it := range input.Items {
		item := models.SaleItem{
			SaleID:      sale.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       utils.Round2(float64(it.Quantity) * it.UnitPrice),
		}
		if err := e.db.Create(&item).Error; err != nil {
			return &sale, &StoreError{
				Op:  fmt.Sprintf("create sale item %d of %d for sale %d", i+1, len(input.Items), sale.ID),
				Err: fmt.Errorf("%w: %w", ErrItemsNotPersisted, err),
			}
		}
		sale.Items = append(sale.Items, item)
	}

	if input.IsDebt {
		debt := models.Debt{
			CustomerID: *input.CustomerID,
			SaleID:     sale.ID,
			Amount:     utils.Round2(total - paid),
			Date:       sale.Date,
		}
		if err := e.db.Create(&debt).Error; err != nil {
			return &sale, &StoreError{Op: "create debt", Err: err}
		}
	}

	e.decrementStock(input.Items)

	return &sale, nil
}

// decrementStock lowers catalog quantities for the sold items. Best-effort:
// a failed decrement is logged and never aborts the sale.
func (e *Engine) decrementStock(items []SaleItemInput) {
	for _, it := range items {
		err := e.db.Model(&models.Product{}).
			Where("id = ?", it.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", it.Quantity)).Error
		if err != nil {
			e.log.Warn().Err(err).
				Uint("product_id", it.ProductID).
				Int("quantity", it.Quantity).
				Msg("stock decrement failed")
		}
	}
}
