package models

import "time"

// Sale is one checkout receipt. Settlement receipts are Sales too, flagged
// with DebtSettlement so the printing layer can label them.
type Sale struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       time.Time `json:"date" gorm:"index"`
	CustomerID *uint     `json:"customer_id" gorm:"index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Items    []SaleItem `json:"items" gorm:"foreignKey:SaleID"`
	Discount float64    `json:"discount" gorm:"type:numeric(12,2)"`
	Total    float64    `json:"total" gorm:"type:numeric(12,2)"`
	Paid     float64    `json:"paid" gorm:"type:numeric(12,2)"`

	IsDebt            bool `json:"is_debt"`
	DebtSettlement    bool `json:"debt_settlement"`
	PartialSettlement bool `json:"partial_settlement"`

	InvoiceNumber string `json:"invoice_number"`
}

// SaleItem snapshots the product name and price at sale time.
// Immutable after creation; corrections happen via new sales.
type SaleItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	SaleID      uint    `json:"sale_id" gorm:"index"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Total       float64 `json:"total" gorm:"type:numeric(12,2)"`
}

// Debt is the unpaid remainder of a credit sale. Amount shrinks under
// partial settlements; IsPaid flips once on full settlement.
type Debt struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"index"`
	SaleID     uint      `json:"sale_id"`
	Amount     float64   `json:"amount" gorm:"type:numeric(12,2)"`
	Date       time.Time `json:"date"`
	IsPaid     bool      `json:"is_paid"`
}
