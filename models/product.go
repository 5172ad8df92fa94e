package models

import "time"

type Product struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"not null"`
	Barcode    string     `json:"barcode" gorm:"index"`
	Category   string     `json:"category"`
	Price      float64    `json:"price" gorm:"type:numeric(12,2)"`
	Cost       float64    `json:"cost" gorm:"type:numeric(12,2)"`
	Quantity   int        `json:"quantity"`
	MinStock   int        `json:"min_stock"`
	ExpiryDate *time.Time `json:"expiry_date"`
	CreatedAt  time.Time  `json:"created_at"`
}
