package models

// InvoiceCounter is a singleton row (ID 1) holding the daily invoice
// sequence. LastReset is a calendar date string (YYYY-MM-DD); the counter
// restarts at 1 whenever it differs from today, regardless of elapsed hours.
type InvoiceCounter struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Number    int    `json:"number"`
	LastReset string `json:"last_reset"`
}
