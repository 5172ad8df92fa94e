package ledger

import (
	"errors"
	"fmt"

	"posdz-backend/models"

	"gorm.io/gorm"
)

const counterID = 1

// NextInvoiceNumber returns the formatted invoice number for the next
// receipt and advances the counter. The counter restarts at 1 on the first
// call of each calendar day; the stored date is compared as a date string,
// so crossing midnight always resets even if fewer than 24 hours elapsed.
func (e *Engine) NextInvoiceNumber() (string, error) {
	e.counterMu.Lock()
	defer e.counterMu.Unlock()

	today := e.now().Format("2006-01-02")

	var counter models.InvoiceCounter
	err := e.db.First(&counter, counterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.InvoiceCounter{ID: counterID, Number: 1, LastReset: today}
	} else if err != nil {
		return "", &StoreError{Op: "read invoice counter", Err: err}
	}

	if counter.LastReset != today {
		counter.Number = 1
		counter.LastReset = today
	}

	num := counter.Number
	counter.Number++
	if err := e.db.Save(&counter).Error; err != nil {
		return "", &StoreError{Op: "advance invoice counter", Err: err}
	}

	return fmt.Sprintf("#%03d", num), nil
}

// ResetDailyCounter force-resets the sequence to 1 for today. Wired to the
// explicit "close day" action, not to any timer.
func (e *Engine) ResetDailyCounter() error {
	e.counterMu.Lock()
	defer e.counterMu.Unlock()

	counter := models.InvoiceCounter{
		ID:        counterID,
		Number:    1,
		LastReset: e.now().Format("2006-01-02"),
	}
	if err := e.db.Save(&counter).Error; err != nil {
		return &StoreError{Op: "reset invoice counter", Err: err}
	}
	return nil
}
