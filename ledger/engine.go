// Package ledger owns the transactional record set of the till: sales with
// their line items, customer debts, and the daily invoice counter. All
// mutations of those collections go through the Engine so the balance and
// numbering invariants hold.
package ledger

import (
	"sync"
	"time"

	"posdz-backend/logger"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Engine struct {
	db  *gorm.DB
	log zerolog.Logger

	// Serializes the counter's read-increment-write sequence. Without it
	// two concurrent checkouts could print the same invoice number.
	counterMu sync.Mutex

	now func() time.Time
}

func New(db *gorm.DB) *Engine {
	return &Engine{
		db:  db,
		log: logger.WithComponent("ledger"),
		now: time.Now,
	}
}
