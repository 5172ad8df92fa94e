package notify

import (
	"fmt"
	"math"
	"time"

	"posdz-backend/logger"
	"posdz-backend/models"
	"posdz-backend/settings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Detector evaluates catalog and ledger state against the configured
// thresholds and pushes the resulting alerts. Runs are best-effort: every
// internal failure is logged and swallowed so a scan can never block
// startup or crash the scheduler.
type Detector struct {
	db   *gorm.DB
	feed *Feed
	log  zerolog.Logger
	now  func() time.Time
}

func NewDetector(db *gorm.DB, feed *Feed) *Detector {
	return &Detector{
		db:   db,
		feed: feed,
		log:  logger.WithComponent("notify.detector"),
		now:  time.Now,
	}
}

// Scan runs all detector rules once. Safe to call from any trigger: boot,
// the 24h rescan, or the manual endpoint.
func (d *Detector) Scan() {
	cfg := settings.LoadNotifConfig(d.db)
	if !cfg.Enabled {
		return
	}

	if cfg.LowStock || cfg.OutStock || cfg.Expiry {
		var products []models.Product
		if err := d.db.Find(&products).Error; err != nil {
			d.log.Warn().Err(err).Msg("product scan skipped")
		} else {
			if cfg.LowStock {
				d.checkLowStock(products, cfg.DefaultMinStock)
			}
			if cfg.OutStock {
				d.checkOutOfStock(products)
			}
			if cfg.Expiry {
				d.checkExpiry(products)
			}
		}
	}

	if cfg.Debt30 {
		d.checkAgingDebts()
	}
}

func (d *Detector) push(id, icon, title, body, severity string) {
	if err := d.feed.Push(id, icon, title, body, severity); err != nil {
		d.log.Warn().Err(err).Str("id", id).Msg("push failed")
	}
}

func (d *Detector) checkLowStock(products []models.Product, defaultMin int) {
	for _, p := range products {
		min := p.MinStock
		if min == 0 {
			min = defaultMin
		}
		if p.Quantity > 0 && p.Quantity <= min {
			d.push(
				fmt.Sprintf("low_stock_%d", p.ID), "📉", "Low stock",
				fmt.Sprintf("%s — %d left", p.Name, p.Quantity),
				SeverityWarning,
			)
		}
	}
}

func (d *Detector) checkOutOfStock(products []models.Product) {
	for _, p := range products {
		if p.Quantity == 0 {
			d.push(
				fmt.Sprintf("out_stock_%d", p.ID), "🚫", "Out of stock",
				fmt.Sprintf("%s — none left in inventory", p.Name),
				SeverityDanger,
			)
		}
	}
}

func (d *Detector) checkExpiry(products []models.Product) {
	now := d.now()
	for _, p := range products {
		if p.ExpiryDate == nil {
			continue
		}
		daysLeft := p.ExpiryDate.Sub(now).Hours() / 24
		switch {
		case daysLeft >= 0 && daysLeft <= 7:
			d.push(
				fmt.Sprintf("expiry_%d", p.ID), "⏰", "Expiry approaching",
				fmt.Sprintf("%s — %d days left", p.Name, int(math.Ceil(daysLeft))),
				SeverityWarning,
			)
		case daysLeft < 0:
			d.push(
				fmt.Sprintf("expired_%d", p.ID), "❌", "Product expired",
				fmt.Sprintf("%s — past its expiry date", p.Name),
				SeverityDanger,
			)
		}
	}
}

type debtSummary struct {
	maxDays int
	amount  float64
}

// checkAgingDebts warns at 28 days and escalates to danger at 30, per
// customer over their unpaid debts. Warning and danger share a dedup key,
// so whichever fires first in a 24h window wins until it lapses.
func (d *Detector) checkAgingDebts() {
	var debts []models.Debt
	if err := d.db.Where("is_paid = ?", false).Find(&debts).Error; err != nil {
		d.log.Warn().Err(err).Msg("debt scan skipped")
		return
	}

	now := d.now()
	grouped := make(map[uint]*debtSummary)
	for _, debt := range debts {
		days := now.Sub(debt.Date).Hours() / 24
		if days < 28 {
			continue
		}
		s := grouped[debt.CustomerID]
		if s == nil {
			s = &debtSummary{}
			grouped[debt.CustomerID] = s
		}
		if int(days) > s.maxDays {
			s.maxDays = int(days)
		}
		s.amount += debt.Amount
	}

	for customerID, s := range grouped {
		name := "—"
		var customer models.Customer
		if err := d.db.First(&customer, customerID).Error; err == nil {
			name = customer.Name
		}

		title, icon, severity := "Debt approaching 30 days", "⚠️", SeverityWarning
		if s.maxDays >= 30 {
			title, icon, severity = "Debt past 30 days", "💳", SeverityDanger
		}
		d.push(
			fmt.Sprintf("debt_30_%d", customerID), icon, title,
			fmt.Sprintf("%s — %.0f owed — %d days", name, s.amount, s.maxDays),
			severity,
		)
	}
}
