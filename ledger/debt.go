package ledger

import (
	"errors"
	"fmt"

	"posdz-backend/models"
	"posdz-backend/utils"

	"gorm.io/gorm"
)

type SettleMode string

const (
	SettleFull    SettleMode = "full"
	SettlePartial SettleMode = "partial"
)

// SettleDebt applies a payment against an existing debt and records a
// settlement receipt for printing.
//
// Full mode marks the debt paid and leaves its amount untouched. Partial
// mode requires 0 < amountPaid <= amount; paying the exact remainder closes
// the debt like a full settlement. Either way the customer's aggregate
// unpaid balance drops by exactly the amount paid.
func (e *Engine) SettleDebt(debtID uint, amountPaid float64, mode SettleMode) (float64, error) {
	var debt models.Debt
	if err := e.db.First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &NotFoundError{Entity: "debt", ID: debtID}
		}
		return 0, &StoreError{Op: "read debt", Err: err}
	}
	if debt.IsPaid {
		return 0, &ValidationError{Field: "debt", Reason: "already settled"}
	}

	var remaining, settled float64
	partial := false

	switch mode {
	case SettleFull:
		settled = debt.Amount
		debt.IsPaid = true
	case SettlePartial:
		amountPaid = utils.Round2(amountPaid)
		if amountPaid <= 0 || amountPaid > debt.Amount {
			return 0, &ValidationError{
				Field:  "amount_paid",
				Reason: fmt.Sprintf("must be within (0, %.2f]", debt.Amount),
			}
		}
		settled = amountPaid
		if amountPaid == debt.Amount {
			debt.IsPaid = true
		} else {
			debt.Amount = utils.Round2(debt.Amount - amountPaid)
			remaining = debt.Amount
			partial = true
		}
	default:
		return 0, &ValidationError{Field: "mode", Reason: "must be full or partial"}
	}

	if err := e.db.Save(&debt).Error; err != nil {
		return 0, &StoreError{Op: "update debt", Err: err}
	}

	if err := e.recordSettlementReceipt(debt.CustomerID, settled, partial); err != nil {
		// The debt update stands; the receipt is for printing only.
		e.log.Warn().Err(err).Uint("debt_id", debtID).Msg("settlement receipt not recorded")
	}

	return remaining, nil
}

// SettleAllDebtsForCustomer marks every unpaid debt of the customer paid in
// one pass and records a single receipt over the summed amount. Records that
// fail to update are reported back; the rest still settle.
func (e *Engine) SettleAllDebtsForCustomer(customerID uint) ([]uint, error) {
	var debts []models.Debt
	if err := e.db.Where("customer_id = ? AND is_paid = ?", customerID, false).Find(&debts).Error; err != nil {
		return nil, &StoreError{Op: "list unpaid debts", Err: err}
	}

	var (
		settled []uint
		total   float64
		errs    []error
	)
	for i := range debts {
		debts[i].IsPaid = true
		if err := e.db.Save(&debts[i]).Error; err != nil {
			errs = append(errs, &StoreError{
				Op:  fmt.Sprintf("settle debt %d", debts[i].ID),
				Err: err,
			})
			continue
		}
		settled = append(settled, debts[i].ID)
		total += debts[i].Amount
	}

	if len(settled) > 0 {
		if err := e.recordSettlementReceipt(customerID, utils.Round2(total), false); err != nil {
			e.log.Warn().Err(err).Uint("customer_id", customerID).Msg("bulk settlement receipt not recorded")
		}
	}

	return settled, errors.Join(errs...)
}

// CustomerBalance is the sum of the customer's unpaid debt amounts — the
// single number every screen shows as "owed".
func (e *Engine) CustomerBalance(customerID uint) (float64, error) {
	var balance float64
	err := e.db.Model(&models.Debt{}).
		Where("customer_id = ? AND is_paid = ?", customerID, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, &StoreError{Op: "sum unpaid debts", Err: err}
	}
	return utils.Round2(balance), nil
}

// recordSettlementReceipt writes the Sale-flavored receipt that the thermal
// printer uses for settlement slips. It consumes an invoice number like any
// other sale.
func (e *Engine) recordSettlementReceipt(customerID uint, amount float64, partial bool) error {
	invoiceNumber, err := e.NextInvoiceNumber()
	if err != nil {
		return err
	}
	receipt := models.Sale{
		Date:              e.now(),
		CustomerID:        &customerID,
		Total:             amount,
		Paid:              amount,
		DebtSettlement:    true,
		PartialSettlement: partial,
		InvoiceNumber:     invoiceNumber,
	}
	if err := e.db.Omit("Items").Create(&receipt).Error; err != nil {
		return &StoreError{Op: "create settlement receipt", Err: err}
	}
	return nil
}
