package settings

import (
	"posdz-backend/utils"

	"gorm.io/gorm"
)

// NotifConfig is the decoded form of the "0"/"1" notification flags.
// Absent keys default to enabled; only an explicit "0" disables a rule.
type NotifConfig struct {
	Enabled        bool
	LowStock       bool
	OutStock       bool
	Debt30         bool
	Expiry         bool
	Login          bool
	PasswordChange bool

	// Fallback threshold for products without an own min-stock value.
	DefaultMinStock int
}

func flag(db *gorm.DB, key string) bool {
	v, err := Get(db, key)
	if err != nil {
		return true
	}
	return v != "0"
}

// LoadNotifConfig decodes all notification settings in one pass. Read errors
// fall back to the enabled default; the detector must not die on a bad read.
func LoadNotifConfig(db *gorm.DB) NotifConfig {
	minStock, _ := Get(db, "lowStockAlert")
	return NotifConfig{
		Enabled:         flag(db, "notifEnabled"),
		LowStock:        flag(db, "notifLowStock"),
		OutStock:        flag(db, "notifOutStock"),
		Debt30:          flag(db, "notifDebt30"),
		Expiry:          flag(db, "notifExpiry"),
		Login:           flag(db, "notifLogin"),
		PasswordChange:  flag(db, "notifPwdChange"),
		DefaultMinStock: utils.ParseIntDefault(minStock, 5),
	}
}
