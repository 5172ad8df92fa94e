package settings

import (
	"errors"

	"posdz-backend/models"

	"gorm.io/gorm"
)

// Get returns the stored value for key, or "" if the key is absent.
func Get(db *gorm.DB, key string) (string, error) {
	var rec models.Setting
	if err := db.First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.Value, nil
}

// Set upserts a single key.
func Set(db *gorm.DB, key, value string) error {
	return db.Save(&models.Setting{Key: key, Value: value}).Error
}

// Defaults written on first boot. Keys already present are left untouched so
// the shop's configuration survives upgrades.
var defaults = map[string]string{
	"storeName":    "My Store",
	"storePhone":   "",
	"storeAddress": "",
	"storeWelcome": "Thank you for your visit",
	"currency":     "DA",
	"dateFormat":   "DD/MM/YYYY",

	"lowStockAlert": "5",

	"notifEnabled":   "1",
	"notifLowStock":  "1",
	"notifOutStock":  "1",
	"notifDebt30":    "1",
	"notifExpiry":    "1",
	"notifLogin":     "1",
	"notifPwdChange": "1",
}

func Seed(db *gorm.DB) error {
	for key, value := range defaults {
		var existing models.Setting
		err := db.First(&existing, "key = ?", key).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
