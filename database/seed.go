package database

import (
	"errors"
	"time"

	"posdz-backend/models"
	"posdz-backend/settings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Seed creates the default admin account, the settings defaults and the
// invoice counter on first boot. All writes are idempotent.
func Seed() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err == nil && count == 0 {
		admin := models.User{Username: "ADMIN", Role: "admin"}
		admin.SetPassword("1234")
		if err := DB.Create(&admin).Error; err != nil {
			log.Warn().Err(err).Msg("could not seed default admin")
		} else {
			log.Info().Msg("seeded default admin user (change the password!)")
		}
	}

	if err := settings.Seed(DB); err != nil {
		log.Warn().Err(err).Msg("could not seed default settings")
	}

	var counter models.InvoiceCounter
	if err := DB.First(&counter, 1).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.InvoiceCounter{
			ID:        1,
			Number:    1,
			LastReset: time.Now().Format("2006-01-02"),
		}
		if err := DB.Create(&counter).Error; err != nil {
			log.Warn().Err(err).Msg("could not seed invoice counter")
		}
	}
}
