package database

import (
	"os"

	"posdz-backend/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens (or creates) the local SQLite database. Everything this
// application knows lives in that one file; there is no remote store.
func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using environment as-is")
	}

	path := os.Getenv("POS_DB_PATH")
	if path == "" {
		path = "posdz.db"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("could not open database")
	}

	// SQLite allows one writer at a time; a single pooled connection keeps
	// GORM from tripping over SQLITE_BUSY under Fiber's concurrency.
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
}

func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Debt{},
		&models.InvoiceCounter{},
		&models.Notification{},
		&models.Setting{},
		&models.IdempotencyKey{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}
}
