package ledger

import (
	"testing"
	"time"

	"posdz-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection: a fresh pool member would see an empty :memory: db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Debt{},
		&models.InvoiceCounter{},
	))
	return db
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(newTestDB(t))
}

// at pins the engine's clock to a fixed instant.
func (e *Engine) at(ts time.Time) {
	e.now = func() time.Time { return ts }
}
