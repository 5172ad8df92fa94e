package notify

import (
	"testing"
	"time"

	"posdz-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDetector(t *testing.T) (*Detector, *gorm.DB, *testClock) {
	t.Helper()
	db := newTestDB(t)
	clock := &testClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	feed := NewFeed(db)
	feed.now = clock.Now
	d := NewDetector(db, feed)
	d.now = clock.Now
	return d, db, clock
}

func find(t *testing.T, d *Detector, id string) (models.Notification, bool) {
	t.Helper()
	var n models.Notification
	err := d.db.First(&n, "id = ?", id).Error
	if err != nil {
		return models.Notification{}, false
	}
	return n, true
}

func TestScan_LowStock(t *testing.T) {
	d, db, _ := newTestDetector(t)
	require.NoError(t, db.Create(&models.Product{Name: "Milk", Quantity: 3, MinStock: 5}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Rice", Quantity: 30, MinStock: 5}).Error)

	d.Scan()

	n, ok := find(t, d, "low_stock_1")
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, n.Type)
	assert.Contains(t, n.Body, "Milk")

	_, ok = find(t, d, "low_stock_2")
	assert.False(t, ok, "well stocked product must not alert")
}

func TestScan_LowStock_DefaultThreshold(t *testing.T) {
	d, db, _ := newTestDetector(t)
	// MinStock unset: store-wide default (5) applies.
	require.NoError(t, db.Create(&models.Product{Name: "Tea", Quantity: 5}).Error)

	d.Scan()

	_, ok := find(t, d, "low_stock_1")
	assert.True(t, ok)
}

func TestScan_OutOfStock(t *testing.T) {
	d, db, _ := newTestDetector(t)
	require.NoError(t, db.Create(&models.Product{Name: "Oil", Quantity: 0}).Error)

	d.Scan()

	n, ok := find(t, d, "out_stock_1")
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, n.Type)

	_, ok = find(t, d, "low_stock_1")
	assert.False(t, ok, "zero stock is out-of-stock, not low-stock")
}

func TestScan_AgingDebt(t *testing.T) {
	d, db, clock := newTestDetector(t)
	c := models.Customer{Name: "Karim"}
	require.NoError(t, db.Create(&c).Error)

	young := models.Debt{CustomerID: c.ID, Amount: 100, Date: clock.Now().Add(-10 * 24 * time.Hour)}
	aging := models.Debt{CustomerID: c.ID, Amount: 250, Date: clock.Now().Add(-29 * 24 * time.Hour)}
	require.NoError(t, db.Create(&young).Error)
	require.NoError(t, db.Create(&aging).Error)

	d.Scan()

	n, ok := find(t, d, "debt_30_1")
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, n.Type, "28-29 days warns")
	assert.Contains(t, n.Body, "Karim")
	assert.Contains(t, n.Body, "250", "only debts past 28 days are summed")
}

func TestScan_AgingDebt_DangerPast30(t *testing.T) {
	d, db, clock := newTestDetector(t)
	c := models.Customer{Name: "Karim"}
	require.NoError(t, db.Create(&c).Error)
	require.NoError(t, db.Create(&models.Debt{
		CustomerID: c.ID, Amount: 400, Date: clock.Now().Add(-31 * 24 * time.Hour),
	}).Error)

	d.Scan()

	n, ok := find(t, d, "debt_30_1")
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, n.Type)
}

func TestScan_AgingDebt_PaidDebtsIgnored(t *testing.T) {
	d, db, clock := newTestDetector(t)
	c := models.Customer{Name: "Karim"}
	require.NoError(t, db.Create(&c).Error)
	require.NoError(t, db.Create(&models.Debt{
		CustomerID: c.ID, Amount: 400, IsPaid: true,
		Date: clock.Now().Add(-40 * 24 * time.Hour),
	}).Error)

	d.Scan()

	_, ok := find(t, d, "debt_30_1")
	assert.False(t, ok)
}

func TestScan_Expiry(t *testing.T) {
	d, db, clock := newTestDetector(t)

	soon := clock.Now().Add(3 * 24 * time.Hour)
	past := clock.Now().Add(-2 * 24 * time.Hour)
	far := clock.Now().Add(60 * 24 * time.Hour)
	require.NoError(t, db.Create(&models.Product{Name: "Yogurt", Quantity: 10, ExpiryDate: &soon}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Cheese", Quantity: 10, ExpiryDate: &past}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Pasta", Quantity: 10, ExpiryDate: &far}).Error)

	d.Scan()

	n, ok := find(t, d, "expiry_1")
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, n.Type)

	n, ok = find(t, d, "expired_2")
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, n.Type)

	_, ok = find(t, d, "expiry_3")
	assert.False(t, ok)
}

func TestScan_DisabledFlagsSuppressRules(t *testing.T) {
	d, db, _ := newTestDetector(t)
	require.NoError(t, db.Create(&models.Setting{Key: "notifLowStock", Value: "0"}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Milk", Quantity: 2, MinStock: 5}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Oil", Quantity: 0}).Error)

	d.Scan()

	_, ok := find(t, d, "low_stock_1")
	assert.False(t, ok, "low-stock rule disabled")
	_, ok = find(t, d, "out_stock_2")
	assert.True(t, ok, "other rules still run")
}

func TestScan_GloballyDisabled(t *testing.T) {
	d, db, _ := newTestDetector(t)
	require.NoError(t, db.Create(&models.Setting{Key: "notifEnabled", Value: "0"}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Oil", Quantity: 0}).Error)

	d.Scan()

	list, err := d.feed.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScan_RescanWithin24hIsQuiet(t *testing.T) {
	d, db, clock := newTestDetector(t)
	require.NoError(t, db.Create(&models.Product{Name: "Milk", Quantity: 2, MinStock: 5}).Error)

	d.Scan()
	require.NoError(t, d.feed.MarkAllRead())

	clock.Advance(2 * time.Hour)
	d.Scan()

	count, err := d.feed.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, count, "repeat within the dedup window does not re-alert")
}
