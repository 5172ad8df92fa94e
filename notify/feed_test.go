package notify

import (
	"fmt"
	"testing"
	"time"

	"posdz-backend/models"

	"github.com/stretchr/testify/assert"
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
		&models.Notification{},
		&models.Setting{},
		&models.Product{},
		&models.Customer{},
		&models.Debt{},
	))
	return db
}

// testClock is a movable wall clock for deterministic dedup-window tests.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestFeed(t *testing.T) (*Feed, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	feed := NewFeed(newTestDB(t))
	feed.now = clock.Now
	return feed, clock
}

func TestPush_DedupWithin24h(t *testing.T) {
	feed, clock := newTestFeed(t)

	require.NoError(t, feed.Push("low_stock_7", "📉", "Low stock", "first", SeverityWarning))
	clock.Advance(23 * time.Hour)
	require.NoError(t, feed.Push("low_stock_7", "📉", "Low stock", "second", SeverityWarning))

	list, err := feed.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Body, "duplicate within the window is a no-op")
}

func TestPush_ReplacesAfterWindow(t *testing.T) {
	feed, clock := newTestFeed(t)

	require.NoError(t, feed.Push("low_stock_7", "📉", "Low stock", "first", SeverityWarning))
	require.NoError(t, feed.MarkRead("low_stock_7"))

	clock.Advance(25 * time.Hour)
	require.NoError(t, feed.Push("low_stock_7", "📉", "Low stock", "second", SeverityWarning))

	list, err := feed.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Body)
	assert.False(t, list[0].Read, "replacement is unread even if the old entry was read")
	assert.Equal(t, clock.Now().UnixMilli(), list[0].Ts)
}

func TestPush_CapsFeedAtFifty(t *testing.T) {
	feed, clock := newTestFeed(t)

	for i := 0; i < 50; i++ {
		require.NoError(t, feed.Push(fmt.Sprintf("n_%d", i), "i", "t", "b", SeverityInfo))
		clock.Advance(time.Second)
	}

	count, err := feed.UnreadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 50, count)

	require.NoError(t, feed.Push("n_50", "i", "t", "b", SeverityInfo))

	list, err := feed.List()
	require.NoError(t, err)
	require.Len(t, list, 50, "feed stays capped")
	assert.Equal(t, "n_50", list[0].ID, "newest first")

	var oldest int64
	require.NoError(t, feed.db.Model(&models.Notification{}).Where("id = ?", "n_0").Count(&oldest).Error)
	assert.Zero(t, oldest, "oldest entry dropped")
}

func TestMarkReadAndCounts(t *testing.T) {
	feed, clock := newTestFeed(t)

	require.NoError(t, feed.Push("a", "i", "t", "b", SeverityInfo))
	clock.Advance(time.Second)
	require.NoError(t, feed.Push("b", "i", "t", "b", SeverityWarning))

	count, err := feed.UnreadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, feed.MarkRead("a"))
	count, err = feed.UnreadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, feed.MarkAllRead())
	count, err = feed.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClearAll(t *testing.T) {
	feed, _ := newTestFeed(t)

	require.NoError(t, feed.Push("a", "i", "t", "b", SeverityInfo))
	require.NoError(t, feed.ClearAll())

	count, err := feed.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	list, err := feed.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyLogin_UniquePerCall(t *testing.T) {
	feed, clock := newTestFeed(t)

	feed.NotifyLogin("ADMIN")
	clock.Advance(time.Minute)
	feed.NotifyLogin("ADMIN")

	list, err := feed.List()
	require.NoError(t, err)
	assert.Len(t, list, 2, "logins are never deduplicated against each other")
}

func TestNotifyLogin_GloballyDisabled(t *testing.T) {
	feed, _ := newTestFeed(t)
	require.NoError(t, feed.db.Create(&models.Setting{Key: "notifEnabled", Value: "0"}).Error)

	feed.NotifyLogin("ADMIN")

	list, err := feed.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyPasswordChange(t *testing.T) {
	feed, _ := newTestFeed(t)

	feed.NotifyPasswordChange("ADMIN")

	list, err := feed.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, SeverityWarning, list[0].Type)
	assert.Contains(t, list[0].Body, "ADMIN")
}
