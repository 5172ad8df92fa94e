// Package notify derives alerts from catalog and ledger state and keeps
// them in a bounded, read-tracked feed. It reads the other collections but
// never mutates them.
package notify

import (
	"errors"
	"strconv"
	"time"

	"posdz-backend/logger"
	"posdz-backend/models"
	"posdz-backend/settings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
	SeveritySuccess = "success"
)

const (
	// Oldest entries beyond this are dropped, read or not.
	maxEntries = 50
	// Window during which a repeated push with the same id is a no-op.
	dedupWindow = 24 * time.Hour
)

type Feed struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

func NewFeed(db *gorm.DB) *Feed {
	return &Feed{
		db:  db,
		log: logger.WithComponent("notify"),
		now: time.Now,
	}
}

// Push inserts an unread notification at the head of the feed.
//
// If an entry with the same id is younger than the dedup window the call is
// a no-op, read state included. Otherwise the stale entry is replaced by a
// fresh unread one, and the feed is truncated to its cap.
func (f *Feed) Push(id, icon, title, body, severity string) error {
	nowMs := f.now().UnixMilli()

	var existing models.Notification
	err := f.db.First(&existing, "id = ?", id).Error
	switch {
	case err == nil:
		if nowMs-existing.Ts < dedupWindow.Milliseconds() {
			return nil
		}
		if err := f.db.Delete(&models.Notification{}, "id = ?", id).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first occurrence
	default:
		return err
	}

	entry := models.Notification{
		ID:    id,
		Icon:  icon,
		Title: title,
		Body:  body,
		Type:  severity,
		Ts:    nowMs,
	}
	if err := f.db.Create(&entry).Error; err != nil {
		return err
	}

	return f.truncate()
}

// truncate drops everything beyond the newest maxEntries records.
func (f *Feed) truncate() error {
	var keep []string
	err := f.db.Model(&models.Notification{}).
		Order("ts DESC").
		Limit(maxEntries).
		Pluck("id", &keep).Error
	if err != nil {
		return err
	}
	if len(keep) < maxEntries {
		return nil
	}
	return f.db.Delete(&models.Notification{}, "id NOT IN ?", keep).Error
}

// List returns the feed newest-first.
func (f *Feed) List() ([]models.Notification, error) {
	var list []models.Notification
	if err := f.db.Order("ts DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (f *Feed) MarkRead(id string) error {
	return f.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (f *Feed) MarkAllRead() error {
	return f.db.Model(&models.Notification{}).
		Where("read = ?", false).
		Update("read", true).Error
}

func (f *Feed) UnreadCount() (int64, error) {
	var count int64
	err := f.db.Model(&models.Notification{}).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}

// ClearAll empties the whole feed. There is no single-entry delete.
func (f *Feed) ClearAll() error {
	return f.db.Where("1 = 1").Delete(&models.Notification{}).Error
}

// NotifyLogin records a sign-in. The id carries a timestamp suffix so
// repeated logins are never deduplicated against each other.
func (f *Feed) NotifyLogin(username string) {
	cfg := settings.LoadNotifConfig(f.db)
	if !cfg.Enabled || !cfg.Login {
		return
	}
	now := f.now()
	id := "login_" + username + "_" + strconv.FormatInt(now.UnixMilli(), 10)
	body := username + " signed in at " + now.Format("15:04")
	if err := f.Push(id, "👤", "User login", body, SeverityInfo); err != nil {
		f.log.Warn().Err(err).Str("username", username).Msg("login notification failed")
	}
}

// NotifyPasswordChange records a password change for the given account.
func (f *Feed) NotifyPasswordChange(username string) {
	cfg := settings.LoadNotifConfig(f.db)
	if !cfg.Enabled || !cfg.PasswordChange {
		return
	}
	id := "pwd_" + username + "_" + strconv.FormatInt(f.now().UnixMilli(), 10)
	body := "Password changed for user: " + username
	if err := f.Push(id, "🔑", "Password changed", body, SeverityWarning); err != nil {
		f.log.Warn().Err(err).Str("username", username).Msg("password-change notification failed")
	}
}
