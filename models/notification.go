package models

// Notification is one entry of the bounded alert feed. IDs are chosen by the
// producer and double as the dedup key (e.g. "low_stock_7"). Ts is unix
// milliseconds so the 24h dedup window survives restarts.
type Notification struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Type  string `json:"type"` // info | warning | danger | success
	Ts    int64  `json:"ts" gorm:"index"`
	Read  bool   `json:"read"`
}
