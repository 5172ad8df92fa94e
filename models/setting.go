package models

// Setting is one key of the store-wide key/value dictionary. Boolean flags
// are stored as "0"/"1" strings; absent keys mean enabled.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}
