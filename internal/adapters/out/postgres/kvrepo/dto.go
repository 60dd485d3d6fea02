// Package kvrepo persists the storefront key space in PostgreSQL through GORM,
// one row per key.
package kvrepo

import "time"

// EntryDTO is one key-value pair.
type EntryDTO struct {
	Key       string `gorm:"primaryKey;type:text"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming.
func (EntryDTO) TableName() string {
	return "kv_entries"
}
