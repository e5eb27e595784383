package models

import "time"

// KVEntry backs the key-value store for carts and completed bookings.
type KVEntry struct {
	Key   string `gorm:"column:store_key;primaryKey;size:191" json:"key"`
	Value []byte `gorm:"not null" json:"value"`

	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e KVEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}
