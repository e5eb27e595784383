package models

import "time"

// MemberOverride sets a barber specific price or disables a barber for a
// service variation on top of what the provider catalog says.
type MemberOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceVariationID string `gorm:"size:64;not null;uniqueIndex:idx_member_override" json:"service_variation_id"`
	TeamMemberID       string `gorm:"size:64;not null;uniqueIndex:idx_member_override" json:"team_member_id"`

	PriceAmount *int64 `json:"price_amount"`
	Available   *bool  `json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
