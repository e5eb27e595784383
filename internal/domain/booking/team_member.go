package booking

import "strings"

const TeamMemberStatusActive = "ACTIVE"

type TeamMember struct {
	ID         string `json:"id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email_address,omitempty"`
	Status     string `json:"status"`
	IsOwner    bool   `json:"is_owner"`
}

func (m TeamMember) DisplayName() string {
	return strings.TrimSpace(m.GivenName + " " + m.FamilyName)
}

// Bookable is false for owners and members that are not active.
func (m TeamMember) Bookable() bool {
	return !m.IsOwner && strings.EqualFold(m.Status, TeamMemberStatusActive)
}
