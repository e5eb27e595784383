package booking

// ===============================
// Service (catalog item variation)
// ===============================

// MemberAssignment links a team member to a service, optionally with a
// member specific price and an explicit availability flag.
type MemberAssignment struct {
	TeamMemberID  string `json:"team_member_id"`
	PriceOverride *int64 `json:"price_override,omitempty"`
	Available     *bool  `json:"available,omitempty"`
}

type Service struct {
	ID              string             `json:"id"`
	CatalogItemID   string             `json:"catalog_item_id"`
	Name            string             `json:"name"`
	VariationName   string             `json:"variation_name"`
	Description     string             `json:"description"`
	PriceAmount     int64              `json:"price_amount"`
	Currency        string             `json:"price_currency"`
	DurationMinutes int                `json:"duration_minutes"`
	Version         int64              `json:"version,omitempty"`
	Members         []MemberAssignment `json:"team_members,omitempty"`
}

// Assignment returns the assignment of memberID to the service, if any.
func (s Service) Assignment(memberID string) (MemberAssignment, bool) {
	for _, m := range s.Members {
		if m.TeamMemberID == memberID {
			return m, true
		}
	}
	return MemberAssignment{}, false
}

// EligibleFor reports whether memberID performs the service. An explicit
// availability flag set to false disables the assignment.
func (s Service) EligibleFor(memberID string) bool {
	a, ok := s.Assignment(memberID)
	if !ok {
		return false
	}
	return a.Available == nil || *a.Available
}

// PriceFor resolves the effective price of the service for memberID.
func (s Service) PriceFor(memberID string) int64 {
	if a, ok := s.Assignment(memberID); ok && a.PriceOverride != nil {
		return *a.PriceOverride
	}
	return s.PriceAmount
}
