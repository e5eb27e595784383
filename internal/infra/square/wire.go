package square

import "time"

// ===============================
// Square wire types (subset)
// ===============================

type apiError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

type errorBody struct {
	Errors []apiError `json:"errors"`
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type catalogObject struct {
	Type     string         `json:"type"`
	ID       string         `json:"id"`
	Version  int64          `json:"version"`
	ItemData *itemData      `json:"item_data,omitempty"`
	VarData  *variationData `json:"item_variation_data,omitempty"`
}

type itemData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ProductType string          `json:"product_type"`
	Variations  []catalogObject `json:"variations"`
}

type variationData struct {
	ItemID              string   `json:"item_id"`
	Name                string   `json:"name"`
	PriceMoney          *money   `json:"price_money,omitempty"`
	ServiceDuration     *int64   `json:"service_duration,omitempty"`
	AvailableForBooking *bool    `json:"available_for_booking,omitempty"`
	TeamMemberIDs       []string `json:"team_member_ids,omitempty"`
}

type listCatalogResponse struct {
	Objects []catalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
}

type teamMember struct {
	ID           string `json:"id"`
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
	IsOwner      bool   `json:"is_owner"`
}

type searchTeamMembersRequest struct {
	Query struct {
		Filter struct {
			LocationIDs []string `json:"location_ids,omitempty"`
			Status      string   `json:"status,omitempty"`
		} `json:"filter"`
	} `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

type searchTeamMembersResponse struct {
	TeamMembers []teamMember `json:"team_members"`
	Cursor      string       `json:"cursor"`
}

type segment struct {
	DurationMinutes         *int   `json:"duration_minutes,omitempty"`
	TeamMemberID            string `json:"team_member_id"`
	ServiceVariationID      string `json:"service_variation_id"`
	ServiceVariationVersion int64  `json:"service_variation_version,omitempty"`
}

type availability struct {
	StartAt             *time.Time `json:"start_at,omitempty"`
	LocationID          string     `json:"location_id"`
	AppointmentSegments []segment  `json:"appointment_segments"`
}

type timeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type segmentFilter struct {
	ServiceVariationID string            `json:"service_variation_id"`
	TeamMemberIDFilter *teamMemberFilter `json:"team_member_id_filter,omitempty"`
}

type teamMemberFilter struct {
	Any []string `json:"any"`
}

type searchAvailabilityRequest struct {
	Query struct {
		Filter struct {
			StartAtRange   timeRange       `json:"start_at_range"`
			LocationID     string          `json:"location_id,omitempty"`
			SegmentFilters []segmentFilter `json:"segment_filters"`
		} `json:"filter"`
	} `json:"query"`
}

type searchAvailabilityResponse struct {
	Availabilities []availability `json:"availabilities"`
}

type customer struct {
	ID           string `json:"id"`
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
}

type searchCustomersRequest struct {
	Query struct {
		Filter struct {
			EmailAddress struct {
				Exact string `json:"exact"`
			} `json:"email_address"`
		} `json:"filter"`
	} `json:"query"`
	Limit int `json:"limit,omitempty"`
}

type searchCustomersResponse struct {
	Customers []customer `json:"customers"`
}

type createCustomerRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	GivenName      string `json:"given_name"`
	FamilyName     string `json:"family_name"`
	EmailAddress   string `json:"email_address"`
	PhoneNumber    string `json:"phone_number,omitempty"`
}

type customerResponse struct {
	Customer *customer `json:"customer"`
}

type bookingObject struct {
	ID                  string     `json:"id,omitempty"`
	Status              string     `json:"status,omitempty"`
	StartAt             string     `json:"start_at"`
	LocationID          string     `json:"location_id"`
	CustomerID          string     `json:"customer_id"`
	CustomerNote        string     `json:"customer_note,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	AppointmentSegments []segment  `json:"appointment_segments"`
}

type createBookingRequest struct {
	IdempotencyKey string        `json:"idempotency_key"`
	Booking        bookingObject `json:"booking"`
}

type bookingResponse struct {
	Booking *bookingObject `json:"booking"`
}
