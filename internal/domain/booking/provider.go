package booking

import (
	"context"
	"time"
)

// ===============================
// Customer / Booking
// ===============================

type Customer struct {
	ID         string `json:"id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email_address"`
	Phone      string `json:"phone_number"`
}

type CustomerInput struct {
	GivenName  string
	FamilyName string
	Email      string
	Phone      string
}

type Booking struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	StartAt    time.Time `json:"start_at"`
	LocationID string    `json:"location_id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	Segments   []Segment `json:"appointment_segments"`
}

type BookingInput struct {
	CustomerID string
	StartAt    time.Time
	LocationID string
	Segments   []Segment
	Note       string

	// IdempotencyKey identifies one logical booking attempt. Left empty,
	// the provider client generates a fresh one.
	IdempotencyKey string
}

type AvailabilityQuery struct {
	ServiceVariationID string
	StartAt            time.Time
	EndAt              time.Time
	LocationID         string

	// TeamMemberIDs narrows the search to these members. Empty means any.
	TeamMemberIDs []string
}

// ===============================
// External scheduling provider
// ===============================

// Provider is the scheduling, customer and catalog capability the booking
// flow depends on. Implementations map provider payloads into the domain
// types above before returning.
type Provider interface {
	ListServices(ctx context.Context) ([]Service, error)

	SearchTeamMembers(ctx context.Context) ([]TeamMember, error)

	SearchAvailability(
		ctx context.Context,
		q AvailabilityQuery,
	) ([]Slot, error)

	// FindOrCreateCustomer returns the customer and whether it was created.
	FindOrCreateCustomer(
		ctx context.Context,
		in CustomerInput,
	) (Customer, bool, error)

	CreateBooking(
		ctx context.Context,
		in BookingInput,
	) (Booking, error)
}
