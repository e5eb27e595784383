package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// CreateBooking books an already resolved customer into a slot.
type CreateBooking struct {
	provider   domain.Provider
	audit      audit.Recorder
	locationID string
}

func NewCreateBooking(
	provider domain.Provider,
	audit audit.Recorder,
	locationID string,
) *CreateBooking {
	return &CreateBooking{
		provider:   provider,
		audit:      audit,
		locationID: locationID,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	sessionID string,
	in domain.BookingInput,
) (domain.Booking, error) {

	if strings.TrimSpace(in.CustomerID) == "" {
		return domain.Booking{}, httperr.ErrBusiness("missing_customer")
	}
	if in.StartAt.IsZero() {
		return domain.Booking{}, httperr.ErrBusiness("missing_time")
	}
	if len(in.Segments) == 0 {
		return domain.Booking{}, httperr.ErrBusiness("missing_segments")
	}
	for _, seg := range in.Segments {
		if seg.ServiceVariationID == "" || seg.TeamMemberID == "" {
			return domain.Booking{}, httperr.ErrBusiness("invalid_segment")
		}
	}
	if in.LocationID == "" {
		in.LocationID = uc.locationID
	}

	b, err := uc.provider.CreateBooking(ctx, in)
	if err != nil {
		uc.audit.Dispatch(audit.Event{
			SessionID: sessionID,
			Action:    audit.ActionBookingFailed,
			Entity:    "booking",
			Metadata:  map[string]any{"error": err.Error()},
		})
		return domain.Booking{}, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Action:    audit.ActionBookingCreated,
		Entity:    "booking",
		EntityID:  b.ID,
		Metadata: map[string]any{
			"start_at":    b.StartAt,
			"customer_id": b.CustomerID,
		},
	})

	return b, nil
}
