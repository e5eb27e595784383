package square

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// CreateBooking books the slot. in.IdempotencyKey is sent as is so that a
// retry of the same attempt cannot double book; an empty key gets a fresh one.
func (c *Client) CreateBooking(
	ctx context.Context,
	in booking.BookingInput,
) (booking.Booking, error) {

	key := in.IdempotencyKey
	if key == "" {
		key = c.newKey()
	}

	locationID := in.LocationID
	if locationID == "" {
		locationID = c.cfg.LocationID
	}

	req := createBookingRequest{
		IdempotencyKey: key,
		Booking: bookingObject{
			StartAt:             in.StartAt.UTC().Format(time.RFC3339),
			LocationID:          locationID,
			CustomerID:          in.CustomerID,
			CustomerNote:        in.Note,
			AppointmentSegments: segmentsToWire(in.Segments),
		},
	}

	var resp bookingResponse
	if err := c.do(ctx, "create booking", http.MethodPost, "/v2/bookings", nil, req, &resp); err != nil {
		return booking.Booking{}, err
	}
	if resp.Booking == nil || resp.Booking.ID == "" {
		return booking.Booking{}, &booking.ProviderError{
			Op:  "create booking",
			Err: errors.New("response carried no booking"),
		}
	}

	return bookingFromWire(*resp.Booking)
}
