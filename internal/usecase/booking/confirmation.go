package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/cart"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type BookedService struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PriceAmount     int64  `json:"price_amount"`
	DurationMinutes int    `json:"duration_minutes"`
}

// CompletedBooking is what the confirmation page shows once, right after
// checkout.
type CompletedBooking struct {
	BookingID     string            `json:"bookingId"`
	Status        string            `json:"status"`
	StartAt       time.Time         `json:"startAt"`
	LocationID    string            `json:"locationId"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	Services      []BookedService   `json:"services"`
	Barber        domain.TeamMember `json:"barber"`
	TotalPrice    int64             `json:"totalPrice"`
	Currency      string            `json:"currency"`
	TotalDuration int               `json:"totalDuration"`
}

func (b CompletedBooking) EndAt() time.Time {
	return b.StartAt.Add(time.Duration(b.TotalDuration) * time.Minute)
}

func (b CompletedBooking) ServiceNames() []string {
	out := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		out = append(out, s.Name)
	}
	return out
}

func newCompletedBooking(b domain.Booking, cust domain.Customer, c *cart.Cart) CompletedBooking {
	barber, _ := c.Barber()

	out := CompletedBooking{
		BookingID:     b.ID,
		Status:        b.Status,
		StartAt:       b.StartAt,
		LocationID:    b.LocationID,
		CustomerName:  fmt.Sprintf("%s %s", cust.GivenName, cust.FamilyName),
		CustomerEmail: cust.Email,
		Barber:        barber,
		TotalPrice:    c.TotalPrice(),
		Currency:      c.Currency(),
		TotalDuration: c.TotalDuration(),
	}
	for _, it := range c.Items() {
		out.Services = append(out.Services, BookedService{
			ID:              it.Service.ID,
			Name:            it.Service.Name,
			PriceAmount:     it.Service.PriceFor(it.Barber.ID),
			DurationMinutes: it.Service.DurationMinutes,
		})
	}
	return out
}

// GetConfirmation hands out the session's completed booking exactly once.
type GetConfirmation struct {
	store domain.KeyValueStore
}

func NewGetConfirmation(store domain.KeyValueStore) *GetConfirmation {
	return &GetConfirmation{store: store}
}

// Execute returns domain.ErrNotFound when there is nothing to confirm.
func (uc *GetConfirmation) Execute(ctx context.Context, sessionID string) (CompletedBooking, error) {
	data, err := uc.store.Take(ctx, CompletedBookingKey(sessionID))
	if err != nil {
		return CompletedBooking{}, err
	}

	var out CompletedBooking
	if err := json.Unmarshal(data, &out); err != nil {
		return CompletedBooking{}, errors.Join(domain.ErrNotFound, fmt.Errorf("decode completed booking: %w", err))
	}
	return out, nil
}
