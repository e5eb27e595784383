package booking

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/availability"
	"github.com/BruksfildServices01/barber-booking/internal/cart"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const CompletedBookingPrefix = "completed_booking"

const completedBookingTTL = 24 * time.Hour

func CompletedBookingKey(session string) string {
	return CompletedBookingPrefix + ":" + session
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckoutInput struct {
	SessionID string
	StartAt   time.Time
	Customer  domain.CustomerInput
	Note      string

	IdempotencyKey string
}

type CheckoutOutput struct {
	Booking   domain.Booking   `json:"booking"`
	Customer  domain.Customer  `json:"customer"`
	Completed CompletedBooking `json:"completed"`
}

// ======================================================
// USE CASE
// ======================================================

// Checkout turns the session's cart and a chosen time into a booking.
// The cart is only cleared once the provider accepted the booking.
type Checkout struct {
	carts     *cart.Manager
	tracker   *availability.Tracker
	customers *CreateCustomer
	bookings  *CreateBooking
	store     domain.KeyValueStore
	audit     audit.Recorder
	loc       *time.Location
	logger    *slog.Logger
}

func NewCheckout(
	carts *cart.Manager,
	tracker *availability.Tracker,
	customers *CreateCustomer,
	bookings *CreateBooking,
	store domain.KeyValueStore,
	audit audit.Recorder,
	loc *time.Location,
	logger *slog.Logger,
) *Checkout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checkout{
		carts:     carts,
		tracker:   tracker,
		customers: customers,
		bookings:  bookings,
		store:     store,
		audit:     audit,
		loc:       loc,
		logger:    logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (CheckoutOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Cart and time
	// --------------------------------------------------
	c := uc.carts.Get(ctx, in.SessionID)
	if c.Empty() {
		return CheckoutOutput{}, httperr.ErrBusiness("empty_cart")
	}
	if in.StartAt.IsZero() {
		return CheckoutOutput{}, httperr.ErrBusiness("missing_time")
	}
	barber, _ := c.Barber()

	// --------------------------------------------------
	// 2️⃣ Slot from the latest search
	// --------------------------------------------------
	res, ok := uc.tracker.Current(in.SessionID)
	if !ok {
		return CheckoutOutput{}, httperr.ErrBusiness("slot_unavailable")
	}
	if !c.IsSelected(res.ServiceVariationID) {
		return CheckoutOutput{}, httperr.ErrBusiness("stale_availability")
	}
	slot, ok := res.Availability.Find(in.StartAt, uc.loc)
	if !ok {
		return CheckoutOutput{}, httperr.ErrBusiness("slot_unavailable")
	}
	if !performedBy(slot, barber.ID) {
		return CheckoutOutput{}, httperr.ErrBusiness("stale_availability")
	}

	// --------------------------------------------------
	// 3️⃣ Customer
	// --------------------------------------------------
	cust, err := uc.customers.Execute(ctx, CreateCustomerInput{
		SessionID: in.SessionID,
		Customer:  in.Customer,
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	// --------------------------------------------------
	// 4️⃣ Booking
	// --------------------------------------------------
	b, err := uc.bookings.Execute(ctx, in.SessionID, domain.BookingInput{
		CustomerID:     cust.Customer.ID,
		StartAt:        slot.StartAt,
		LocationID:     slot.LocationID,
		Segments:       bookingSegments(slot, c, res.ServiceVariationID, barber),
		Note:           strings.TrimSpace(in.Note),
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	// --------------------------------------------------
	// 5️⃣ Completed booking record + cart
	// --------------------------------------------------
	done := newCompletedBooking(b, cust.Customer, c)
	uc.saveCompleted(ctx, in.SessionID, done)

	uc.carts.Clear(ctx, in.SessionID)
	uc.audit.Dispatch(audit.Event{
		SessionID: in.SessionID,
		Action:    audit.ActionCartCleared,
		Entity:    "cart",
		EntityID:  in.SessionID,
	})

	return CheckoutOutput{
		Booking:   b,
		Customer:  cust.Customer,
		Completed: done,
	}, nil
}

// bookingSegments keeps the slot's own segments and appends one segment
// per remaining cart service, performed back to back by the same barber.
func bookingSegments(
	slot domain.Slot,
	c *cart.Cart,
	searched string,
	barber domain.TeamMember,
) []domain.Segment {

	out := make([]domain.Segment, 0, len(slot.Segments)+len(c.Items()))
	out = append(out, slot.Segments...)

	for _, it := range c.Items() {
		if it.Service.ID == searched {
			continue
		}
		minutes := it.Service.DurationMinutes
		if minutes <= 0 {
			minutes = domain.DefaultDurationMinutes
		}
		out = append(out, domain.Segment{
			DurationMinutes:         minutes,
			TeamMemberID:            barber.ID,
			ServiceVariationID:      it.Service.ID,
			ServiceVariationVersion: it.Service.Version,
		})
	}
	return out
}

// performedBy reports whether every segment of slot belongs to memberID.
func performedBy(slot domain.Slot, memberID string) bool {
	if len(slot.Segments) == 0 {
		return false
	}
	for _, seg := range slot.Segments {
		if seg.TeamMemberID != memberID {
			return false
		}
	}
	return true
}

// saveCompleted never fails the checkout; the booking already exists.
func (uc *Checkout) saveCompleted(ctx context.Context, session string, done CompletedBooking) {
	data, err := json.Marshal(done)
	if err != nil {
		uc.logger.Error("completed booking encode failed", "session", session, "err", err)
		return
	}
	if err := uc.store.Set(ctx, CompletedBookingKey(session), data, completedBookingTTL); err != nil {
		uc.logger.Warn("completed booking persist failed",
			"session", session,
			"booking_id", done.BookingID,
			"err", err,
		)
	}
}
