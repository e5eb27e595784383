package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cart"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestCheckout_BooksCartAndStoresConfirmation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.addToCart(t, "s1", haircut(), alice)
	h.addToCart(t, "s1", beard(), alice)
	h.searchFor(t, "s1")

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, h.loc)

	out, err := h.checkout.Execute(ctx, CheckoutInput{
		SessionID:      "s1",
		StartAt:        start.UTC(),
		Customer:       validCustomer(),
		Note:           "  first visit ",
		IdempotencyKey: "idem-1",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if out.Booking.ID != "BK1" {
		t.Fatalf("unexpected booking %+v", out.Booking)
	}

	// customer details reach the provider validated
	if got := h.provider.customers[0].Email; got != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %q", got)
	}

	in := h.provider.bookings[0]
	if in.CustomerID != "CUST1" || in.LocationID != "L1" || in.Note != "first visit" || in.IdempotencyKey != "idem-1" {
		t.Fatalf("unexpected booking input %+v", in)
	}
	if !in.StartAt.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, in.StartAt)
	}
	if len(in.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", in.Segments)
	}
	if in.Segments[0].ServiceVariationID != "haircut" || in.Segments[0].ServiceVariationVersion != 7 {
		t.Fatalf("first segment should come from the slot, got %+v", in.Segments[0])
	}
	second := in.Segments[1]
	if second.ServiceVariationID != "beard" || second.TeamMemberID != "alice" || second.DurationMinutes != 15 || second.ServiceVariationVersion != 3 {
		t.Fatalf("unexpected second segment %+v", second)
	}

	if c := h.carts.Get(ctx, "s1"); !c.Empty() {
		t.Fatal("cart must be cleared after a booking")
	}

	done, err := h.confirm.Execute(ctx, "s1")
	if err != nil {
		t.Fatalf("confirmation: %v", err)
	}
	if done.BookingID != "BK1" || done.CustomerName != "Jane Doe" {
		t.Fatalf("unexpected confirmation %+v", done)
	}
	if done.TotalPrice != 7500 || done.TotalDuration != 45 || done.Currency != "AUD" {
		t.Fatalf("unexpected totals %+v", done)
	}
	if done.Barber.ID != "alice" || len(done.Services) != 2 {
		t.Fatalf("unexpected services %+v", done)
	}

	if _, err := h.confirm.Execute(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("confirmation must be handed out once, got %v", err)
	}

	want := []string{audit.ActionCustomerResolved, audit.ActionBookingCreated, audit.ActionCartCleared}
	if got := h.audit.actions(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected audit %v, got %v", want, got)
	}
}

func TestCheckout_RejectsBeforeCallingProvider(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, h.loc)

	_, err := h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", StartAt: start, Customer: validCustomer()})
	if !httperr.IsBusiness(err, "empty_cart") {
		t.Fatalf("expected empty_cart, got %v", err)
	}

	h.addToCart(t, "s1", haircut(), alice)

	_, err = h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", Customer: validCustomer()})
	if !httperr.IsBusiness(err, "missing_time") {
		t.Fatalf("expected missing_time, got %v", err)
	}

	_, err = h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", StartAt: start, Customer: validCustomer()})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable without a search, got %v", err)
	}

	h.searchFor(t, "s1")

	_, err = h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", StartAt: start.Add(time.Hour), Customer: validCustomer()})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable for an unknown time, got %v", err)
	}

	bad := validCustomer()
	bad.Email = ""
	_, err = h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", StartAt: start, Customer: bad})
	if !httperr.IsBusiness(err, "missing_email") {
		t.Fatalf("expected missing_email, got %v", err)
	}

	if len(h.provider.customers) != 0 || len(h.provider.bookings) != 0 {
		t.Fatal("provider must not be called for rejected checkouts")
	}
}

func TestCheckout_StaleAvailability(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.addToCart(t, "s1", haircut(), alice)
	h.searchFor(t, "s1")

	h.carts.Remove(ctx, "s1", "haircut")
	h.addToCart(t, "s1", beard(), bob)

	_, err := h.checkout.Execute(ctx, CheckoutInput{
		SessionID: "s1",
		StartAt:   time.Date(2024, 6, 3, 10, 0, 0, 0, h.loc),
		Customer:  validCustomer(),
	})
	if !httperr.IsBusiness(err, "stale_availability") {
		t.Fatalf("expected stale_availability, got %v", err)
	}
}

func TestCheckout_SlotForAnotherBarberIsStale(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// searched before picking a barber; slots come back for alice
	_, err := h.search.Execute(ctx, SearchAvailabilityInput{
		SessionID:          "s1",
		ServiceVariationID: "haircut",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	h.addToCart(t, "s1", haircut(), bob)
	h.addToCart(t, "s1", beard(), bob)

	_, err = h.checkout.Execute(ctx, CheckoutInput{
		SessionID: "s1",
		StartAt:   time.Date(2024, 6, 3, 10, 0, 0, 0, h.loc),
		Customer:  validCustomer(),
	})
	if !httperr.IsBusiness(err, "stale_availability") {
		t.Fatalf("expected stale_availability, got %v", err)
	}
	if len(h.provider.bookings) != 0 {
		t.Fatalf("booking with mixed barbers reached the provider: %+v", h.provider.bookings)
	}
	if h.carts.Get(ctx, "s1").Empty() {
		t.Fatal("cart must be kept when the slot is rejected")
	}
}

func TestCheckout_SwitchBarberAfterSearch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, h.loc)

	h.addToCart(t, "s1", haircut(), alice)
	h.searchFor(t, "s1")

	if _, err := h.carts.SwitchBarber(ctx, "s1", haircut(), bob); err != nil {
		t.Fatalf("switch barber: %v", err)
	}

	_, err := h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", StartAt: start, Customer: validCustomer()})
	if !httperr.IsBusiness(err, "stale_availability") {
		t.Fatalf("expected stale_availability after switching barber, got %v", err)
	}

	h.searchFor(t, "s1")
	out, err := h.checkout.Execute(ctx, CheckoutInput{SessionID: "s1", StartAt: start, Customer: validCustomer()})
	if err != nil {
		t.Fatalf("checkout after new search: %v", err)
	}
	for i, seg := range h.provider.bookings[0].Segments {
		if seg.TeamMemberID != "bob" {
			t.Fatalf("segment %d booked with %q, want bob", i, seg.TeamMemberID)
		}
	}
	if out.Completed.Barber.ID != "bob" {
		t.Fatalf("unexpected confirmation barber %+v", out.Completed.Barber)
	}
}

func TestCheckout_ProviderFailureKeepsCart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.addToCart(t, "s1", haircut(), alice)
	h.searchFor(t, "s1")

	h.provider.bookingErr = &domain.ProviderError{
		Op:         "create booking",
		StatusCode: 400,
		Detail:     "That time is no longer available",
	}

	_, err := h.checkout.Execute(ctx, CheckoutInput{
		SessionID: "s1",
		StartAt:   time.Date(2024, 6, 3, 14, 0, 0, 0, h.loc),
		Customer:  validCustomer(),
	})

	pe, ok := domain.AsProviderError(err)
	if !ok || pe.UserMessage("") != "That time is no longer available" {
		t.Fatalf("expected provider error with detail, got %v", err)
	}

	if c := h.carts.Get(ctx, "s1"); c.Empty() {
		t.Fatal("cart must survive a failed booking")
	}
	if _, err := h.store.Get(ctx, CompletedBookingKey("s1")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("no confirmation expected, got %v", err)
	}

	got := h.audit.actions()
	if got[len(got)-1] != audit.ActionBookingFailed {
		t.Fatalf("expected booking_failed audit, got %v", got)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	p := &fakeProvider{loc: time.UTC}
	uc := NewCreateBooking(p, audit.Discard{}, "L1")
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	seg := []domain.Segment{{DurationMinutes: 30, TeamMemberID: "alice", ServiceVariationID: "haircut"}}

	cases := []struct {
		name string
		in   domain.BookingInput
		code string
	}{
		{"customer", domain.BookingInput{StartAt: start, Segments: seg}, "missing_customer"},
		{"time", domain.BookingInput{CustomerID: "C", Segments: seg}, "missing_time"},
		{"segments", domain.BookingInput{CustomerID: "C", StartAt: start}, "missing_segments"},
		{"segment member", domain.BookingInput{CustomerID: "C", StartAt: start, Segments: []domain.Segment{{ServiceVariationID: "haircut"}}}, "invalid_segment"},
	}
	for _, tc := range cases {
		if _, err := uc.Execute(ctx, "s1", tc.in); !httperr.IsBusiness(err, tc.code) {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}

	b, err := uc.Execute(ctx, "s1", domain.BookingInput{CustomerID: "C", StartAt: start, Segments: seg})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.LocationID != "L1" {
		t.Fatalf("expected default location L1, got %q", b.LocationID)
	}
}

func TestCalendarFile(t *testing.T) {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	c := cart.New()
	if err := c.Add(haircut(), alice); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(beard(), alice); err != nil {
		t.Fatal(err)
	}
	done := newCompletedBooking(
		domain.Booking{ID: "BK1", Status: "ACCEPTED", StartAt: start, LocationID: "L1"},
		domain.Customer{GivenName: "Jane", FamilyName: "Doe"},
		c,
	)

	out := CalendarFile(done, "Fade Street Barbers", start)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse generated calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]

	if p := ev.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "Haircut, Beard Trim with Alice Smith" {
		t.Fatalf("unexpected summary %+v", p)
	}
	if p := ev.GetProperty(ical.ComponentPropertyLocation); p == nil || p.Value != "Fade Street Barbers" {
		t.Fatalf("unexpected location %+v", p)
	}

	gotStart, err := ev.GetStartAt()
	if err != nil || !gotStart.Equal(start) {
		t.Fatalf("unexpected start %v %v", gotStart, err)
	}
	gotEnd, err := ev.GetEndAt()
	if err != nil || !gotEnd.Equal(start.Add(45*time.Minute)) {
		t.Fatalf("unexpected end %v %v", gotEnd, err)
	}
}
