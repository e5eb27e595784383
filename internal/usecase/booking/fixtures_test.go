package booking

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/availability"
	"github.com/BruksfildServices01/barber-booking/internal/cart"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// Fake provider
// ======================================================

// fakeProvider offers 10:00 and 14:00 local on every day a query covers,
// performed by the first filtered member or "alice".
type fakeProvider struct {
	loc *time.Location

	mu        sync.Mutex
	queries   []domain.AvailabilityQuery
	customers []domain.CustomerInput
	bookings  []domain.BookingInput

	searchErr   error
	customerErr error
	bookingErr  error
}

func (p *fakeProvider) SearchAvailability(_ context.Context, q domain.AvailabilityQuery) ([]domain.Slot, error) {
	p.mu.Lock()
	p.queries = append(p.queries, q)
	err := p.searchErr
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}

	member := "alice"
	if len(q.TeamMemberIDs) > 0 {
		member = q.TeamMemberIDs[0]
	}

	var out []domain.Slot
	s := q.StartAt.In(p.loc)
	for day := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, p.loc); day.Before(q.EndAt); day = day.AddDate(0, 0, 1) {
		for _, h := range []int{10, 14} {
			at := day.Add(time.Duration(h) * time.Hour)
			if at.Before(q.StartAt) || !at.Before(q.EndAt) {
				continue
			}
			out = append(out, domain.Slot{
				StartAt:    at,
				LocationID: q.LocationID,
				Segments: []domain.Segment{{
					DurationMinutes:         30,
					TeamMemberID:            member,
					ServiceVariationID:      q.ServiceVariationID,
					ServiceVariationVersion: 7,
				}},
			})
		}
	}
	return out, nil
}

func (p *fakeProvider) FindOrCreateCustomer(_ context.Context, in domain.CustomerInput) (domain.Customer, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.customers = append(p.customers, in)
	if p.customerErr != nil {
		return domain.Customer{}, false, p.customerErr
	}
	return domain.Customer{
		ID:         "CUST1",
		GivenName:  in.GivenName,
		FamilyName: in.FamilyName,
		Email:      in.Email,
		Phone:      in.Phone,
	}, true, nil
}

func (p *fakeProvider) CreateBooking(_ context.Context, in domain.BookingInput) (domain.Booking, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bookings = append(p.bookings, in)
	if p.bookingErr != nil {
		return domain.Booking{}, p.bookingErr
	}
	return domain.Booking{
		ID:         "BK1",
		Status:     "ACCEPTED",
		StartAt:    in.StartAt,
		LocationID: in.LocationID,
		CustomerID: in.CustomerID,
		Segments:   in.Segments,
	}, nil
}

func (p *fakeProvider) ListServices(context.Context) ([]domain.Service, error) { return nil, nil }

func (p *fakeProvider) SearchTeamMembers(context.Context) ([]domain.TeamMember, error) {
	return nil, nil
}

// ======================================================
// Audit recorder
// ======================================================

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAudit) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// ======================================================
// Catalog fixtures
// ======================================================

var (
	alice = domain.TeamMember{ID: "alice", GivenName: "Alice", FamilyName: "Smith", Status: "ACTIVE"}
	bob   = domain.TeamMember{ID: "bob", GivenName: "Bob", FamilyName: "Jones", Status: "ACTIVE"}
)

func haircut() domain.Service {
	override := int64(5000)
	return domain.Service{
		ID:              "haircut",
		Name:            "Haircut",
		PriceAmount:     4000,
		Currency:        "AUD",
		DurationMinutes: 30,
		Version:         7,
		Members: []domain.MemberAssignment{
			{TeamMemberID: "alice", PriceOverride: &override},
			{TeamMemberID: "bob"},
		},
	}
}

func beard() domain.Service {
	return domain.Service{
		ID:              "beard",
		Name:            "Beard Trim",
		PriceAmount:     2500,
		Currency:        "AUD",
		DurationMinutes: 15,
		Version:         3,
		Members: []domain.MemberAssignment{
			{TeamMemberID: "alice"},
			{TeamMemberID: "bob"},
		},
	}
}

func validCustomer() domain.CustomerInput {
	return domain.CustomerInput{
		GivenName:  "Jane",
		FamilyName: "Doe",
		Email:      "Jane@Example.com",
		Phone:      "+61 400 000 000",
	}
}

// ======================================================
// Harness
// ======================================================

type harness struct {
	loc      *time.Location
	now      time.Time
	provider *fakeProvider
	store    *repository.KVMemoryRepository
	carts    *cart.Manager
	tracker  *availability.Tracker
	audit    *recordingAudit

	search   *SearchAvailability
	dates    *ListAvailableDates
	times    *TimesForDate
	checkout *Checkout
	confirm  *GetConfirmation
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	h := &harness{
		loc:      loc,
		now:      time.Date(2024, 6, 1, 8, 0, 0, 0, loc),
		provider: &fakeProvider{loc: loc},
		store:    repository.NewKVMemoryRepository(),
		tracker:  availability.NewTracker(),
		audit:    &recordingAudit{},
	}
	logger := discardLogger()

	h.carts = cart.NewManager(h.store, time.Hour, logger)

	fetcher := availability.NewFetcher(h.provider, availability.FetcherConfig{
		Location:    loc,
		LocationID:  "L1",
		WindowDays:  31,
		Concurrency: 2,
	}, logger)

	h.search = NewSearchAvailability(fetcher, h.tracker, h.carts, 60)
	h.search.now = func() time.Time { return h.now }

	h.dates = NewListAvailableDates(h.tracker, loc)
	h.dates.now = func() time.Time { return h.now }

	h.times = NewTimesForDate(h.tracker, loc)
	h.times.now = func() time.Time { return h.now }

	customers := NewCreateCustomer(h.provider, h.audit, validators.CustomerOptions{})
	bookings := NewCreateBooking(h.provider, h.audit, "L1")

	h.checkout = NewCheckout(h.carts, h.tracker, customers, bookings, h.store, h.audit, loc, logger)
	h.confirm = NewGetConfirmation(h.store)

	return h
}

func (h *harness) addToCart(t *testing.T, session string, svc domain.Service, barber domain.TeamMember) {
	t.Helper()
	if _, err := h.carts.Add(context.Background(), session, svc, barber); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}

func (h *harness) searchFor(t *testing.T, session string) SearchAvailabilityOutput {
	t.Helper()
	out, err := h.search.Execute(context.Background(), SearchAvailabilityInput{SessionID: session})
	if err != nil {
		t.Fatalf("search availability: %v", err)
	}
	return out
}
