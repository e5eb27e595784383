package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/availability"
	"github.com/BruksfildServices01/barber-booking/internal/cart"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SearchAvailabilityInput struct {
	SessionID string

	// ServiceVariationID defaults to the first service in the cart.
	ServiceVariationID string

	// Zero values default to now and now plus the configured horizon.
	StartAt time.Time
	EndAt   time.Time
}

type SearchAvailabilityOutput struct {
	Result availability.Result

	// Current is false when a newer search for the same session started
	// before this one finished. The result was not published.
	Current bool
}

// ======================================================
// USE CASE
// ======================================================

type SearchAvailability struct {
	fetcher *availability.Fetcher
	tracker *availability.Tracker
	carts   *cart.Manager
	horizon time.Duration
	now     func() time.Time
}

func NewSearchAvailability(
	fetcher *availability.Fetcher,
	tracker *availability.Tracker,
	carts *cart.Manager,
	horizonDays int,
) *SearchAvailability {
	if horizonDays <= 0 {
		horizonDays = 60
	}
	return &SearchAvailability{
		fetcher: fetcher,
		tracker: tracker,
		carts:   carts,
		horizon: time.Duration(horizonDays) * 24 * time.Hour,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SearchAvailability) Execute(
	ctx context.Context,
	in SearchAvailabilityInput,
) (SearchAvailabilityOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Service and barber from the cart
	// --------------------------------------------------
	c := uc.carts.Get(ctx, in.SessionID)

	serviceID := strings.TrimSpace(in.ServiceVariationID)
	if serviceID == "" {
		items := c.Items()
		if len(items) == 0 {
			return SearchAvailabilityOutput{}, httperr.ErrBusiness("missing_service")
		}
		serviceID = items[0].Service.ID
	}

	var members []string
	if barber, ok := c.Barber(); ok {
		members = []string{barber.ID}
	}

	// --------------------------------------------------
	// 2️⃣ Range
	// --------------------------------------------------
	now := uc.now()
	start, end := in.StartAt, in.EndAt
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = start.Add(uc.horizon)
	}

	// --------------------------------------------------
	// 3️⃣ Fetch (latest search wins)
	// --------------------------------------------------
	gen := uc.tracker.Begin(in.SessionID)

	m, err := uc.fetcher.Fetch(ctx, serviceID, start, end, members...)
	if err != nil {
		uc.tracker.Fail(in.SessionID, gen)
		return SearchAvailabilityOutput{}, searchError(err)
	}

	res := availability.Result{
		ServiceVariationID: serviceID,
		Availability:       m,
		FetchedAt:          now,
	}
	if m == nil {
		res.Availability = domain.AvailabilityMap{}
	}

	current := uc.tracker.Publish(in.SessionID, gen, res)
	return SearchAvailabilityOutput{Result: res, Current: current}, nil
}

func searchError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingService):
		return httperr.ErrBusiness("missing_service")
	case errors.Is(err, domain.ErrInvalidRange):
		return httperr.ErrBusiness("invalid_range")
	}
	return err
}
