package square

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const defaultCurrency = "AUD"

// servicesFromItem expands a catalog ITEM into its bookable variations.
// Square reports service_duration in milliseconds.
func servicesFromItem(obj catalogObject) []booking.Service {
	if obj.Type != "ITEM" || obj.ItemData == nil {
		return nil
	}
	item := obj.ItemData
	if item.ProductType != "" && item.ProductType != productTypeAppointmentsService {
		return nil
	}

	var out []booking.Service
	for _, v := range item.Variations {
		vd := v.VarData
		if v.ID == "" || vd == nil {
			continue
		}
		if vd.AvailableForBooking != nil && !*vd.AvailableForBooking {
			continue
		}

		svc := booking.Service{
			ID:              v.ID,
			CatalogItemID:   obj.ID,
			Name:            item.Name,
			VariationName:   vd.Name,
			Description:     item.Description,
			Currency:        defaultCurrency,
			DurationMinutes: booking.DefaultDurationMinutes,
			Version:         v.Version,
		}
		if vd.PriceMoney != nil {
			svc.PriceAmount = vd.PriceMoney.Amount
			if vd.PriceMoney.Currency != "" {
				svc.Currency = vd.PriceMoney.Currency
			}
		}
		if vd.ServiceDuration != nil {
			if m := booking.NormalizeMinutes(*vd.ServiceDuration, booking.UnitMilliseconds); m > 0 {
				svc.DurationMinutes = m
			}
		}
		for _, id := range vd.TeamMemberIDs {
			svc.Members = append(svc.Members, booking.MemberAssignment{TeamMemberID: id})
		}

		out = append(out, svc)
	}
	return out
}

func teamMemberFromWire(m teamMember) (booking.TeamMember, bool) {
	if m.ID == "" {
		return booking.TeamMember{}, false
	}
	status := m.Status
	if status == "" {
		status = booking.TeamMemberStatusActive
	}
	return booking.TeamMember{
		ID:         m.ID,
		GivenName:  m.GivenName,
		FamilyName: m.FamilyName,
		Email:      m.EmailAddress,
		Status:     status,
		IsOwner:    m.IsOwner,
	}, true
}

func slotFromWire(a availability) (booking.Slot, bool) {
	if a.StartAt == nil || a.StartAt.IsZero() {
		return booking.Slot{}, false
	}
	return booking.Slot{
		StartAt:    *a.StartAt,
		LocationID: a.LocationID,
		Segments:   segmentsFromWire(a.AppointmentSegments),
	}, true
}

func segmentsFromWire(in []segment) []booking.Segment {
	out := make([]booking.Segment, 0, len(in))
	for _, s := range in {
		d := booking.DefaultDurationMinutes
		if s.DurationMinutes != nil && *s.DurationMinutes > 0 {
			d = *s.DurationMinutes
		}
		out = append(out, booking.Segment{
			DurationMinutes:         d,
			TeamMemberID:            s.TeamMemberID,
			ServiceVariationID:      s.ServiceVariationID,
			ServiceVariationVersion: s.ServiceVariationVersion,
		})
	}
	return out
}

func segmentsToWire(in []booking.Segment) []segment {
	out := make([]segment, 0, len(in))
	for _, s := range in {
		d := s.DurationMinutes
		if d <= 0 {
			d = booking.DefaultDurationMinutes
		}
		out = append(out, segment{
			DurationMinutes:         &d,
			TeamMemberID:            s.TeamMemberID,
			ServiceVariationID:      s.ServiceVariationID,
			ServiceVariationVersion: s.ServiceVariationVersion,
		})
	}
	return out
}

func customerFromWire(c customer) booking.Customer {
	return booking.Customer{
		ID:         c.ID,
		GivenName:  c.GivenName,
		FamilyName: c.FamilyName,
		Email:      c.EmailAddress,
		Phone:      c.PhoneNumber,
	}
}

func bookingFromWire(b bookingObject) (booking.Booking, error) {
	startAt, err := time.Parse(time.RFC3339, b.StartAt)
	if err != nil {
		return booking.Booking{}, &booking.ProviderError{
			Op:  "create booking",
			Err: fmt.Errorf("booking start_at %q: %w", b.StartAt, err),
		}
	}

	out := booking.Booking{
		ID:         b.ID,
		Status:     b.Status,
		StartAt:    startAt,
		LocationID: b.LocationID,
		CustomerID: b.CustomerID,
		Segments:   segmentsFromWire(b.AppointmentSegments),
	}
	if b.CreatedAt != nil {
		out.CreatedAt = *b.CreatedAt
	}
	return out, nil
}
