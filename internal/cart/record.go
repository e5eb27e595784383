package cart

import (
	"encoding/json"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// ===============================
// Persisted cart record
// ===============================

// record is the stored form: {items: [{service, barber}], selectedBarber}.
type record struct {
	Items          []itemRecord        `json:"items"`
	SelectedBarber *booking.TeamMember `json:"selectedBarber"`
}

type itemRecord struct {
	Service serviceRecord      `json:"service"`
	Barber  booking.TeamMember `json:"barber"`
}

// serviceRecord carries the raw duration and its unit so that records
// written by older clients, which stored only "duration", still load.
type serviceRecord struct {
	booking.Service
	Duration     *int64 `json:"duration,omitempty"`
	DurationUnit string `json:"duration_unit,omitempty"`
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	rec := record{
		Items:          make([]itemRecord, 0, len(c.items)),
		SelectedBarber: c.barber,
	}
	for _, it := range c.items {
		rec.Items = append(rec.Items, itemRecord{
			Service: serviceRecord{
				Service:      it.Service,
				DurationUnit: string(booking.UnitMinutes),
			},
			Barber: it.Barber,
		})
	}
	return json.Marshal(rec)
}

// UnmarshalJSON loads a stored record and repairs it so the cart
// invariants hold: duplicate services and items from a barber other than
// the selected one are dropped.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode cart record: %w", err)
	}

	c.Clear()

	if rec.SelectedBarber != nil {
		b := *rec.SelectedBarber
		c.barber = &b
	}

	for _, ir := range rec.Items {
		svc := ir.Service.normalized()
		if svc.ID == "" || ir.Barber.ID == "" {
			continue
		}
		if c.barber == nil {
			b := ir.Barber
			c.barber = &b
		}
		if ir.Barber.ID != c.barber.ID || c.IsSelected(svc.ID) {
			continue
		}
		c.items = append(c.items, Item{Service: svc, Barber: ir.Barber})
	}

	if len(c.items) == 0 {
		c.barber = nil
	}
	return nil
}

func (r serviceRecord) normalized() booking.Service {
	svc := r.Service
	if svc.DurationMinutes > 0 || r.Duration == nil {
		return svc
	}

	unit, ok := booking.ParseDurationUnit(r.DurationUnit)
	if !ok {
		unit = booking.InferDurationUnit(*r.Duration)
	}
	svc.DurationMinutes = booking.NormalizeMinutes(*r.Duration, unit)
	return svc
}
