package cart

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type Item struct {
	Service booking.Service    `json:"service"`
	Barber  booking.TeamMember `json:"barber"`
}

// Cart holds the services picked for one booking. Every item shares the
// same barber, and the barber is unset exactly when the cart is empty.
// The zero value is an empty cart.
type Cart struct {
	items  []Item
	barber *booking.TeamMember
}

func New() *Cart {
	return &Cart{}
}

// Add puts service with barber in the cart. Adding a service that is
// already present succeeds without changes. A barber other than the
// locked one returns booking.ErrBarberMismatch and leaves the cart as it was.
func (c *Cart) Add(service booking.Service, barber booking.TeamMember) error {
	if c.barber != nil && c.barber.ID != barber.ID {
		return booking.ErrBarberMismatch
	}
	if c.IsSelected(service.ID) {
		return nil
	}
	if c.barber == nil {
		b := barber
		c.barber = &b
	}
	c.items = append(c.items, Item{Service: service, Barber: barber})
	return nil
}

// Remove drops the item for serviceID. Removing the last item unlocks the barber.
func (c *Cart) Remove(serviceID string) bool {
	for i, it := range c.items {
		if it.Service.ID != serviceID {
			continue
		}
		c.items = append(c.items[:i:i], c.items[i+1:]...)
		if len(c.items) == 0 {
			c.Clear()
		}
		return true
	}
	return false
}

func (c *Cart) Clear() {
	c.items = nil
	c.barber = nil
}

func (c *Cart) IsSelected(serviceID string) bool {
	for _, it := range c.items {
		if it.Service.ID == serviceID {
			return true
		}
	}
	return false
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Barber() (booking.TeamMember, bool) {
	if c.barber == nil {
		return booking.TeamMember{}, false
	}
	return *c.barber, true
}

// TotalPrice sums the effective price of each item for its barber.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, it := range c.items {
		total += it.Service.PriceFor(it.Barber.ID)
	}
	return total
}

// TotalDuration sums item durations in minutes.
func (c *Cart) TotalDuration() int {
	total := 0
	for _, it := range c.items {
		total += it.Service.DurationMinutes
	}
	return total
}

func (c *Cart) Currency() string {
	for _, it := range c.items {
		if it.Service.Currency != "" {
			return it.Service.Currency
		}
	}
	return ""
}

func (c *Cart) Clone() *Cart {
	out := &Cart{items: c.Items()}
	if c.barber != nil {
		b := *c.barber
		out.barber = &b
	}
	return out
}
