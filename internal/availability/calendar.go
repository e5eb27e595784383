package availability

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// AvailableDates lists, in ascending order, the dates holding at least one slot.
func AvailableDates(m booking.AvailabilityMap) []string {
	out := make([]string, 0, len(m))
	for date, slots := range m {
		if len(slots) > 0 {
			out = append(out, date)
		}
	}
	sort.Strings(out)
	return out
}

// Calendar decides which dates the date picker enables.
type Calendar struct {
	loc       *time.Location
	available map[string]struct{}
}

func NewCalendar(m booking.AvailabilityMap, loc *time.Location) Calendar {
	c := Calendar{loc: loc, available: map[string]struct{}{}}
	for _, d := range AvailableDates(m) {
		c.available[d] = struct{}{}
	}
	return c
}

// IsSelectable is false for days before today's business date and for days
// without availability.
func (c Calendar) IsSelectable(date string, now time.Time) bool {
	if date < timezone.DateKey(now, c.loc) {
		return false
	}
	_, ok := c.available[date]
	return ok
}

func (c Calendar) SelectableDates(now time.Time) []string {
	out := make([]string, 0, len(c.available))
	for d := range c.available {
		if c.IsSelectable(d, now) {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// FirstSelectable is the date the picker opens on.
func (c Calendar) FirstSelectable(now time.Time) (string, bool) {
	dates := c.SelectableDates(now)
	if len(dates) == 0 {
		return "", false
	}
	return dates[0], true
}
