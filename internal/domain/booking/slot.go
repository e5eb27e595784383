package booking

import (
	"sort"
	"time"
)

const DateKeyLayout = "2006-01-02"

type Segment struct {
	DurationMinutes         int    `json:"duration_minutes"`
	TeamMemberID            string `json:"team_member_id"`
	ServiceVariationID      string `json:"service_variation_id"`
	ServiceVariationVersion int64  `json:"service_variation_version,omitempty"`
}

// Slot is a bookable start time returned by the provider.
type Slot struct {
	StartAt    time.Time `json:"start_at"`
	LocationID string    `json:"location_id"`
	Segments   []Segment `json:"appointment_segments"`
}

// DateKey is the business local calendar date of the slot.
func (s Slot) DateKey(loc *time.Location) string {
	return s.StartAt.In(loc).Format(DateKeyLayout)
}

// TotalMinutes sums the segment durations.
func (s Slot) TotalMinutes() int {
	total := 0
	for _, seg := range s.Segments {
		total += seg.DurationMinutes
	}
	return total
}

// AvailabilityMap maps a business local date (YYYY-MM-DD) to the slots
// starting on that date, in chronological order.
type AvailabilityMap map[string][]Slot

// Dates returns the keys in ascending order.
func (m AvailabilityMap) Dates() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len counts every slot in the map.
func (m AvailabilityMap) Len() int {
	n := 0
	for _, slots := range m {
		n += len(slots)
	}
	return n
}

// Find looks a slot up by its exact start instant.
func (m AvailabilityMap) Find(startAt time.Time, loc *time.Location) (Slot, bool) {
	for _, s := range m[startAt.In(loc).Format(DateKeyLayout)] {
		if s.StartAt.Equal(startAt) {
			return s, true
		}
	}
	return Slot{}, false
}
