package availability

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// GroupByDate keys slots by their business local date. Slots without a
// start time are dropped.
func GroupByDate(slots []booking.Slot, loc *time.Location) booking.AvailabilityMap {
	out := booking.AvailabilityMap{}
	for _, s := range slots {
		if s.StartAt.IsZero() {
			continue
		}
		key := s.DateKey(loc)
		out[key] = append(out[key], s)
	}
	for key := range out {
		sortChronological(out[key])
	}
	return out
}

// Merge concatenates batch results per date, in argument order. Inputs
// are left untouched and duplicates are kept.
func Merge(batches ...booking.AvailabilityMap) booking.AvailabilityMap {
	out := booking.AvailabilityMap{}
	for _, b := range batches {
		for date, slots := range b {
			out[date] = append(out[date], slots...)
		}
	}
	return out
}

func sortChronological(slots []booking.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})
}
