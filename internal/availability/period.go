package availability

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type Period string

const (
	PeriodMorning   Period = "Morning"
	PeriodAfternoon Period = "Afternoon"
	PeriodEvening   Period = "Evening"
)

const (
	afternoonStartHour = 12
	eveningStartHour   = 17
)

const readableTimeLayout = "3:04 PM"

var periodOrder = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

type TimeOption struct {
	StartAt      time.Time         `json:"start_at"`
	ReadableTime string            `json:"readable_time"`
	LocationID   string            `json:"location_id"`
	Segments     []booking.Segment `json:"appointment_segments"`
}

type PeriodGroup struct {
	Title        Period       `json:"title"`
	Appointments []TimeOption `json:"appointments"`
}

// PeriodOf buckets t by its hour in loc. Boundaries belong to the later bucket.
func PeriodOf(t time.Time, loc *time.Location) Period {
	hour := t.In(loc).Hour()
	switch {
	case hour >= eveningStartHour:
		return PeriodEvening
	case hour >= afternoonStartHour:
		return PeriodAfternoon
	default:
		return PeriodMorning
	}
}

// GroupByPeriod partitions one date's slots into Morning, Afternoon and
// Evening, chronological within each. Empty periods are left out.
func GroupByPeriod(slots []booking.Slot, loc *time.Location) []PeriodGroup {
	ordered := make([]booking.Slot, len(slots))
	copy(ordered, slots)
	sortChronological(ordered)

	buckets := map[Period][]TimeOption{}
	for _, s := range ordered {
		p := PeriodOf(s.StartAt, loc)
		buckets[p] = append(buckets[p], TimeOption{
			StartAt:      s.StartAt,
			ReadableTime: s.StartAt.In(loc).Format(readableTimeLayout),
			LocationID:   s.LocationID,
			Segments:     s.Segments,
		})
	}

	out := make([]PeriodGroup, 0, len(periodOrder))
	for _, p := range periodOrder {
		if len(buckets[p]) == 0 {
			continue
		}
		out = append(out, PeriodGroup{Title: p, Appointments: buckets[p]})
	}
	return out
}
