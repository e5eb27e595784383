package availability

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// DefaultWindowDays is the widest range the provider accepts per search.
const DefaultWindowDays = 31

// Range is the half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// SplitRange cuts [start, end) into consecutive sub-ranges no wider than
// windowDays calendar days, capped at DefaultWindowDays. Interior
// boundaries fall on local midnight in loc, so each business date belongs
// to exactly one sub-range.
func SplitRange(
	start time.Time,
	end time.Time,
	loc *time.Location,
	windowDays int,
) ([]Range, error) {

	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil, booking.ErrInvalidRange
	}
	if windowDays <= 0 || windowDays > DefaultWindowDays {
		windowDays = DefaultWindowDays
	}

	var out []Range
	for cur := start; cur.Before(end); {
		next := timezone.StartOfDay(cur, loc).AddDate(0, 0, windowDays)
		if next.After(end) {
			next = end
		}
		out = append(out, Range{Start: cur, End: next})
		cur = next
	}

	return out, nil
}
