package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/availability"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailableDates struct {
	ServiceVariationID string   `json:"service_variation_id"`
	Dates              []string `json:"dates"`
	FirstAvailable     string   `json:"first_available,omitempty"`
}

type DayTimes struct {
	Date    string                     `json:"date"`
	Periods []availability.PeriodGroup `json:"periods"`
}

// ListAvailableDates reads the session's latest search. No search yet, or a
// failed one, gives an empty list.
type ListAvailableDates struct {
	tracker *availability.Tracker
	loc     *time.Location
	now     func() time.Time
}

func NewListAvailableDates(tracker *availability.Tracker, loc *time.Location) *ListAvailableDates {
	return &ListAvailableDates{tracker: tracker, loc: loc, now: time.Now}
}

func (uc *ListAvailableDates) Execute(sessionID string) AvailableDates {
	res, ok := uc.tracker.Current(sessionID)
	if !ok {
		return AvailableDates{Dates: []string{}}
	}

	cal := availability.NewCalendar(res.Availability, uc.loc)
	now := uc.now()

	out := AvailableDates{
		ServiceVariationID: res.ServiceVariationID,
		Dates:              cal.SelectableDates(now),
	}
	out.FirstAvailable, _ = cal.FirstSelectable(now)
	return out
}

// TimesForDate groups one selectable date's slots by period.
type TimesForDate struct {
	tracker *availability.Tracker
	loc     *time.Location
	now     func() time.Time
}

func NewTimesForDate(tracker *availability.Tracker, loc *time.Location) *TimesForDate {
	return &TimesForDate{tracker: tracker, loc: loc, now: time.Now}
}

func (uc *TimesForDate) Execute(sessionID, date string) (DayTimes, error) {
	if _, err := timezone.ParseDate(date, uc.loc); err != nil {
		return DayTimes{}, httperr.ErrBusiness("invalid_date")
	}

	res, ok := uc.tracker.Current(sessionID)
	if !ok {
		return DayTimes{}, httperr.ErrBusiness("date_not_available")
	}

	cal := availability.NewCalendar(res.Availability, uc.loc)
	if !cal.IsSelectable(date, uc.now()) {
		return DayTimes{}, httperr.ErrBusiness("date_not_available")
	}

	return DayTimes{
		Date:    date,
		Periods: availability.GroupByPeriod(res.Availability[date], uc.loc),
	}, nil
}
