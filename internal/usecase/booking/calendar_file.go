package booking

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const icsProductID = "-//barber-booking//confirmation//EN"

// CalendarFile renders the completed booking as a single event .ics file.
func CalendarFile(b CompletedBooking, shopName string, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	ev := cal.AddEvent(b.BookingID + "@barber-booking")
	ev.SetDtStampTime(stamp.UTC())
	ev.SetStartAt(b.StartAt.UTC())
	ev.SetEndAt(b.EndAt().UTC())
	ev.SetStatus(ical.ObjectStatusConfirmed)

	summary := strings.Join(b.ServiceNames(), ", ")
	if name := b.Barber.DisplayName(); name != "" {
		summary = fmt.Sprintf("%s with %s", summary, name)
	}
	ev.SetSummary(summary)

	if shopName != "" {
		ev.SetLocation(shopName)
	}
	ev.SetDescription(fmt.Sprintf("Booking %s for %s", b.BookingID, b.CustomerName))

	return cal.Serialize()
}
