package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	search *ucBooking.SearchAvailability
	dates  *ucBooking.ListAvailableDates
	times  *ucBooking.TimesForDate
	loc    *time.Location
}

func NewAvailabilityHandler(
	search *ucBooking.SearchAvailability,
	dates *ucBooking.ListAvailableDates,
	times *ucBooking.TimesForDate,
	loc *time.Location,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		search: search,
		dates:  dates,
		times:  times,
		loc:    loc,
	}
}

// ======================================================
// DTOs
// ======================================================

// SearchAvailabilityRequest takes RFC3339 instants or plain YYYY-MM-DD
// dates, read as midnight in the business timezone. end_at is exclusive.
type SearchAvailabilityRequest struct {
	ServiceVariationID string `json:"service_variation_id"`
	StartAt            string `json:"start_at"`
	EndAt              string `json:"end_at"`
}

func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return timezone.ParseDate(s, loc)
}

// ======================================================
// SEARCH
// ======================================================

func (h *AvailabilityHandler) Search(c *gin.Context) {
	sid := middleware.SessionID(c)

	var req SearchAvailabilityRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request.")
			return
		}
	}

	in := ucBooking.SearchAvailabilityInput{
		SessionID:          sid,
		ServiceVariationID: req.ServiceVariationID,
	}

	var err error
	if req.StartAt != "" {
		if in.StartAt, err = parseInstant(req.StartAt, h.loc); err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid start date.")
			return
		}
	}
	if req.EndAt != "" {
		if in.EndAt, err = parseInstant(req.EndAt, h.loc); err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid end date.")
			return
		}
	}

	out, err := h.search.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Could not load availability. Please try again.")
		return
	}
	if !out.Current {
		httperr.Conflict(c, "superseded", "A newer availability search replaced this one.")
		return
	}

	httpresp.OK(c, gin.H{
		"service_variation_id":   out.Result.ServiceVariationID,
		"availabilities_by_date": out.Result.Availability,
		"dates":                  h.dates.Execute(sid),
	})
}

// ======================================================
// CALENDAR
// ======================================================

func (h *AvailabilityHandler) Dates(c *gin.Context) {
	httpresp.OK(c, h.dates.Execute(middleware.SessionID(c)))
}

func (h *AvailabilityHandler) Times(c *gin.Context) {
	out, err := h.times.Execute(middleware.SessionID(c), c.Param("date"))
	if err != nil {
		respondError(c, err, "Could not load times.")
		return
	}
	httpresp.OK(c, out)
}
