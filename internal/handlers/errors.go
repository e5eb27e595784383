package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var businessMessages = map[string]string{
	"missing_service":      "Choose a service first.",
	"invalid_range":        "Invalid date range.",
	"invalid_date":         "Invalid date.",
	"date_not_available":   "That date has no available times.",
	"empty_cart":           "Your cart is empty.",
	"missing_time":         "Choose a time first.",
	"slot_unavailable":     "That time is no longer available.",
	"stale_availability":   "Your services changed. Search availability again.",
	"missing_given_name":   "First name is required.",
	"missing_family_name":  "Last name is required.",
	"missing_email":        "Email is required.",
	"missing_phone":        "Phone number is required.",
	"invalid_email":        "Invalid email address.",
	"invalid_email_domain": "That email domain does not receive mail.",
	"invalid_phone":        "Invalid phone number.",
	"missing_customer":     "Customer is required.",
	"missing_segments":     "At least one service is required.",
	"invalid_segment":      "Invalid service selection.",
}

// respondError maps use case errors to HTTP responses. fallback is shown
// for provider failures that carry no detail.
func respondError(c *gin.Context, err error, fallback string) {
	if be, ok := httperr.AsBusiness(err); ok {
		msg, found := businessMessages[be.Code]
		if !found {
			msg = "Invalid request."
		}
		httperr.BadRequest(c, be.Code, msg)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "not_found", "Nothing found.")
	case errors.Is(err, domain.ErrBarberMismatch):
		httperr.Conflict(c, "barber_mismatch", "Your cart already has a different barber.")
	default:
		if _, ok := domain.AsProviderError(err); ok {
			httperr.Provider(c, err, fallback)
			return
		}
		httperr.Write(c, http.StatusInternalServerError, "internal_error", fallback)
	}
}
