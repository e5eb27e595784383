package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

const (
	customerFallback = "Could not save your details. Please try again."
	bookingFallback  = "Could not create the booking. Please try again."
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	customers *ucBooking.CreateCustomer
	bookings  *ucBooking.CreateBooking
	checkout  *ucBooking.Checkout
	confirm   *ucBooking.GetConfirmation
	shopName  string
}

func NewBookingHandler(
	customers *ucBooking.CreateCustomer,
	bookings *ucBooking.CreateBooking,
	checkout *ucBooking.Checkout,
	confirm *ucBooking.GetConfirmation,
	shopName string,
) *BookingHandler {
	return &BookingHandler{
		customers: customers,
		bookings:  bookings,
		checkout:  checkout,
		confirm:   confirm,
		shopName:  shopName,
	}
}

// ======================================================
// DTOs
// ======================================================

type CustomerRequest struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email_address"`
	Phone      string `json:"phone_number"`
}

func (r CustomerRequest) input() domain.CustomerInput {
	return domain.CustomerInput{
		GivenName:  r.GivenName,
		FamilyName: r.FamilyName,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}

type CreateBookingRequest struct {
	CustomerID string           `json:"customer_id"`
	StartAt    time.Time        `json:"start_at" binding:"required"`
	LocationID string           `json:"location_id"`
	Segments   []domain.Segment `json:"appointment_segments"`
	Note       string           `json:"customer_note"`
}

type CheckoutRequest struct {
	StartAt  time.Time       `json:"start_at" binding:"required"`
	Customer CustomerRequest `json:"customer"`
	Note     string          `json:"customer_note"`
}

// ======================================================
// CUSTOMERS
// ======================================================

func (h *BookingHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	out, err := h.customers.Execute(c.Request.Context(), ucBooking.CreateCustomerInput{
		SessionID: middleware.SessionID(c),
		Customer:  req.input(),
	})
	if err != nil {
		respondError(c, err, customerFallback)
		return
	}

	if out.Created {
		httpresp.Created(c, out)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	b, err := h.bookings.Execute(c.Request.Context(), middleware.SessionID(c), domain.BookingInput{
		CustomerID:     req.CustomerID,
		StartAt:        req.StartAt,
		LocationID:     req.LocationID,
		Segments:       req.Segments,
		Note:           strings.TrimSpace(req.Note),
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err, bookingFallback)
		return
	}

	httpresp.Created(c, gin.H{"booking": b})
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *BookingHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), ucBooking.CheckoutInput{
		SessionID:      middleware.SessionID(c),
		StartAt:        req.StartAt,
		Customer:       req.Customer.input(),
		Note:           req.Note,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err, bookingFallback)
		return
	}

	httpresp.Created(c, out)
}

// Confirmation returns the booking completed in this session once. With
// ?format=ics it is served as a calendar file instead.
func (h *BookingHandler) Confirmation(c *gin.Context) {
	done, err := h.confirm.Execute(c.Request.Context(), middleware.SessionID(c))
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "no_completed_booking", "No recent booking to confirm.")
		return
	}
	if err != nil {
		httperr.Internal(c, "confirmation_failed", "Could not load your booking.")
		return
	}

	if strings.EqualFold(c.Query("format"), "ics") {
		c.Header("Content-Disposition", `attachment; filename="booking-`+done.BookingID+`.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8",
			[]byte(ucBooking.CalendarFile(done, h.shopName, time.Now())))
		return
	}

	httpresp.OK(c, gin.H{"completedBooking": done})
}
