package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/cart"
	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type CartHandler struct {
	carts    *cart.Manager
	snapshot *catalog.Snapshot
}

func NewCartHandler(carts *cart.Manager, snapshot *catalog.Snapshot) *CartHandler {
	return &CartHandler{carts: carts, snapshot: snapshot}
}

// ======================================================
// DTOs
// ======================================================

type AddToCartRequest struct {
	ServiceID    string `json:"service_id" binding:"required"`
	TeamMemberID string `json:"team_member_id" binding:"required"`
}

type cartItemView struct {
	Service domain.Service    `json:"service"`
	Barber  domain.TeamMember `json:"barber"`
	Price   int64             `json:"price"`
}

type cartView struct {
	Items          []cartItemView     `json:"items"`
	SelectedBarber *domain.TeamMember `json:"selectedBarber"`
	Count          int                `json:"count"`
	TotalPrice     int64              `json:"total_price"`
	TotalDuration  int                `json:"total_duration"`
	Currency       string             `json:"currency"`
}

func viewOf(c *cart.Cart) cartView {
	items := c.Items()
	v := cartView{
		Items:         make([]cartItemView, 0, len(items)),
		Count:         len(items),
		TotalPrice:    c.TotalPrice(),
		TotalDuration: c.TotalDuration(),
		Currency:      c.Currency(),
	}
	for _, it := range items {
		v.Items = append(v.Items, cartItemView{
			Service: it.Service,
			Barber:  it.Barber,
			Price:   it.Service.PriceFor(it.Barber.ID),
		})
	}
	if b, ok := c.Barber(); ok {
		v.SelectedBarber = &b
	}
	return v
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *CartHandler) Get(c *gin.Context) {
	sid := middleware.SessionID(c)
	httpresp.OK(c, viewOf(h.carts.Get(c.Request.Context(), sid)))
}

func (h *CartHandler) Add(c *gin.Context) {
	h.update(c, false)
}

// SwitchBarber is the confirmed answer to a barber_mismatch: the cart is
// emptied and the service added with the new barber.
func (h *CartHandler) SwitchBarber(c *gin.Context) {
	h.update(c, true)
}

func (h *CartHandler) update(c *gin.Context, replace bool) {
	sid := middleware.SessionID(c)
	ctx := c.Request.Context()

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	offer, barber, ok := h.snapshot.Offer(
		strings.TrimSpace(req.ServiceID),
		strings.TrimSpace(req.TeamMemberID),
	)
	if !ok {
		httperr.NotFound(c, "offer_not_found", "That barber does not offer this service.")
		return
	}

	var (
		out *cart.Cart
		err error
	)
	if replace {
		out, err = h.carts.SwitchBarber(ctx, sid, offer.Service, barber)
	} else {
		out, err = h.carts.Add(ctx, sid, offer.Service, barber)
	}

	if errors.Is(err, domain.ErrBarberMismatch) {
		current, _ := out.Barber()
		c.JSON(http.StatusConflict, gin.H{
			"error_code":       "barber_mismatch",
			"message":          "Your cart already has services with " + current.DisplayName() + ".",
			"current_barber":   current,
			"requested_barber": barber,
		})
		return
	}
	if err != nil {
		respondError(c, err, "Could not update your cart.")
		return
	}

	httpresp.OK(c, viewOf(out))
}

func (h *CartHandler) Remove(c *gin.Context) {
	sid := middleware.SessionID(c)

	out, removed := h.carts.Remove(c.Request.Context(), sid, c.Param("serviceID"))
	if !removed {
		httperr.NotFound(c, "item_not_found", "That service is not in your cart.")
		return
	}
	httpresp.OK(c, viewOf(out))
}

func (h *CartHandler) Clear(c *gin.Context) {
	sid := middleware.SessionID(c)
	h.carts.Clear(c.Request.Context(), sid)
	httpresp.OK(c, viewOf(cart.New()))
}
