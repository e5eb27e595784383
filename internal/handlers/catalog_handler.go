package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	snapshot *catalog.Snapshot
}

func NewCatalogHandler(snapshot *catalog.Snapshot) *CatalogHandler {
	return &CatalogHandler{snapshot: snapshot}
}

// ======================================================
// SERVICES / TEAM
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	httpresp.List(c, h.snapshot.Services())
}

func (h *CatalogHandler) ListTeamMembers(c *gin.Context) {
	httpresp.List(c, h.snapshot.TeamMembers())
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":         h.snapshot.Barbers(),
		"refreshed_at": h.snapshot.RefreshedAt(),
	})
}

func (h *CatalogHandler) GetBarber(c *gin.Context) {
	g, ok := catalog.FindBarber(h.snapshot.Barbers(), c.Param("id"))
	if !ok {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}
	httpresp.OK(c, g)
}
