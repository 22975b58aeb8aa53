package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebooks/internal/domain/catalogs/unit"
)

// UnitHandler extends the generic catalog handler with conversion endpoints.
type UnitHandler struct {
	*CatalogHandler[*unit.Unit]
	service *unit.Service
}

// NewUnitHandler creates a new unit handler.
func NewUnitHandler(base *BaseHandler, service *unit.Service) *UnitHandler {
	return &UnitHandler{
		CatalogHandler: NewCatalogHandler[*unit.Unit](base, service, func() *unit.Unit { return &unit.Unit{} }),
		service:        service,
	}
}

// ListConversions handles GET /units/:id/conversions.
func (h *UnitHandler) ListConversions(c *gin.Context) {
	unitID, ok := h.ParseID(c)
	if !ok {
		return
	}

	conversions, err := h.service.Conversions(c.Request.Context(), unitID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": conversions})
}

// AddConversion handles POST /units/:id/conversions.
func (h *UnitHandler) AddConversion(c *gin.Context) {
	unitID, ok := h.ParseID(c)
	if !ok {
		return
	}

	conv := &unit.Conversion{}
	if !h.BindJSON(c, conv) {
		return
	}
	conv.UnitID = unitID

	if err := h.service.AddConversion(c.Request.Context(), conv); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, conv)
}
