package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/domain/registers/stock"
)

// StockHandler exposes the stock register: running balances per branch and
// the deliverable-quantity figure used by the delivery flow.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

func (h *StockHandler) parseIDQuery(c *gin.Context, key string) (id.ID, bool) {
	parsed, err := id.Parse(c.Query(key))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+key+" format").WithDetail("param", key))
		return id.Nil(), false
	}
	return parsed, true
}

// ByBranch handles GET /stock?branchId=... - all non-zero rows for a branch.
func (h *StockHandler) ByBranch(c *gin.Context) {
	branchID, ok := h.parseIDQuery(c, "branchId")
	if !ok {
		return
	}

	rows, err := h.service.BranchStock(c.Request.Context(), branchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": rows})
}

// Quantity handles GET /stock/quantity?branchId=...&productId=...
func (h *StockHandler) Quantity(c *gin.Context) {
	branchID, ok := h.parseIDQuery(c, "branchId")
	if !ok {
		return
	}
	productID, ok := h.parseIDQuery(c, "productId")
	if !ok {
		return
	}

	quantity, err := h.service.Quantity(c.Request.Context(), branchID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"quantity": quantity})
}

// Deliverable handles GET /stock/deliverable?branchId=...&productId=... -
// receipts minus prior deliveries, the figure the delivery guard checks.
func (h *StockHandler) Deliverable(c *gin.Context) {
	branchID, ok := h.parseIDQuery(c, "branchId")
	if !ok {
		return
	}
	productID, ok := h.parseIDQuery(c, "productId")
	if !ok {
		return
	}

	available, err := h.service.AvailableForDelivery(c.Request.Context(), branchID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"available": available})
}
