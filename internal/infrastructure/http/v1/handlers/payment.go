package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebooks/internal/domain/documents/payment"
)

// PaymentHandler extends the generic document handler with archive
// endpoints. Delete soft-deletes via the payment service.
type PaymentHandler struct {
	*DocumentHandler[*payment.Payment]
	service *payment.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(base *BaseHandler, service *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		DocumentHandler: NewDocumentHandler[*payment.Payment](base, service, func() *payment.Payment { return &payment.Payment{} }),
		service:         service,
	}
}

// Archive handles POST /payments/:id/archive.
func (h *PaymentHandler) Archive(c *gin.Context) {
	paymentID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), paymentID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "payment archived")
}

// Unarchive handles POST /payments/:id/unarchive.
func (h *PaymentHandler) Unarchive(c *gin.Context) {
	paymentID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Unarchive(c.Request.Context(), paymentID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "payment unarchived")
}
