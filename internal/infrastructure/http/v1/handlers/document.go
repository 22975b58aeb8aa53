package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"tradebooks/internal/core/id"
	"tradebooks/internal/domain"
	"tradebooks/internal/infrastructure/http/v1/dto"
)

// DocService is the service surface the generic document handler drives.
type DocService[T Entity] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
	BatchDelete(ctx context.Context, docIDs []id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
}

// DocumentHandler provides generic HTTP handlers for documents.
type DocumentHandler[T Entity] struct {
	*BaseHandler
	service DocService[T]
	newFn   func() T
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler[T Entity](base *BaseHandler, service DocService[T], newFn func() T) *DocumentHandler[T] {
	return &DocumentHandler[T]{
		BaseHandler: base,
		service:     service,
		newFn:       newFn,
	}
}

// List handles GET /{document}.
func (h *DocumentHandler[T]) List(c *gin.Context) {
	filter, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Get handles GET /{document}/:id - header with lines.
func (h *DocumentHandler[T]) Get(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Create handles POST /{document}.
func (h *DocumentHandler[T]) Create(c *gin.Context) {
	doc := h.newFn()
	if !h.BindJSON(c, doc) {
		return
	}

	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, doc)
}

// Update handles PUT /{document}/:id. The path id wins over any id in the
// body; the submitted lines replace the stored ones.
func (h *DocumentHandler[T]) Update(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc := h.newFn()
	if !h.BindJSON(c, doc) {
		return
	}
	doc.SetID(docID)

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Delete handles DELETE /{document}/:id.
func (h *DocumentHandler[T]) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// BatchDelete handles POST /{document}/batch-delete.
func (h *DocumentHandler[T]) BatchDelete(c *gin.Context) {
	var req dto.BatchDeleteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.BatchDelete(c.Request.Context(), req.IDs); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "documents deleted")
}
