package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"tradebooks/internal/core/id"
	"tradebooks/internal/domain"
)

// Entity is what the generic handlers need from a model: an identity the
// URL can override. Satisfied via entity.BaseEntity promotion.
type Entity interface {
	GetID() id.ID
	SetID(entityID id.ID)
}

// CatalogService is the service surface the generic catalog handler drives.
type CatalogService[T Entity] interface {
	Create(ctx context.Context, e T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	GetByCode(ctx context.Context, code string) (T, error)
	Update(ctx context.Context, e T) error
	Delete(ctx context.Context, entityID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
	Lookup(ctx context.Context, filter domain.ListFilter) ([]domain.LookupItem, error)
}

// CatalogHandler provides generic HTTP handlers for catalog entities.
// Domain models bind and marshal directly; there is no DTO layer.
type CatalogHandler[T Entity] struct {
	*BaseHandler
	service CatalogService[T]
	newFn   func() T
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T Entity](base *BaseHandler, service CatalogService[T], newFn func() T) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		BaseHandler: base,
		service:     service,
		newFn:       newFn,
	}
}

// List handles GET /{entity}.
func (h *CatalogHandler[T]) List(c *gin.Context) {
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

// Lookup handles GET /{entity}/lookup - id/label pairs for UI selects.
func (h *CatalogHandler[T]) Lookup(c *gin.Context) {
	filter, ok := h.ParseListFilter(c)
	if !ok {
		return
	}

	items, err := h.service.Lookup(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// Get handles GET /{entity}/:id.
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// GetByCode handles GET /{entity}/by-code/:code.
func (h *CatalogHandler[T]) GetByCode(c *gin.Context) {
	e, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// Create handles POST /{entity}.
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	e := h.newFn()
	if !h.BindJSON(c, e) {
		return
	}

	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, e)
}

// Update handles PUT /{entity}/:id. The path id wins over any id in the body.
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	e := h.newFn()
	if !h.BindJSON(c, e) {
		return
	}
	e.SetID(entityID)

	if err := h.service.Update(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// Delete handles DELETE /{entity}/:id.
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
