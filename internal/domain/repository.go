// Package domain provides the shared business-logic contracts: list
// filtering, repository interfaces, lifecycle hooks and the generic catalog
// service every entity service composes.
package domain

import (
	"context"

	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs a case-insensitive substring match across the
	// entity's fixed set of searchable string columns
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// BranchID restricts to one branch (documents and branch-coded catalogs)
	BranchID *id.ID

	// OrderBy specifies sorting (e.g. "name", "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit: 50,
	}
}

// ListResult contains one page of results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// LookupItem is an id + display-label pair for populating UI selects.
type LookupItem struct {
	ID    id.ID  `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}

// --- Repository interfaces ---

// CatalogEntity is the contract catalog models satisfy so the generic
// service can stamp and number them.
type CatalogEntity interface {
	entity.Validatable

	GetID() id.ID
	GetCode() string
	SetCode(code string)
	StampCreate(ctx context.Context)
	StampUpdate(ctx context.Context)
}

// CatalogRepository defines CRUD operations for catalog entities.
// All queries are tenant-scoped by the implementation.
type CatalogRepository[T CatalogEntity] interface {
	Create(ctx context.Context, e T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	GetByCode(ctx context.Context, code string) (T, error)
	Update(ctx context.Context, e T) error

	// Delete removes the row. Entities with dependent rows surface a
	// conflict error instead of deleting.
	Delete(ctx context.Context, entityID id.ID) error

	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	Exists(ctx context.Context, entityID id.ID) (bool, error)

	// ExistsByCode checks code uniqueness; excludeID skips the entity
	// being updated so it does not collide with itself.
	ExistsByCode(ctx context.Context, code string, excludeID id.ID) (bool, error)

	// Lookup returns id+label pairs matching the filter.
	Lookup(ctx context.Context, filter ListFilter) ([]LookupItem, error)
}

// ScopeResolver resolves the current numbering scope. The company's code
// generation mode is read at call time, never cached.
type ScopeResolver interface {
	CurrentScope(ctx context.Context) (sequence.Scope, error)
}

// GlobalScopeResolver always resolves a tenant-global scope. Used by
// catalogs that are never branch-numbered (e.g. branches themselves).
type GlobalScopeResolver struct{}

func (GlobalScopeResolver) CurrentScope(ctx context.Context) (sequence.Scope, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return sequence.Scope{}, err
	}
	return sequence.Scope{TenantID: tid}, nil
}

// --- Hooks ---

// HookEvent represents a lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at a specific lifecycle point.
type Hook[T any] func(ctx context.Context, e T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, e T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a before-create hook.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) { r.On(BeforeCreate, hook) }

// OnBeforeUpdate registers a before-update hook.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) { r.On(BeforeUpdate, hook) }

// OnBeforeDelete registers a before-delete hook.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) { r.On(BeforeDelete, hook) }
