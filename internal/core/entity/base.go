// Package entity provides the shared entity bases: identity, tenant scoping,
// optimistic locking and audit stamping.
package entity

import (
	"context"
	"time"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants only (no database access).
type Validatable interface {
	// Validate returns nil if valid, an *apperror.AppError otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains the fields every row carries.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// TenantID scopes the row; every repository query filters on it
	TenantID id.ID `db:"tenant_id" json:"-"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBaseEntity creates a BaseEntity with a generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// AuditFields carry creation/update actor and time stamps.
type AuditFields struct {
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	CreatedByID id.ID     `db:"created_by_id" json:"createdById,omitempty"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	UpdatedByID id.ID     `db:"updated_by_id" json:"updatedById,omitempty"`
}

// GetID returns the primary key.
func (b *BaseEntity) GetID() id.ID { return b.ID }

// SetID assigns the primary key (used when the id arrives in the URL rather
// than the body).
func (b *BaseEntity) SetID(entityID id.ID) { b.ID = entityID }

// StampCreate fills tenant and creation audit fields from the request context.
// Entities decoded straight from JSON arrive without an id or version; both
// are initialized here.
func (b *BaseEntity) StampCreate(ctx context.Context, a *AuditFields) {
	if id.IsNil(b.ID) {
		b.ID = id.New()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	now := time.Now().UTC()
	b.TenantID = appctx.GetTenantID(ctx)
	a.CreatedAt = now
	a.CreatedByID = appctx.GetUserID(ctx)
	a.UpdatedAt = now
	a.UpdatedByID = a.CreatedByID
}

// StampUpdate fills update audit fields from the request context and bumps
// the optimistic-lock version.
func (b *BaseEntity) StampUpdate(ctx context.Context, a *AuditFields) {
	a.UpdatedAt = time.Now().UTC()
	a.UpdatedByID = appctx.GetUserID(ctx)
	b.Version++
}
