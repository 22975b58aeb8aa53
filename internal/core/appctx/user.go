// Package appctx provides request-scoped value extraction.
// The user context is installed once by HTTP middleware and read explicitly
// by services for tenant scoping, branch scoping and audit stamping.
package appctx

import (
	"context"

	"tradebooks/internal/core/id"
)

// UserContext contains the authenticated caller's identity and scope.
type UserContext struct {
	UserID   id.ID
	TenantID id.ID
	BranchID id.ID
	Email    string
}

type userContextKey struct{}

// WithUser adds UserContext to ctx.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns the UserContext from ctx, or nil.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns the current user id, or the nil id.
func GetUserID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return id.Nil()
}

// GetTenantID returns the current tenant id, or the nil id.
func GetTenantID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.TenantID
	}
	return id.Nil()
}

// GetBranchID returns the current user's branch id, or the nil id.
func GetBranchID(ctx context.Context) id.ID {
	if u := GetUser(ctx); u != nil {
		return u.BranchID
	}
	return id.Nil()
}
