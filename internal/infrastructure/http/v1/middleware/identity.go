package middleware

import (
	"github.com/gin-gonic/gin"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/core/tx"
)

// Identity headers. The gateway in front of this service authenticates the
// caller and forwards the resolved identity.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserID   = "X-User-ID"
	HeaderBranchID = "X-Branch-ID"
)

// Identity installs the caller's UserContext from request headers.
// A request without a valid tenant id never reaches a handler: every
// repository statement requires the tenant scope.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := id.Parse(c.GetHeader(HeaderTenantID))
		if err != nil || id.IsNil(tenantID) {
			_ = c.Error(apperror.NewValidation("missing or invalid tenant id").
				WithDetail("header", HeaderTenantID))
			c.Abort()
			return
		}

		user := &appctx.UserContext{TenantID: tenantID}

		if raw := c.GetHeader(HeaderUserID); raw != "" {
			if uid, err := id.Parse(raw); err == nil {
				user.UserID = uid
			}
		}
		if raw := c.GetHeader(HeaderBranchID); raw != "" {
			if bid, err := id.Parse(raw); err == nil {
				user.BranchID = bid
			}
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// TxManager puts the shared transaction manager into the request context so
// services and repositories can reach it without constructor plumbing.
func TxManager(txm tx.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tenant.WithTxManager(c.Request.Context(), txm)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
