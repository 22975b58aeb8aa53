// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler defines the routes every catalog handler serves.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Lookup(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	GetByCode(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// DocumentRouteHandler defines the routes every document handler serves.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	BatchDelete(c *gin.Context)
}

// RegisterCatalogRoutes wires standard CRUD routes for a catalog, so each
// catalog does not repeat the same seven lines.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.GET("/lookup", handler.Lookup)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.GET("/by-code/:code", handler.GetByCode)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

// RegisterDocumentRoutes wires standard CRUD + batch routes for a document
// type.
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.POST("/batch-delete", handler.BatchDelete)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
