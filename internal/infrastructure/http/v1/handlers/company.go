package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebooks/internal/domain/catalogs/company"
)

// CompanyHandler extends the generic catalog handler with the current-company
// endpoint.
type CompanyHandler struct {
	*CatalogHandler[*company.Company]
	service *company.Service
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(base *BaseHandler, service *company.Service) *CompanyHandler {
	return &CompanyHandler{
		CatalogHandler: NewCatalogHandler[*company.Company](base, service, func() *company.Company { return &company.Company{} }),
		service:        service,
	}
}

// GetCurrent handles GET /companies/current - the tenant's company row.
func (h *CompanyHandler) GetCurrent(c *gin.Context) {
	current, err := h.service.GetCurrent(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, current)
}
