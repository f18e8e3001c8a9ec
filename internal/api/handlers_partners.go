// handlers_partners.go - Channel-partner listing handler
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appforms/backend/internal/partners"
)

// PartnersHandlerImpl implements the PartnersHandler interface
type PartnersHandlerImpl struct {
	catalog *partners.Catalog
}

// NewPartnersHandler creates a new partners handler instance
func NewPartnersHandler(catalog *partners.Catalog) PartnersHandler {
	return &PartnersHandlerImpl{catalog: catalog}
}

// HandleListPartners returns the partner catalog
func (h *PartnersHandlerImpl) HandleListPartners(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.List())
}
