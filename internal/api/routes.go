// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/appforms/backend/internal/auth"
	"github.com/appforms/backend/internal/forms"
	"github.com/appforms/backend/internal/partners"
	"github.com/appforms/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Manager  *forms.Manager
	Partners *partners.Catalog
	Auth     auth.Provider
	// LocalStore is set only when running against the local backend; it
	// backs the /api/storage/raw capability route.
	LocalStore *storage.LocalStore
	Version    string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Forms    FormsHandler
	Partners PartnersHandler
	Raw      RawHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version),
		Forms:    NewFormsHandler(deps.Manager),
		Partners: NewPartnersHandler(deps.Partners),
		Raw:      NewRawHandler(deps.LocalStore),
	}
}

// RegisterRoutes registers all API routes with the Echo instance. Health
// and the capability-URL route stay outside the auth gate.
func RegisterRoutes(e *echo.Echo, handlers *Handlers, provider auth.Provider) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/api/health", handlers.Health.HandleHealth)
	e.GET("/api/storage/raw", handlers.Raw.HandleRawObject)

	authed := e.Group("/api", RequireAuth(provider))

	formsGroup := authed.Group("/clients/:clientId/forms")
	formsGroup.GET("", handlers.Forms.HandleListForms)
	formsGroup.GET("/msgpack", handlers.Forms.HandleListFormsMsgpack)
	formsGroup.POST("", handlers.Forms.HandleUploadForm)
	formsGroup.DELETE("/:name", handlers.Forms.HandleDeleteForm)
	formsGroup.GET("/:name/download", handlers.Forms.HandleDownloadForm)

	authed.GET("/partners", handlers.Partners.HandleListPartners)
}
