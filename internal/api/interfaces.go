// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// FormsHandler handles application-form operations for one client folder
type FormsHandler interface {
	HandleListForms(c echo.Context) error
	HandleListFormsMsgpack(c echo.Context) error
	HandleUploadForm(c echo.Context) error
	HandleDeleteForm(c echo.Context) error
	HandleDownloadForm(c echo.Context) error
}

// PartnersHandler handles the channel-partner listing
type PartnersHandler interface {
	HandleListPartners(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// RawHandler serves capability URLs issued by the local storage backend
type RawHandler interface {
	HandleRawObject(c echo.Context) error
}
