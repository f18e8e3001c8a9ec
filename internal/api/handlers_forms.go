// handlers_forms.go - Application-form operation handlers
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/appforms/backend/internal/forms"
	"github.com/appforms/backend/internal/storage"
)

// FormsHandlerImpl implements the FormsHandler interface
type FormsHandlerImpl struct {
	manager *forms.Manager
}

// NewFormsHandler creates a new forms handler instance
func NewFormsHandler(manager *forms.Manager) FormsHandler {
	return &FormsHandlerImpl{manager: manager}
}

// HandleListForms returns the client's documents with signed download URLs
func (h *FormsHandlerImpl) HandleListForms(c echo.Context) error {
	clientID := c.Param("clientId")
	if clientID == "" {
		return NewValidationError("clientId is required")
	}

	files, err := h.manager.List(c.Request().Context(), clientID)
	if err != nil {
		return NewInternalError("failed to load files", err)
	}

	return c.JSON(http.StatusOK, files)
}

// HandleListFormsMsgpack returns the same listing msgpack-encoded
func (h *FormsHandlerImpl) HandleListFormsMsgpack(c echo.Context) error {
	clientID := c.Param("clientId")
	if clientID == "" {
		return NewValidationError("clientId is required")
	}

	files, err := h.manager.List(c.Request().Context(), clientID)
	if err != nil {
		return NewInternalError("failed to load files", err)
	}

	data, err := msgpack.Marshal(files)
	if err != nil {
		return NewInternalError("failed to encode listing", err)
	}

	return c.Blob(http.StatusOK, "application/x-msgpack", data)
}

// HandleUploadForm accepts a multipart upload (field "file"), validates it,
// and stores it under the client's folder
func (h *FormsHandlerImpl) HandleUploadForm(c echo.Context) error {
	clientID := c.Param("clientId")
	if clientID == "" {
		return NewValidationError("clientId is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")

	info, err := h.manager.Upload(c.Request().Context(), clientID, file.Filename, contentType, file.Size, src)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, info)
	case errors.Is(err, forms.ErrFileTypeNotSupported), errors.Is(err, forms.ErrFileTooLarge):
		return NewValidationError(err.Error())
	case errors.Is(err, storage.ErrObjectExists):
		return NewConflictError("a file with the derived name already exists", err)
	default:
		return NewInternalError("failed to upload file", err)
	}
}

// HandleDeleteForm removes one document. The caller must confirm by naming
// the file in the confirm query parameter; anything else is a no-op.
func (h *FormsHandlerImpl) HandleDeleteForm(c echo.Context) error {
	clientID := c.Param("clientId")
	name := c.Param("name")
	if clientID == "" || name == "" {
		return NewValidationError("clientId and name are required")
	}

	if c.QueryParam("confirm") != name {
		return NewBadRequestError(fmt.Sprintf("deletion requires confirm=%s", name), nil)
	}

	err := h.manager.Delete(c.Request().Context(), clientID, name)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, storage.ErrObjectNotFound):
		return NewNotFoundError("file", name)
	default:
		return NewInternalError("failed to delete file", err)
	}
}

// HandleDownloadForm issues a signed URL for one document and redirects to
// it. If no URL can be issued, no download is started.
func (h *FormsHandlerImpl) HandleDownloadForm(c echo.Context) error {
	clientID := c.Param("clientId")
	name := c.Param("name")
	if clientID == "" || name == "" {
		return NewValidationError("clientId and name are required")
	}

	url, err := h.manager.DownloadURL(c.Request().Context(), clientID, name)
	switch {
	case err == nil:
		return c.Redirect(http.StatusFound, url)
	case errors.Is(err, storage.ErrObjectNotFound):
		return NewNotFoundError("file", name)
	default:
		return NewInternalError("download link unavailable", err)
	}
}
