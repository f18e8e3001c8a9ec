// handlers_raw.go - Serves capability URLs issued by the local storage
// backend. The HMAC token is the only credential; the route sits outside
// the auth middleware, like any signed URL.
package api

import (
	"fmt"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/appforms/backend/internal/storage"
)

// RawHandlerImpl implements the RawHandler interface
type RawHandlerImpl struct {
	store *storage.LocalStore
}

// NewRawHandler creates a new raw-object handler. store may be nil when the
// server runs against a remote backend; the route then always 404s.
func NewRawHandler(store *storage.LocalStore) RawHandler {
	return &RawHandlerImpl{store: store}
}

// HandleRawObject streams one stored object after verifying the token
func (h *RawHandlerImpl) HandleRawObject(c echo.Context) error {
	if h.store == nil {
		return NewNotFoundError("object", c.QueryParam("path"))
	}

	objectPath := c.QueryParam("path")
	token := c.QueryParam("token")
	if objectPath == "" || token == "" {
		return NewBadRequestError("path and token are required", nil)
	}

	expires, err := strconv.ParseInt(c.QueryParam("expires"), 10, 64)
	if err != nil {
		return NewBadRequestError("invalid expires parameter", err)
	}

	if err := h.store.VerifyURL(objectPath, expires, token); err != nil {
		return NewUnauthorizedError(err.Error())
	}

	f, err := h.store.Open(objectPath)
	if err != nil {
		return NewNotFoundError("object", objectPath)
	}
	defer f.Close()

	name := path.Base(objectPath)
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))

	return c.Stream(http.StatusOK, contentType, f)
}
