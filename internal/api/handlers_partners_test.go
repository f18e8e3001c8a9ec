// handlers_partners_test.go - Tests for the partner listing handler
package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforms/backend/internal/partners"
)

func TestPartnersHandler_List(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.yaml")
	require.NoError(t, os.WriteFile(path, []byte("partners:\n  - name: Contoso Channel\n"), 0644))

	catalog, err := partners.Load(path)
	require.NoError(t, err)
	handler := NewPartnersHandler(catalog)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/partners", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleListPartners(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contoso Channel")
}

func TestPartnersHandler_EmptyCatalog(t *testing.T) {
	catalog, err := partners.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	handler := NewPartnersHandler(catalog)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/partners", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleListPartners(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
