package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scormforge/scormforge/internal/config"
)

func TestServerServesRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.ProjectsDir = t.TempDir()
	cfg.Storage.MediaDir = t.TempDir()

	srv := New(cfg)
	srv.SetupRoutes()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestStopWithoutStart(t *testing.T) {
	srv := New(config.Default())
	assert.NoError(t, srv.Stop())
}
