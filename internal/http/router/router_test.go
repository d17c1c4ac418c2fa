package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/http/router"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStorage satisfies storage.Storage for routes that never reach it.
type stubStorage struct{}

func (stubStorage) CreateStudent(context.Context, types.CreateStudent) (types.Student, error) {
	return types.Student{}, storage.ErrNotFound
}
func (stubStorage) ListStudents(context.Context, int64, int64, string) ([]types.Student, int64, error) {
	return []types.Student{}, 0, nil
}
func (stubStorage) GetStudentByID(context.Context, string) (types.Student, error) {
	return types.Student{}, storage.ErrNotFound
}
func (stubStorage) UpdateStudent(context.Context, string, types.UpdateStudent) (types.Student, error) {
	return types.Student{}, storage.ErrNotFound
}
func (stubStorage) DeleteStudent(context.Context, string) error {
	return storage.ErrNotFound
}

func newRouter(t *testing.T, staticDir string) http.Handler {
	t.Helper()
	cfg := &config.Config{
		StaticDir: staticDir,
		CORS:      config.CORS{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	return router.New(cfg, stubStorage{})
}

func TestHealth(t *testing.T) {
	h := newRouter(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	h := newRouter(t, "")

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/students", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:5173",
			rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true",
			rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/students", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestStaticFrontend(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(staticDir, "index.html"), []byte("<html>frontend</html>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(staticDir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(staticDir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	h := newRouter(t, staticDir)

	t.Run("catch-all serves entry file", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/some/client/route", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "frontend")
	})

	t.Run("assets served from build directory", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "console.log(1)", rec.Body.String())
	})

	t.Run("non-GET still 404s", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/some/client/route", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNoStaticConfigured(t *testing.T) {
	h := newRouter(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/some/client/route", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
