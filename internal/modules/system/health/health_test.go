package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/config"
	"github.com/linkfolio/core/internal/database"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newRouter(t *testing.T, redis Pinger, logDir string, admin bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.Open(config.DatabaseRuntimeConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	r := gin.New()
	if admin {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeySession, &access.Session{UserID: "a", Role: models.RoleAdmin})
		})
	}
	NewHandler(db, redis, logDir).RegisterRoutes(r.Group("/api"), middleware.Auth())
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(newRouter(t, nil, t.TempDir(), false), "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":true}`, w.Body.String())

	w = get(newRouter(t, stubPinger{}, t.TempDir(), false), "/api/health")
	assert.JSONEq(t, `{"status":"ok","database":true,"redis":true}`, w.Body.String())

	w = get(newRouter(t, stubPinger{err: errors.New("down")}, t.TempDir(), false), "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","database":true,"redis":false}`, w.Body.String())
}

func TestLogs(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "stdout_1-1-26.log")
	newer := filepath.Join(dir, "stdout_1-2-26.log")
	require.NoError(t, os.WriteFile(older, []byte("old\n"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("new\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	assert.Equal(t, http.StatusUnauthorized, get(newRouter(t, nil, dir, false), "/api/admin/logs").Code)

	r := newRouter(t, nil, dir, true)
	w := get(r, "/api/admin/logs")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Logs []LogFile `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Logs, 2)
	assert.Equal(t, "stdout_1-2-26.log", body.Logs[0].Filename)

	w = get(r, "/api/admin/logs/stdout_1-1-26.log")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old\n", w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(r, "/api/admin/logs/stdout_9-9-99.log").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/admin/logs/notes.txt").Code)
}

func TestListLogFilesMissingDir(t *testing.T) {
	files, err := ListLogFiles(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
