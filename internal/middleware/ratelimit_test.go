package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
	redisx "github.com/linkfolio/core/internal/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(counter Counter, limit int, sess *access.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if sess != nil {
		r.Use(func(c *gin.Context) { c.Set(ContextKeySession, sess) })
	}
	r.PATCH("/links/:id", RateLimit(counter, "clicks", limit, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path, nil))
	return w
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redisx.Connect("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	r := limitedRouter(rc, 3, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/links/a").Code)
	}
	w := hit(r, "/links/a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(r, "/links/b").Code)
}

func TestRateLimitSkipsAdmin(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := redisx.Connect("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	r := limitedRouter(rc, 1, &access.Session{UserID: "a", Role: models.RoleAdmin})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/links/a").Code)
	}
}

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := limitedRouter(failingCounter{}, 1, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/links/a").Code)
	}

	r = limitedRouter(nil, 1, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/links/a").Code)
	}
}
