package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.Validation("Title and content are required"), http.StatusBadRequest, "Title and content are required"},
		{"unauthorized", apperr.Unauthorized(""), http.StatusUnauthorized, "Unauthorized"},
		{"not found", apperr.NotFound("Post"), http.StatusNotFound, "Post not found"},
		{"conflict", apperr.Conflict("Category already exists"), http.StatusConflict, "Category already exists"},
		{"internal", apperr.Internal(errors.New("db down")), http.StatusInternalServerError, "Internal server error"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.True(t, c.IsAborted())
		})
	}
}

func TestErrorRecordsInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperr.Internal(errors.New("db down")))
	assert.Len(t, c.Errors, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, apperr.NotFound("Link"))
	assert.Empty(t, c.Errors)
}
