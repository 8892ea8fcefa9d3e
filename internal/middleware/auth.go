package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/pkg/jwt"
	"github.com/linkfolio/core/internal/pkg/response"
	sessionpkg "github.com/linkfolio/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextKeySession = "access_session"
	// CookieTokenKey is the cookie-session field holding the signed JWT.
	CookieTokenKey = "token"
)

// OptionalAuth resolves the caller session when a valid token is present, but does not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, err := ResolveSession(c, db, extractToken(c)); err == nil {
			c.Set(ContextKeySession, sess)
			c.Request = c.Request.WithContext(access.WithSession(c.Request.Context(), sess))
			sessionpkg.Touch(c.Request.Context(), db, sess.UserID, sess.SessionID)
		}
		c.Next()
	}
}

// Auth blocks requests without a signed-in session. Role checks stay in the services.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// ResolveSession validates a JWT against its persisted login session and loads the user.
func ResolveSession(c *gin.Context, db *gorm.DB, rawToken string) (*access.Session, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := sessionpkg.Lookup(c.Request.Context(), db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, err
	}
	return access.FromUser(user, claims.SessionID), nil
}

// CurrentSession returns the caller session, or nil for anonymous requests.
func CurrentSession(c *gin.Context) *access.Session {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil
	}
	sess, _ := v.(*access.Session)
	return sess
}

// IsAdmin reports whether the request carries an ADMIN session.
func IsAdmin(c *gin.Context) bool {
	return CurrentSession(c).IsAdmin()
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	if v, ok := sessions.Default(c).Get(CookieTokenKey).(string); ok {
		return v
	}
	return ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
