// Package access holds the caller identity threaded through every service call
// and the single permission rule applied to mutating operations.
package access

import (
	"context"

	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
)

// Session is the resolved identity of the caller. A nil *Session is an anonymous visitor.
type Session struct {
	UserID    string
	SessionID string
	Name      string
	Email     string
	Role      models.Role
}

// FromUser builds a Session for an authenticated user.
func FromUser(u *models.UserModel, sessionID string) *Session {
	if u == nil {
		return nil
	}
	return &Session{
		UserID:    u.ID,
		SessionID: sessionID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// IsAdmin reports whether the session belongs to an ADMIN user.
func (s *Session) IsAdmin() bool {
	return s != nil && s.UserID != "" && s.Role == models.RoleAdmin
}

// RequireAdmin returns an Unauthorized error unless sess is an ADMIN session.
// Callers check it before touching storage.
func RequireAdmin(sess *Session) error {
	if !sess.IsAdmin() {
		return apperr.Unauthorized("")
	}
	return nil
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session stored in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKey{}).(*Session)
	return sess
}
