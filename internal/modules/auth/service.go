// Package auth signs users in and out. A sign-in issues a JWT bound to a user_sessions row.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	sessionpkg "github.com/linkfolio/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid email or password"

type Options struct {
	// FailureDelay slows down failed sign-ins.
	FailureDelay time.Duration
	SessionTTL   time.Duration
}

type Service struct {
	db   *gorm.DB
	opts Options
}

func NewService(db *gorm.DB, opts Options) *Service {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = sessionpkg.DefaultTTL
	}
	return &Service{db: db, opts: opts}
}

// Login checks the credentials and returns a signed token. Unknown email and wrong password
// produce the same error.
func (s *Service) Login(ctx context.Context, email, password, ip, ua string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperr.Validation("Email and password are required")
	}

	var u models.UserModel
	if err := s.db.WithContext(ctx).Select("id, password").
		Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.delay(ctx)
			return "", apperr.Unauthorized(invalidCredentials)
		}
		return "", apperr.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.delay(ctx)
		return "", apperr.Unauthorized(invalidCredentials)
	}

	token, _, err := sessionpkg.Issue(ctx, s.db, u.ID, ip, ua, s.opts.SessionTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

// Logout revokes the session the caller signed in with.
func (s *Service) Logout(ctx context.Context, sess *access.Session) error {
	if sess == nil || sess.SessionID == "" {
		return apperr.Unauthorized("")
	}
	if err := sessionpkg.Revoke(ctx, s.db, sess.UserID, sess.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthorized("")
		}
		return apperr.Internal(err)
	}
	return nil
}

// LogoutAll revokes every open session of the caller.
func (s *Service) LogoutAll(ctx context.Context, sess *access.Session) error {
	if sess == nil || sess.UserID == "" {
		return apperr.Unauthorized("")
	}
	if err := sessionpkg.RevokeAll(ctx, s.db, sess.UserID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) delay(ctx context.Context) {
	if s.opts.FailureDelay <= 0 {
		return
	}
	t := time.NewTimer(s.opts.FailureDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
