package auth

import (
	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
)

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// SessionUser is the caller identity returned by GET /auth/session.
type SessionUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type sessionResponse struct {
	User SessionUser `json:"user"`
}

func toSessionResponse(sess *access.Session) *sessionResponse {
	if sess == nil {
		return nil
	}
	return &sessionResponse{User: SessionUser{
		ID:    sess.UserID,
		Name:  sess.Name,
		Email: sess.Email,
		Role:  sess.Role,
	}}
}
