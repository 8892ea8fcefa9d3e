package access

import (
	"context"
	"testing"

	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		sess    *Session
		wantErr bool
	}{
		{name: "anonymous", sess: nil, wantErr: true},
		{name: "plain user", sess: &Session{UserID: "u1", Role: models.RoleUser}, wantErr: true},
		{name: "admin role without user", sess: &Session{Role: models.RoleAdmin}, wantErr: true},
		{name: "admin", sess: &Session{UserID: "u1", Role: models.RoleAdmin}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.sess)
			if tt.wantErr {
				assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFromUser(t *testing.T) {
	assert.Nil(t, FromUser(nil, "s"))

	u := &models.UserModel{Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin}
	u.ID = "u1"
	sess := FromUser(u, "s1")
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "s1", sess.SessionID)
	assert.True(t, sess.IsAdmin())
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))

	sess := &Session{UserID: "u1", Role: models.RoleUser}
	assert.Same(t, sess, FromContext(WithSession(ctx, sess)))
}
