package auth

import (
	"context"
	"testing"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/config"
	"github.com/linkfolio/core/internal/database"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/linkfolio/core/internal/pkg/jwt"
	sessionpkg "github.com/linkfolio/core/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "s3cret-pass"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	jwt.SetSecret("test-secret")
	db, err := database.Open(config.DatabaseRuntimeConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.UserModel {
	t.Helper()
	u, _, err := database.EnsureAdmin(context.Background(), db, testEmail, testPassword, "Admin")
	require.NoError(t, err)
	return u
}

func sessionFor(t *testing.T, db *gorm.DB, token string) *access.Session {
	t.Helper()
	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	u, err := sessionpkg.Lookup(context.Background(), db, claims.UserID, claims.SessionID)
	require.NoError(t, err)
	return access.FromUser(u, claims.SessionID)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewService(db, Options{})
	ctx := context.Background()

	token, err := svc.Login(ctx, "  ADMIN@example.com ", testPassword, "127.0.0.1", "test")
	require.NoError(t, err)

	sess := sessionFor(t, db, token)
	assert.Equal(t, admin.ID, sess.UserID)
	assert.True(t, sess.IsAdmin())

	_, err = svc.Login(ctx, testEmail, "wrong", "", "")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	wrongPassword := err.Error()

	_, err = svc.Login(ctx, "nobody@example.com", testPassword, "", "")
	require.Error(t, err)
	assert.Equal(t, wrongPassword, err.Error())

	_, err = svc.Login(ctx, "", "", "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestLogoutRevokesSession(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db)
	svc := NewService(db, Options{})
	ctx := context.Background()

	token, err := svc.Login(ctx, testEmail, testPassword, "", "")
	require.NoError(t, err)
	sess := sessionFor(t, db, token)

	require.NoError(t, svc.Logout(ctx, sess))
	_, err = sessionpkg.Lookup(ctx, db, sess.UserID, sess.SessionID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.True(t, apperr.Is(svc.Logout(ctx, sess), apperr.KindUnauthorized))
	assert.True(t, apperr.Is(svc.Logout(ctx, nil), apperr.KindUnauthorized))
}

func TestLogoutAll(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db)
	svc := NewService(db, Options{})
	ctx := context.Background()

	first, err := svc.Login(ctx, testEmail, testPassword, "", "")
	require.NoError(t, err)
	second, err := svc.Login(ctx, testEmail, testPassword, "", "")
	require.NoError(t, err)
	sess := sessionFor(t, db, first)
	other := sessionFor(t, db, second)

	require.NoError(t, svc.LogoutAll(ctx, sess))
	_, err = sessionpkg.Lookup(ctx, db, other.UserID, other.SessionID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
