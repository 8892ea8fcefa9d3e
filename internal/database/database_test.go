package database

import (
	"context"
	"testing"

	"github.com/linkfolio/core/internal/config"
	"github.com/linkfolio/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseRuntimeConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseRuntimeConfig{Driver: "oracle"}, logger.Silent)
	assert.Error(t, err)
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)
	for _, table := range []string{"users", "user_sessions", "categories", "links", "posts", "tags", "post_tags", "settings"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestDuplicateKeyTranslated(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.CategoryModel{Name: "Go"}).Error)
	err := db.Create(&models.CategoryModel{Name: "Go"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestEnsureAdmin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, created, err := EnsureAdmin(ctx, db, " Owner@Example.com ", "first-pass", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "Admin", user.Name)

	// Existing plain user gets promoted and the password reset.
	require.NoError(t, db.Model(&models.UserModel{}).Where("id = ?", user.ID).Update("role", models.RoleUser).Error)
	_, created, err = EnsureAdmin(ctx, db, "owner@example.com", "second-pass", "Owner")
	require.NoError(t, err)
	assert.False(t, created)

	var stored models.UserModel
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.Equal(t, "Owner", stored.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("second-pass")))

	_, _, err = EnsureAdmin(ctx, db, "", "x", "")
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, nil))
	require.NoError(t, Seed(ctx, db, nil))

	var users, categories, links int64
	db.Model(&models.UserModel{}).Count(&users)
	db.Model(&models.CategoryModel{}).Count(&categories)
	db.Model(&models.LinkModel{}).Count(&links)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(4), categories)
	assert.Equal(t, int64(2), links)
}
