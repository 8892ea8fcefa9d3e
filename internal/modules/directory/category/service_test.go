package category

import (
	"context"
	"testing"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/config"
	"github.com/linkfolio/core/internal/database"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseRuntimeConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

var admin = &access.Session{UserID: "admin-1", Role: models.RoleAdmin}

func TestCreate(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	cat, err := svc.Create(ctx, admin, "  Tools ")
	require.NoError(t, err)
	assert.Equal(t, "Tools", cat.Name)
	assert.NotEmpty(t, cat.ID)

	_, err = svc.Create(ctx, admin, "Tools")
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = svc.Create(ctx, admin, "   ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(ctx, &access.Session{UserID: "u", Role: models.RoleUser}, "Other")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Create(ctx, nil, "Other")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestDeleteCascadesLinks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	doomed, err := svc.Create(ctx, admin, "Doomed")
	require.NoError(t, err)
	kept, err := svc.Create(ctx, admin, "Kept")
	require.NoError(t, err)
	require.NoError(t, db.Create(&[]models.LinkModel{
		{URL: "https://a.example", CategoryID: doomed.ID},
		{URL: "https://b.example", CategoryID: doomed.ID},
		{URL: "https://c.example", CategoryID: kept.ID},
	}).Error)

	require.NoError(t, svc.Delete(ctx, admin, doomed.ID))

	var links []models.LinkModel
	require.NoError(t, db.Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, kept.ID, links[0].CategoryID)

	err = svc.Delete(ctx, admin, doomed.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = svc.Delete(ctx, nil, kept.ID)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestListWithLinks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	b, err := svc.Create(ctx, admin, "Beta")
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, "Alpha")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.LinkModel{URL: "https://go.dev", CategoryID: b.ID}).Error)

	cats, err := svc.ListWithLinks(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Alpha", cats[0].Name)
	assert.NotNil(t, cats[0].Links)
	assert.Empty(t, cats[0].Links)
	require.Len(t, cats[1].Links, 1)
	assert.Equal(t, "https://go.dev", cats[1].Links[0].URL)
}
