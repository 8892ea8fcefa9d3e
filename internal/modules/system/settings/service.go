// Package settings stores site-wide presentation settings under a fixed set of keys.
package settings

import (
	"context"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	KeySiteTitle       = "siteTitle"
	KeySiteDescription = "siteDescription"
	KeyFaviconURL      = "faviconUrl"
)

// AllowedKeys lists every key accepted by Set.
var AllowedKeys = []string{KeySiteTitle, KeySiteDescription, KeyFaviconURL}

// IsAllowed reports whether key may be stored.
func IsAllowed(key string) bool {
	for _, k := range AllowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get returns stored values for the requested keys, or for every allowed key when none are given.
// Keys outside the allow-list and keys never set are absent from the result.
func (s *Service) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	wanted := make([]interface{}, 0, len(AllowedKeys))
	if len(keys) == 0 {
		keys = AllowedKeys
	}
	for _, k := range keys {
		if IsAllowed(k) {
			wanted = append(wanted, k)
		}
	}

	out := make(map[string]string, len(wanted))
	if len(wanted) == 0 {
		return out, nil
	}

	var rows []models.SettingModel
	err := s.db.WithContext(ctx).
		Clauses(clause.Where{Exprs: []clause.Expression{
			clause.IN{Column: clause.Column{Name: "key"}, Values: wanted},
		}}).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Set upserts one allowed key.
func (s *Service) Set(ctx context.Context, sess *access.Session, key, value string) (*models.SettingModel, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	if !IsAllowed(key) {
		return nil, apperr.Validation("Invalid setting key")
	}

	db := s.db.WithContext(ctx)
	row := models.SettingModel{Key: key, Value: value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// The conflict path leaves row.ID as the freshly generated one; reload the stored row.
	var stored models.SettingModel
	if err := db.Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&stored).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &stored, nil
}
