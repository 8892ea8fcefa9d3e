package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/linkfolio/core/internal/pkg/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Upsert returns the tags for names, creating the missing ones.
func (s *Service) Upsert(ctx context.Context, names []string) ([]models.TagModel, error) {
	return UpsertAll(s.db.WithContext(ctx), names)
}

// UpsertAll resolves names to tags on tx. Blank names are skipped and names
// that share a slug collapse to one tag, so calling it twice yields the same rows.
func UpsertAll(tx *gorm.DB, names []string) ([]models.TagModel, error) {
	wanted, err := normalizeNames(names)
	if err != nil {
		return nil, err
	}

	tags := make([]models.TagModel, 0, len(wanted))
	for _, w := range wanted {
		candidate := models.TagModel{Name: w.name, Slug: w.slug}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&candidate).Error
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("upsert tag %q: %w", w.name, err))
		}

		var stored models.TagModel
		if err := tx.Where("slug = ?", w.slug).First(&stored).Error; err != nil {
			return nil, apperr.Internal(fmt.Errorf("load tag %q: %w", w.slug, err))
		}
		tags = append(tags, stored)
	}
	return tags, nil
}

type tagName struct {
	name string
	slug string
}

func normalizeNames(names []string) ([]tagName, error) {
	out := make([]tagName, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		s := slug.Generate(name)
		if s == "" {
			return nil, apperr.Validation(fmt.Sprintf("Tag %q must contain a letter or digit", name))
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, tagName{name: name, slug: s})
	}
	return out, nil
}

// List returns every tag ordered by name.
func (s *Service) List(ctx context.Context) ([]models.TagModel, error) {
	var tags []models.TagModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tags, nil
}
