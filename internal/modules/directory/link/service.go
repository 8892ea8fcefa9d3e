package link

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns every link, newest first, with its category.
func (s *Service) List(ctx context.Context) ([]models.LinkModel, error) {
	var items []models.LinkModel
	err := s.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if items == nil {
		items = []models.LinkModel{}
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, sess *access.Session, rawURL, categoryID string) (*models.LinkModel, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	rawURL = strings.TrimSpace(rawURL)
	categoryID = strings.TrimSpace(categoryID)
	if rawURL == "" || categoryID == "" {
		return nil, apperr.Validation("URL and category are required")
	}
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	var l *models.LinkModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := findCategory(tx, categoryID)
		if err != nil {
			return err
		}
		l = &models.LinkModel{URL: rawURL, CategoryID: cat.ID}
		if err := tx.Create(l).Error; err != nil {
			return apperr.Internal(err)
		}
		l.Category = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// CreateBatch creates one link per non-empty line of rawURLs. Each line succeeds or
// fails on its own; only a missing session or category fails the whole call.
func (s *Service) CreateBatch(ctx context.Context, sess *access.Session, rawURLs, categoryID string) (*BatchResult, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, apperr.Validation("URL and category are required")
	}

	lines := splitLines(rawURLs)
	if len(lines) == 0 {
		return nil, apperr.Validation("At least one URL is required")
	}

	db := s.db.WithContext(ctx)
	cat, err := findCategory(db, categoryID)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Results: make([]BatchItem, 0, len(lines))}
	for _, line := range lines {
		item := BatchItem{URL: line}
		if err := validateURL(line); err != nil {
			item.Error = err.Error()
		} else {
			l := models.LinkModel{URL: line, CategoryID: cat.ID}
			if err := db.Create(&l).Error; err != nil {
				item.Error = "Failed to create link"
			} else {
				item.ID = l.ID
			}
		}
		if item.Error == "" {
			result.Created++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, item)
	}
	return result, nil
}

func (s *Service) Delete(ctx context.Context, sess *access.Session, id string) error {
	if err := access.RequireAdmin(sess); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.LinkModel{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Link")
	}
	return nil
}

// IncrementClicks bumps the click counter in SQL and returns the updated link. Open to anonymous callers.
func (s *Service) IncrementClicks(ctx context.Context, id string) (*models.LinkModel, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.LinkModel{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Link")
	}

	var l models.LinkModel
	if err := db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Link")
		}
		return nil, apperr.Internal(err)
	}
	return &l, nil
}

func findCategory(tx *gorm.DB, id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := tx.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category")
		}
		return nil, apperr.Internal(err)
	}
	return &cat, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return apperr.Validation("Invalid URL")
	}
	return nil
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
