package category

import (
	"context"
	"errors"
	"strings"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListWithLinks returns every category by name, each with all of its links.
func (s *Service) ListWithLinks(ctx context.Context) ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	err := s.db.WithContext(ctx).
		Preload("Links", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("name ASC").
		Find(&cats).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for i := range cats {
		if cats[i].Links == nil {
			cats[i].Links = []models.LinkModel{}
		}
	}
	return cats, nil
}

func (s *Service) Create(ctx context.Context, sess *access.Session, name string) (*models.CategoryModel, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Name is required")
	}

	cat := models.CategoryModel{Name: name, Links: []models.LinkModel{}}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Category already exists")
		}
		return nil, apperr.Internal(err)
	}
	return &cat, nil
}

// Delete removes a category together with its links.
func (s *Service) Delete(ctx context.Context, sess *access.Session, id string) error {
	if err := access.RequireAdmin(sess); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.CategoryModel
		if err := tx.Select("id").First(&cat, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", cat.ID).Delete(&models.LinkModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CategoryModel{}, "id = ?", cat.ID).Error
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("Category")
	default:
		return apperr.Internal(err)
	}
}
