package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linkfolio/core/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "admin123"
)

var seedCategories = []string{"Development", "Design", "Productivity", "Learning"}

var seedLinks = map[string][]string{
	"Development": {"https://github.com", "https://stackoverflow.com"},
}

// EnsureAdmin creates an ADMIN user, or promotes the existing user with that email
// and resets its password and name. It reports whether a new row was created.
func EnsureAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (*models.UserModel, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, false, errors.New("email and password are required")
	}
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	var user models.UserModel
	err = db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if err := db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
			"password": string(hash),
			"role":     models.RoleAdmin,
			"name":     name,
		}).Error; err != nil {
			return nil, false, fmt.Errorf("promote user: %w", err)
		}
		return &user, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.UserModel{
			Name:     name,
			Email:    email,
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, false, fmt.Errorf("create admin: %w", err)
		}
		return &user, true, nil
	default:
		return nil, false, err
	}
}

// Seed creates the default admin plus sample categories and links. Running it twice is a no-op.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.UserModel{}).Where("email = ?", SeedAdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count == 0 {
		if _, _, err := EnsureAdmin(ctx, db, SeedAdminEmail, SeedAdminPassword, "Admin"); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info("seeded default admin user", zap.String("email", SeedAdminEmail))
	} else {
		log.Info("admin user already exists, skipping")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range seedCategories {
			var cat models.CategoryModel
			if err := tx.Where(models.CategoryModel{Name: name}).FirstOrCreate(&cat).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}

			urls := seedLinks[name]
			if len(urls) == 0 {
				continue
			}
			var existing int64
			if err := tx.Model(&models.LinkModel{}).Where("category_id = ?", cat.ID).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}
			links := make([]models.LinkModel, 0, len(urls))
			for _, u := range urls {
				links = append(links, models.LinkModel{URL: u, CategoryID: cat.ID})
			}
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("seed links: %w", err)
			}
		}
		log.Info("seeded sample categories and links", zap.Int("categories", len(seedCategories)))
		return nil
	})
}
