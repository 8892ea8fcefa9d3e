package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds parsed pagination parameters. Page is 1-based.
type Query struct {
	Page  int
	Limit int
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	return Normalize(
		parseIntOr(c.DefaultQuery("page", "1"), DefaultPage),
		parseIntOr(c.DefaultQuery("limit", "10"), DefaultLimit),
	)
}

// Normalize clamps page and limit into their valid ranges.
func Normalize(page, limit int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Query{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
func (q Query) Offset() int { return (q.Page - 1) * q.Limit }

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Paginate applies limit/offset to a GORM query and returns the pagination metadata.
// Preloads are applied to the page query only.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T, preloads ...string) (response.Meta, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Meta{}, err
	}

	find := db.Session(&gorm.Session{})
	for _, p := range preloads {
		find = find.Preload(p)
	}
	if err := find.Offset(q.Offset()).Limit(q.Limit).Find(dest).Error; err != nil {
		return response.Meta{}, err
	}

	return response.Meta{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: TotalPages(total, q.Limit),
	}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
