// Package stats serves the admin dashboard counters.
package stats

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/linkfolio/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Summary struct {
	Categories  int64 `json:"categories"`
	Links       int64 `json:"links"`
	Posts       int64 `json:"posts"`
	Published   int64 `json:"published"`
	Tags        int64 `json:"tags"`
	TotalViews  int64 `json:"totalViews"`
	TotalClicks int64 `json:"totalClicks"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Summary(ctx context.Context, sess *access.Session) (*Summary, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var out Summary
	counts := []struct {
		model interface{}
		where string
		dest  *int64
	}{
		{&models.CategoryModel{}, "", &out.Categories},
		{&models.LinkModel{}, "", &out.Links},
		{&models.PostModel{}, "", &out.Posts},
		{&models.PostModel{}, "published = ?", &out.Published},
		{&models.TagModel{}, "", &out.Tags},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, true)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}

	if err := db.Model(&models.PostModel{}).Select("COALESCE(SUM(view_count), 0)").Scan(&out.TotalViews).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if err := db.Model(&models.LinkModel{}).Select("COALESCE(SUM(clicks), 0)").Scan(&out.TotalClicks).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &out, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/admin/stats", authMW, h.summary)
}

func (h *Handler) summary(c *gin.Context) {
	out, err := h.svc.Summary(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}
