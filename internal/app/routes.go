package app

import (
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/modules/auth"
	"github.com/linkfolio/core/internal/modules/content/post"
	"github.com/linkfolio/core/internal/modules/content/tag"
	"github.com/linkfolio/core/internal/modules/directory/category"
	"github.com/linkfolio/core/internal/modules/directory/link"
	"github.com/linkfolio/core/internal/modules/system/health"
	"github.com/linkfolio/core/internal/modules/system/settings"
	"github.com/linkfolio/core/internal/modules/system/stats"
	"github.com/linkfolio/core/internal/pkg/response"
)

const apiPrefix = "/api"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	var counter middleware.Counter
	if a.rc != nil {
		counter = a.rc
	}
	window := a.cfg.RateLimitWindow()
	clickLimit := middleware.RateLimit(counter, "clicks", a.cfg.RateLimit.Clicks, window)
	viewLimit := middleware.RateLimit(counter, "views", a.cfg.RateLimit.Views, window)

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))

	var pinger health.Pinger
	if a.rc != nil {
		pinger = a.rc
	}
	health.NewHandler(db, pinger, a.cfg.LogDir()).RegisterRoutes(api, authMW)

	auth.NewHandler(auth.NewService(db, auth.Options{FailureDelay: loginFailureDelay(a.cfg)})).
		RegisterRoutes(api, authMW)

	post.NewHandler(post.NewService(db, post.Options{SanitizeHTML: a.cfg.Content.SanitizeHTML})).
		RegisterRoutes(api, authMW, viewLimit)
	tag.NewHandler(tag.NewService(db)).RegisterRoutes(api)

	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	link.NewHandler(link.NewService(db)).RegisterRoutes(api, authMW, clickLimit)

	settings.NewHandler(settings.NewService(db)).RegisterRoutes(api, authMW)
	stats.NewHandler(stats.NewService(db)).RegisterRoutes(api, authMW)
}
