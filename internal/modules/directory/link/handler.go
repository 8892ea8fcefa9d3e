package link

import (
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts link routes. clickLimit guards the anonymous click counter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, clickLimit gin.HandlerFunc) {
	g := rg.Group("/links")

	g.GET("", h.list)
	g.PATCH("/:id", clickLimit, h.click)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.POST("/batch", h.createBatch)
	a.DELETE("/:id", h.delete)
}

// GET /links
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// POST /links  [admin]
func (h *Handler) create(c *gin.Context) {
	var dto CreateLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	l, err := h.svc.Create(c.Request.Context(), middleware.CurrentSession(c), dto.URL, dto.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, l)
}

// POST /links/batch  [admin]
func (h *Handler) createBatch(c *gin.Context) {
	var dto BatchLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.CreateBatch(c.Request.Context(), middleware.CurrentSession(c), dto.URLs, dto.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// DELETE /links/:id  [admin]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// PATCH /links/:id
func (h *Handler) click(c *gin.Context) {
	l, err := h.svc.IncrementClicks(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, l)
}
