package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/settings", h.list)

	a := rg.Group("/admin/settings", authMW)
	a.GET("", h.listAdmin)
	a.POST("", h.set)
}

func (h *Handler) list(c *gin.Context) {
	values, err := h.svc.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"settings": values})
}

func (h *Handler) listAdmin(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		response.Unauthorized(c)
		return
	}
	h.list(c)
}

type setDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) set(c *gin.Context) {
	var dto setDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	row, err := h.svc.Set(c.Request.Context(), middleware.CurrentSession(c), dto.Key, dto.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"setting": row})
}
