package tag

import (
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.list)
}

// list GET /tags
func (h *Handler) list(c *gin.Context) {
	tags, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"tags": tags})
}
