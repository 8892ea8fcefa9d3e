package post

import (
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/pkg/pagination"
	"github.com/linkfolio/core/internal/pkg/response"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public post routes and the admin editor routes.
// viewLimit guards the view-counting read.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, viewLimit gin.HandlerFunc) {
	posts := rg.Group("/posts")
	posts.GET("", h.list)
	posts.GET("/:slug", viewLimit, h.getBySlug)

	admin := rg.Group("/admin/posts", authMW)
	admin.GET("", h.adminList)
	admin.GET("/:id", h.adminGet)
	admin.POST("", h.create)
	admin.PATCH("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Query:    pagination.FromContext(c),
		Tag:      c.Query("tag"),
		Featured: c.Query("featured") == "true",
	}

	posts, meta, err := h.svc.ListPublished(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"posts": posts, "meta": meta})
}

// getBySlug GET /posts/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	post, err := h.svc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// adminList GET /admin/posts  [admin]
func (h *Handler) adminList(c *gin.Context) {
	posts, err := h.svc.ListForAdmin(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"posts": posts})
}

// adminGet GET /admin/posts/:id  [admin]
func (h *Handler) adminGet(c *gin.Context) {
	post, err := h.svc.Get(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"post": post})
}

// create POST /admin/posts  [admin]
func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Create(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"post": post})
}

// update PATCH /admin/posts/:id  [admin]
func (h *Handler) update(c *gin.Context) {
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"post": post})
}

// delete DELETE /admin/posts/:id  [admin]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Post deleted successfully"})
}
