package auth

import (
	"github.com/gin-contrib/sessions"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/login", h.login)
	a.GET("/session", h.session)
	a.POST("/logout", authMW, h.logout)
	a.DELETE("/sessions", authMW, h.logoutAll)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCookieToken(c, token)
	response.OK(c, loginResponse{Token: token})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	setCookieToken(c, "")
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) logoutAll(c *gin.Context) {
	if err := h.svc.LogoutAll(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	setCookieToken(c, "")
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) session(c *gin.Context) {
	response.OK(c, gin.H{"session": toSessionResponse(middleware.CurrentSession(c))})
}

// setCookieToken stores token in the cookie session, or clears it when token is empty.
// It does nothing when the cookie store is not mounted.
func setCookieToken(c *gin.Context, token string) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return
	}
	s := sessions.Default(c)
	if token == "" {
		s.Delete(middleware.CookieTokenKey)
	} else {
		s.Set(middleware.CookieTokenKey, token)
	}
	_ = s.Save()
}
