// Package authapi is the HTTP face of the authentication session:
// login, logout and the current-session probe the admin panel polls on
// load.
package authapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauro-rocha/portfolio-backend/internal/auth"
)

type Handler struct {
	session *auth.Session
}

func New(session *auth.Session) *Handler {
	return &Handler{session: session}
}

func (h *Handler) Register(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/login", limit, h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/session", h.getSession)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	OK    bool       `json:"ok"`
	User  *auth.User `json:"user,omitempty"`
	Token string     `json:"token,omitempty"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.session.Login(c.Request.Context(), req.Email, req.Password) {
		// Invalid credentials, outage and missing backend all look the
		// same from here.
		c.JSON(http.StatusUnauthorized, loginResponse{OK: false})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		OK:    true,
		User:  h.session.Current(),
		Token: h.session.IDToken(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.session.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getSession(c *gin.Context) {
	u := h.session.Current()
	c.JSON(http.StatusOK, gin.H{
		"authenticated": u != nil,
		"user":          u,
	})
}
