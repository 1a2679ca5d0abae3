// Package site serves the public read side of the page: project list,
// services and editable content, straight from the sync context's
// in-memory snapshot.
package site

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauro-rocha/portfolio-backend/internal/sitedata"
)

type Handler struct {
	data *sitedata.Data
}

func New(data *sitedata.Data) *Handler {
	return &Handler{data: data}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.listProjects)
	rg.GET("/services", h.listServices)
	rg.GET("/content", h.getContent)
}

func (h *Handler) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Projects())
}

func (h *Handler) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Services())
}

func (h *Handler) getContent(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Content())
}
