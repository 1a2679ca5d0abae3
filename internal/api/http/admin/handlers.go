// Package admin exposes the content-editing surface. Every route sits
// behind the session middleware; the handlers translate HTTP into the
// sync context's boolean-returning mutations.
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mauro-rocha/portfolio-backend/internal/content"
	"github.com/mauro-rocha/portfolio-backend/internal/sitedata"
)

type Handler struct {
	data *sitedata.Data
}

func New(data *sitedata.Data) *Handler {
	return &Handler{data: data}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	// Navigating to the admin surface opens the remote subscriptions
	// immediately, so the editor always works against live data.
	rg.Use(func(c *gin.Context) {
		h.data.EnsureStarted()
		c.Next()
	})

	rg.POST("/projects", h.addProject)
	rg.PUT("/projects/:id", h.updateProject)
	rg.DELETE("/projects/:id", h.deleteProject)

	rg.POST("/services", h.addService)
	rg.PUT("/services/:id", h.updateService)
	rg.DELETE("/services/:id", h.deleteService)

	rg.PUT("/content/:section", h.updateContent)
}

type resultResponse struct {
	OK bool `json:"ok"`
}

func respond(c *gin.Context, ok bool) {
	status := http.StatusOK
	if !ok {
		status = http.StatusBadGateway
	}
	c.JSON(status, resultResponse{OK: ok})
}

func (h *Handler) addProject(c *gin.Context) {
	var p content.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, h.data.AddProject(c.Request.Context(), p))
}

func (h *Handler) updateProject(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var p content.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = id
	respond(c, h.data.UpdateProject(c.Request.Context(), p))
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	respond(c, h.data.DeleteProject(c.Request.Context(), id))
}

func (h *Handler) addService(c *gin.Context) {
	var s content.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, h.data.AddService(c.Request.Context(), s))
}

func (h *Handler) updateService(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var s content.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ID = id
	respond(c, h.data.UpdateService(c.Request.Context(), s))
}

func (h *Handler) deleteService(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	respond(c, h.data.DeleteService(c.Request.Context(), id))
}

// updateContent decodes the body into the closed patch type for the
// named section; unknown sections are a 400, not a silent write.
func (h *Handler) updateContent(c *gin.Context) {
	patch, err := decodePatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, h.data.UpdateContent(c.Request.Context(), patch))
}

func decodePatch(c *gin.Context) (content.SectionPatch, error) {
	switch c.Param("section") {
	case content.SectionHero:
		var p content.HeroPatch
		if err := c.ShouldBindJSON(&p); err != nil {
			return nil, err
		}
		return p, nil
	case content.SectionAbout:
		var p content.AboutPatch
		if err := c.ShouldBindJSON(&p); err != nil {
			return nil, err
		}
		return p, nil
	case content.SectionContact:
		var p content.ContactPatch
		if err := c.ShouldBindJSON(&p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, errors.New("unknown content section")
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
