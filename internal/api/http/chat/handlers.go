// Package chat fronts the Gemini assistant for the site's chat widget.
package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauro-rocha/portfolio-backend/internal/assistant"
)

type Handler struct {
	bot *assistant.Assistant
}

func New(bot *assistant.Assistant) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) Register(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/chat", limit, h.chat)
}

type chatRequest struct {
	History []assistant.Message `json:"history"`
	Message string              `json:"message" binding:"required"`
}

type chatResponse struct {
	Text string `json:"text"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reply never fails; worst case is a canned apology.
	c.JSON(http.StatusOK, chatResponse{
		Text: h.bot.Reply(c.Request.Context(), req.History, req.Message),
	})
}
