package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/service"
)

// ChatHandler is the handler for grocery-chat requests.
type ChatHandler struct {
	Service *service.ChatService
}

// NewChatHandler is the constructor function for initializing a new ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{Service: chatService}
}

// Chat handles POST /v1/chat/grocery. The response body is plain text:
// the composed answer followed by the framed profile JSON.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Query  string `json:"query" binding:"required"`
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query field is required"})
		return
	}

	result, err := h.Service.Chat(c.Request.Context(), req.UserID, req.Query)
	if err != nil {
		logger.WithRequestID(c.GetString("request_id")).
			Error("chat failed", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(result.WithProfileJSON()))
}
