package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentify-backend-go/internal/core"
	"rentify-backend-go/internal/models"
)

// MessageHandler serves the chat endpoints. Clients poll; nothing here
// pushes.
type MessageHandler struct {
	messages core.MessageService
	logger   *zap.Logger
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(messages core.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// Conversations handles GET /messages/conversations.
func (h *MessageHandler) Conversations(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	conversations, err := h.messages.ListConversations(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// ListWith handles GET /messages/:otherUserId.
func (h *MessageHandler) ListWith(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	messages, err := h.messages.ListBetween(c.Request.Context(), uid, c.Param("otherUserId"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Send handles POST /messages.
func (h *MessageHandler) Send(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	message, err := h.messages.Send(c.Request.Context(), uid, req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}
