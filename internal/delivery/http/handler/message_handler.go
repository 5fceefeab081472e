package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/message"
)

type MessageHandler struct {
	messageUseCase *message.MessageUseCase
}

func NewMessageHandler(messageUseCase *message.MessageUseCase) *MessageHandler {
	return &MessageHandler{messageUseCase: messageUseCase}
}

// Send handles POST /messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req message.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.messageUseCase.Send(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot message yourself"})
		case errors.Is(err, domain.ErrConnectionNotAccepted):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "no accepted connection with this user"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListThread handles GET /messages/:user_id
func (h *MessageHandler) ListThread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	otherUserID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messageUseCase.ListThread(c.Request.Context(), userID, otherUserID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MarkRead handles POST /messages/:user_id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	otherUserID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	marked, err := h.messageUseCase.MarkThreadRead(c.Request.Context(), userID, otherUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// UnreadCount handles GET /messages/unread/count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.messageUseCase.CountUnread(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to count unread messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
