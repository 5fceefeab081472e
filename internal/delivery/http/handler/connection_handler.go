package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/connection"
)

type ConnectionHandler struct {
	connectionUseCase *connection.ConnectionUseCase
}

func NewConnectionHandler(connectionUseCase *connection.ConnectionUseCase) *ConnectionHandler {
	return &ConnectionHandler{connectionUseCase: connectionUseCase}
}

type createConnectionRequest struct {
	ReceiverID int `json:"receiver_id" binding:"required"`
}

// Create handles POST /connections
func (h *ConnectionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	conn, err := h.connectionUseCase.Request(c.Request.Context(), userID, req.ReceiverID)
	if err != nil {
		switch err {
		case domain.ErrCannotConnectSelf:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot connect to yourself"})
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "receiver not found"})
		case domain.ErrConnectionExists:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "connection already exists"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create connection"})
		}
		return
	}

	c.JSON(http.StatusCreated, conn)
}

// Accept handles POST /connections/:id/accept
func (h *ConnectionHandler) Accept(c *gin.Context) {
	h.respond(c, func(userID, connID int) (interface{}, error) {
		return h.connectionUseCase.Accept(c.Request.Context(), userID, connID)
	})
}

// Reject handles POST /connections/:id/reject
func (h *ConnectionHandler) Reject(c *gin.Context) {
	h.respond(c, func(userID, connID int) (interface{}, error) {
		return h.connectionUseCase.Reject(c.Request.Context(), userID, connID)
	})
}

// Block handles POST /connections/:id/block
func (h *ConnectionHandler) Block(c *gin.Context) {
	h.respond(c, func(userID, connID int) (interface{}, error) {
		return h.connectionUseCase.Block(c.Request.Context(), userID, connID)
	})
}

func (h *ConnectionHandler) respond(c *gin.Context, transition func(userID, connID int) (interface{}, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	connID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid connection id"})
		return
	}

	result, err := transition(userID, connID)
	if err != nil {
		switch err {
		case domain.ErrConnectionNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "connection not found"})
		case domain.ErrNotConnectionReceiver:
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "only the receiver can respond"})
		case domain.ErrConnectionNotPending:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "connection already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update connection"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListIncoming handles GET /connections/incoming
func (h *ConnectionHandler) ListIncoming(c *gin.Context) {
	h.list(c, h.connectionUseCase.ListIncoming)
}

// ListOutgoing handles GET /connections/outgoing
func (h *ConnectionHandler) ListOutgoing(c *gin.Context) {
	h.list(c, h.connectionUseCase.ListOutgoing)
}

// ListAccepted handles GET /connections
func (h *ConnectionHandler) ListAccepted(c *gin.Context) {
	h.list(c, h.connectionUseCase.ListAccepted)
}

func (h *ConnectionHandler) list(c *gin.Context, fn func(ctx context.Context, userID int) ([]*connection.ConnectionResponse, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	responses, err := fn(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list connections"})
		return
	}
	c.JSON(http.StatusOK, responses)
}
