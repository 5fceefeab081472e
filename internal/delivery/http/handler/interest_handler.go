package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/interest"
)

type InterestHandler struct {
	interestUseCase *interest.InterestUseCase
}

func NewInterestHandler(interestUseCase *interest.InterestUseCase) *InterestHandler {
	return &InterestHandler{interestUseCase: interestUseCase}
}

// ListRoots handles GET /interests
func (h *InterestHandler) ListRoots(c *gin.Context) {
	interests, err := h.interestUseCase.ListRoots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list interests"})
		return
	}
	c.JSON(http.StatusOK, interests)
}

// ListChildren handles GET /interests/:id/children
func (h *InterestHandler) ListChildren(c *gin.Context) {
	parentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interest id"})
		return
	}

	interests, err := h.interestUseCase.ListChildren(c.Request.Context(), parentID)
	if err != nil {
		if err == domain.ErrInterestNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "interest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list children"})
		return
	}
	c.JSON(http.StatusOK, interests)
}

// CreateCustom handles POST /interests
func (h *InterestHandler) CreateCustom(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req interest.CreateInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.interestUseCase.CreateCustom(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create interest"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Declare handles POST /interests/:id/declare
func (h *InterestHandler) Declare(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	interestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interest id"})
		return
	}

	if err := h.interestUseCase.Declare(c.Request.Context(), userID, interestID); err != nil {
		switch err {
		case domain.ErrInterestNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "interest not found"})
		case domain.ErrInterestAlreadyDeclared:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "interest already declared"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to declare interest"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "declared"})
}

// Remove handles DELETE /interests/:id/declare
func (h *InterestHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	interestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interest id"})
		return
	}

	if err := h.interestUseCase.Remove(c.Request.Context(), userID, interestID); err != nil {
		if err == domain.ErrInterestNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "interest not declared"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to remove interest"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListMine handles GET /interests/mine
func (h *InterestHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	interests, err := h.interestUseCase.ListDeclared(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list declared interests"})
		return
	}
	c.JSON(http.StatusOK, interests)
}
