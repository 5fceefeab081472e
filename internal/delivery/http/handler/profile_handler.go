package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// CreateProfile handles POST /profile
// @Summary Create my profile
// @Description Create the current user's profile on first save
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Profile data"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	newProfile, err := h.profileUseCase.CreateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case domain.ErrProfileAlreadyExists:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "profile already exists"})
		case domain.ErrUsernameTaken:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, newProfile)
}

// GetMyProfile handles GET /profile/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /profile/me
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case domain.ErrProfileNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		case domain.ErrUsernameTaken:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetProfileByUserID handles GET /profile/:user_id
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	targetUserID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	p, err := h.profileUseCase.GetProfileByUserID(c.Request.Context(), targetUserID)
	if err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateLocation handles PUT /profile/me/location
// @Summary Update my location
// @Description Record a new active coordinate for matching
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateLocationRequest true "Coordinate"
// @Success 200 {object} domain.Location
// @Failure 400 {object} ErrorResponse
// @Router /profile/me/location [put]
func (h *ProfileHandler) UpdateLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinate"})
		return
	}

	location, err := h.profileUseCase.UpdateLocation(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update location"})
		return
	}

	c.JSON(http.StatusOK, location)
}

// ClearLocation handles DELETE /profile/me/location
func (h *ProfileHandler) ClearLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.ClearLocation(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to clear location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "location cleared"})
}
