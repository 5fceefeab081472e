package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
	defaults     match.Params
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, defaults match.Params) *MatchHandler {
	if defaults.MaxDistanceKm <= 0 || defaults.Limit < 1 {
		defaults = match.DefaultParams()
	}
	return &MatchHandler{matchUseCase: matchUseCase, defaults: defaults}
}

// GetMatches handles GET /matches
// @Summary Find matches
// @Description Ranked nearby users sharing interests with the caller
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param max_distance_km query number false "Maximum distance in km (default 50)"
// @Param limit query int false "Maximum results (default 20)"
// @Param min_shared_interests query int false "Discard rows sharing fewer interests"
// @Success 200 {array} domain.MatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := h.defaults
	if raw := c.Query("max_distance_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_distance_km"})
			return
		}
		params.MaxDistanceKm = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		params.Limit = v
	}

	results, err := h.matchUseCase.FindMatches(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMatchParams) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if domain.IsRetryable(err) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "match store unavailable, retry later"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to find matches"})
		return
	}

	// Presentation-side threshold: shrinks the ranked set, never re-ranks it.
	if raw := c.Query("min_shared_interests"); raw != "" {
		minShared, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_shared_interests"})
			return
		}
		results = match.FilterMinShared(results, minShared)
	}

	c.JSON(http.StatusOK, results)
}
