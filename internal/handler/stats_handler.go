package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/pkg/response"
)

type statsService interface {
	Leaderboard(ctx context.Context) (*dto.LeaderboardResponse, error)
}

// StatsHandler exposes author statistics.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Authors godoc
// @Summary Author leaderboard
// @Description Submission counts and reflection score sums per author, recomputed on every request.
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /stats/authors [get]
func (h *StatsHandler) Authors(c *gin.Context) {
	res, err := h.service.Leaderboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
