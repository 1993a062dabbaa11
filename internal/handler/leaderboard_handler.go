package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
)

type leaderboardService interface {
	List(ctx context.Context, courseID string, limit int) ([]models.LeaderboardEntry, error)
	Refresh(ctx context.Context, courseID, userID string) (bool, error)
}

type taskRunner interface {
	Run(name string) error
}

type refreshLeaderboardRequest struct {
	UserID string `json:"user_id"`
}

// LeaderboardHandler exposes course rankings.
type LeaderboardHandler struct {
	service    leaderboardService
	runner     taskRunner
	rerankTask string
}

// NewLeaderboardHandler constructs the handler. rerankTask names the
// scheduled task triggered by Rerank.
func NewLeaderboardHandler(service leaderboardService, runner taskRunner, rerankTask string) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, runner: runner, rerankTask: rerankTask}
}

// List godoc
// @Summary Course leaderboard
// @Tags Leaderboard
// @Produce json
// @Param id path string true "Course ID"
// @Param limit query int false "Maximum entries, all when omitted"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/leaderboard [get]
func (h *LeaderboardHandler) List(c *gin.Context) {
	h.list(c, c.Param("id"))
}

// ListAll godoc
// @Summary Leaderboard across every course
// @Tags Leaderboard
// @Produce json
// @Param limit query int false "Maximum entries, all when omitted"
// @Success 200 {object} response.Envelope
// @Router /leaderboard [get]
func (h *LeaderboardHandler) ListAll(c *gin.Context) {
	h.list(c, "")
}

func (h *LeaderboardHandler) list(c *gin.Context, courseID string) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	entries, err := h.service.List(c.Request.Context(), courseID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if limit > 0 {
		meta = map[string]interface{}{"limit": limit}
	}
	response.JSON(c, http.StatusOK, entries, nil, meta)
}

// Refresh godoc
// @Summary Recompute one learner's points
// @Tags Leaderboard
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body refreshLeaderboardRequest true "Learner"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/leaderboard/refresh [post]
func (h *LeaderboardHandler) Refresh(c *gin.Context) {
	var req refreshLeaderboardRequest
	if !bindJSON(c, &req, "refresh") {
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "user_id is required"))
		return
	}
	refreshed, err := h.service.Refresh(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"refreshed": refreshed}, nil)
}

// Rerank godoc
// @Summary Re-rank every course now
// @Tags Leaderboard
// @Success 200 {object} response.Envelope
// @Router /leaderboard/rerank [post]
func (h *LeaderboardHandler) Rerank(c *gin.Context) {
	if h.runner == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.runner.Run(h.rerankTask); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"task": h.rerankTask}, nil)
}
