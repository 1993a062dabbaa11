package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/middleware"
	"github.com/noah-isme/trainer-console/internal/service"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type dashboardService interface {
	Stats(ctx context.Context, sess session.Session) (service.DashboardResult, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary Trainer dashboard counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	start := time.Now()
	result, cacheHit, err := h.service.Stats(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetMeta(c, "processing_time_ms", time.Since(start).Milliseconds())
	if result.CachedAt != nil {
		middleware.SetMeta(c, "cached_at", result.CachedAt.UTC().Format(time.RFC3339))
	}
	response.Resolved(c, http.StatusOK, result.Stats, string(result.Source), "", middleware.ExtractMeta(c))
}
