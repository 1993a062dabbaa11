package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/middleware"
	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type unitService interface {
	List(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.Unit], error)
	Create(ctx context.Context, sess session.Session, in models.UnitInput) (backend.Outcome[models.Unit], error)
	Update(ctx context.Context, sess session.Session, courseID, unitID string, upd models.UnitUpdate) (backend.Outcome[models.Unit], error)
	Delete(ctx context.Context, sess session.Session, courseID, unitID string) (backend.Outcome[struct{}], error)
	Reorder(ctx context.Context, sess session.Session, courseID string, req models.UnitReorderRequest) ([]models.Unit, error)
}

// UnitHandler exposes the course builder's unit endpoints.
type UnitHandler struct {
	service unitService
}

// NewUnitHandler constructs the handler.
func NewUnitHandler(service unitService) *UnitHandler {
	return &UnitHandler{service: service}
}

// List godoc
// @Summary List the units of a course in order
// @Tags Units
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/units [get]
func (h *UnitHandler) List(c *gin.Context) {
	outcome, err := h.service.List(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}

// Create godoc
// @Summary Append a unit to a course
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.UnitInput true "Unit payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var in models.UnitInput
	if !bindJSON(c, &in, "unit") {
		return
	}
	in.CourseID = c.Param("id")
	outcome, err := h.service.Create(c.Request.Context(), sessionFromContext(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusCreated, outcome)
}

// Update godoc
// @Summary Update a unit
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param unitId path string true "Unit ID"
// @Param payload body models.UnitUpdate true "Unit fields"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/units/{unitId} [patch]
func (h *UnitHandler) Update(c *gin.Context) {
	var upd models.UnitUpdate
	if !bindJSON(c, &upd, "unit") {
		return
	}
	outcome, err := h.service.Update(c.Request.Context(), sessionFromContext(c), c.Param("id"), c.Param("unitId"), upd)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}

// Delete godoc
// @Summary Delete a unit
// @Tags Units
// @Param id path string true "Course ID"
// @Param unitId path string true "Unit ID"
// @Success 204
// @Router /courses/{id}/units/{unitId} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	outcome, err := h.service.Delete(c.Request.Context(), sessionFromContext(c), c.Param("id"), c.Param("unitId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondNoContent(c, outcome)
}

// Reorder godoc
// @Summary Rewrite unit order
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.UnitReorderRequest true "Unit IDs in their new order"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/units [put]
func (h *UnitHandler) Reorder(c *gin.Context) {
	var req models.UnitReorderRequest
	if !bindJSON(c, &req, "reorder") {
		return
	}
	units, err := h.service.Reorder(c.Request.Context(), sessionFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, units, nil, middleware.ExtractMeta(c))
}
