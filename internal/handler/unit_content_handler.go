package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type unitContentService interface {
	Get(ctx context.Context, sess session.Session, courseID, unitID string, tag models.UnitType) (models.Content, error)
	Update(ctx context.Context, sess session.Session, courseID, unitID string, tag models.UnitType, payload json.RawMessage) (models.Content, error)
}

// UnitContentHandler serves the type-specific editor payload of a unit.
type UnitContentHandler struct {
	service unitContentService
}

// NewUnitContentHandler constructs the handler.
func NewUnitContentHandler(service unitContentService) *UnitContentHandler {
	return &UnitContentHandler{service: service}
}

func unitTypeParam(c *gin.Context) (models.UnitType, bool) {
	tag := strings.TrimSpace(c.Query("type"))
	if tag == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type is required"))
		return "", false
	}
	return models.UnitType(tag), true
}

// Get godoc
// @Summary Get the content detail of a unit
// @Description Data is null when nothing has been saved for the unit yet.
// @Tags Units
// @Produce json
// @Param id path string true "Course ID"
// @Param unitId path string true "Unit ID"
// @Param type query string true "Unit type tag"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /courses/{id}/units/{unitId}/content [get]
func (h *UnitContentHandler) Get(c *gin.Context) {
	tag, ok := unitTypeParam(c)
	if !ok {
		return
	}
	detail, err := h.service.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"), c.Param("unitId"), tag)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Update godoc
// @Summary Save the content detail of a unit
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param unitId path string true "Unit ID"
// @Param type query string true "Unit type tag"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/units/{unitId}/content [put]
func (h *UnitContentHandler) Update(c *gin.Context) {
	tag, ok := unitTypeParam(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid content payload"))
		return
	}
	detail, err := h.service.Update(c.Request.Context(), sessionFromContext(c), c.Param("id"), c.Param("unitId"), tag, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}
