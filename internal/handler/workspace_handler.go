package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/service"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type workspaceStore interface {
	Get(sess session.Session, courseID string) (service.Workspace, bool)
	SelectUnit(sess session.Session, courseID, unitID string) (service.Workspace, bool)
	Close(sess session.Session, courseID string)
}

type selectUnitRequest struct {
	UnitID string `json:"unit_id"`
}

// WorkspaceHandler exposes the trainer's open course workspace.
type WorkspaceHandler struct {
	workspaces workspaceStore
}

// NewWorkspaceHandler constructs the handler.
func NewWorkspaceHandler(workspaces workspaceStore) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

// Get godoc
// @Summary Get the open workspace of a course
// @Tags Workspace
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/workspace [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	ws, ok := h.workspaces.Get(sessionFromContext(c), c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "workspace not open"))
		return
	}
	response.JSON(c, http.StatusOK, ws, nil)
}

// Select godoc
// @Summary Select the unit being edited
// @Description An empty or unknown unit_id clears the selection.
// @Tags Workspace
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body selectUnitRequest true "Unit to select"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/workspace/selection [put]
func (h *WorkspaceHandler) Select(c *gin.Context) {
	var req selectUnitRequest
	if !bindJSON(c, &req, "selection") {
		return
	}
	ws, ok := h.workspaces.SelectUnit(sessionFromContext(c), c.Param("id"), req.UnitID)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "workspace not open"))
		return
	}
	response.JSON(c, http.StatusOK, ws, nil)
}

// Close godoc
// @Summary Close a course workspace
// @Tags Workspace
// @Param id path string true "Course ID"
// @Success 204
// @Router /courses/{id}/workspace [delete]
func (h *WorkspaceHandler) Close(c *gin.Context) {
	h.workspaces.Close(sessionFromContext(c), c.Param("id"))
	response.NoContent(c)
}
