package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type enrollmentService interface {
	List(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.EnrollmentDetail], error)
	Assign(ctx context.Context, sess session.Session, courseID string, req models.AssignRequest) (backend.Outcome[models.AssignResult], error)
	BulkEnroll(ctx context.Context, sess session.Session, courseID string, req models.AssignRequest) (backend.Outcome[models.AssignResult], error)
	Delete(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error)
}

// EnrollmentHandler manages learner enrollments of a course.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(service enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// List godoc
// @Summary List enrollments of a course
// @Tags Enrollments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	outcome, err := h.service.List(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}

// Assign godoc
// @Summary Assign a course to learners
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.AssignRequest true "Learners to assign"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/assign [post]
func (h *EnrollmentHandler) Assign(c *gin.Context) {
	var req models.AssignRequest
	if !bindJSON(c, &req, "assignment") {
		return
	}
	outcome, err := h.service.Assign(c.Request.Context(), sessionFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusCreated, outcome)
}

// BulkEnroll godoc
// @Summary Enroll learners in bulk
// @Description Learners already enrolled are skipped.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.AssignRequest true "Learners to enroll"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/enrollments [post]
func (h *EnrollmentHandler) BulkEnroll(c *gin.Context) {
	var req models.AssignRequest
	if !bindJSON(c, &req, "enrollment") {
		return
	}
	outcome, err := h.service.BulkEnroll(c.Request.Context(), sessionFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusCreated, outcome)
}

// Delete godoc
// @Summary Remove an enrollment
// @Tags Enrollments
// @Param id path string true "Enrollment ID"
// @Success 204
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	outcome, err := h.service.Delete(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondNoContent(c, outcome)
}
