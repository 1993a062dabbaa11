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

type courseService interface {
	List(ctx context.Context, sess session.Session) (backend.Outcome[[]models.Course], error)
	Get(ctx context.Context, sess session.Session, id string) (backend.Outcome[models.Course], error)
	Create(ctx context.Context, sess session.Session, in models.CourseInput) (backend.Outcome[models.Course], error)
	Update(ctx context.Context, sess session.Session, id string, in models.CourseInput) (backend.Outcome[models.Course], error)
	Delete(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error)
	Publish(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error)
	Duplicate(ctx context.Context, sess session.Session, id string) (backend.Outcome[models.Course], error)
	AssignableLearners(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.Learner], error)
}

// CourseHandler exposes course authoring endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	outcome, err := h.service.List(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}

// Get godoc
// @Summary Get a course with its units
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	outcome, err := h.service.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}

// Create godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CourseInput true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var in models.CourseInput
	if !bindJSON(c, &in, "course") {
		return
	}
	outcome, err := h.service.Create(c.Request.Context(), sessionFromContext(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusCreated, outcome)
}

// Update godoc
// @Summary Update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.CourseInput true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var in models.CourseInput
	if !bindJSON(c, &in, "course") {
		return
	}
	outcome, err := h.service.Update(c.Request.Context(), sessionFromContext(c), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}

// Delete godoc
// @Summary Delete a course
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	outcome, err := h.service.Delete(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondNoContent(c, outcome)
}

// Publish godoc
// @Summary Publish a course
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Router /courses/{id}/publish [post]
func (h *CourseHandler) Publish(c *gin.Context) {
	outcome, err := h.service.Publish(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondNoContent(c, outcome)
}

// Duplicate godoc
// @Summary Duplicate a course and its units
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/duplicate [post]
func (h *CourseHandler) Duplicate(c *gin.Context) {
	outcome, err := h.service.Duplicate(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusCreated, outcome)
}

// AssignableLearners godoc
// @Summary List learners that can be assigned to a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/assignable-learners [get]
func (h *CourseHandler) AssignableLearners(c *gin.Context) {
	outcome, err := h.service.AssignableLearners(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondOutcome(c, http.StatusOK, outcome)
}
