package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/response"
)

type questionService interface {
	List(ctx context.Context, quizID string) ([]models.Question, error)
	Create(ctx context.Context, quizID string, in models.QuestionInput) (models.Question, error)
	Update(ctx context.Context, id string, in models.QuestionInput) (models.Question, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, quizID string, req models.QuestionReorderRequest) ([]models.Question, error)
}

// QuestionHandler exposes the quiz question editor.
type QuestionHandler struct {
	service questionService
}

// NewQuestionHandler constructs the handler.
func NewQuestionHandler(service questionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// List godoc
// @Summary List the questions of a quiz in order
// @Tags Quizzes
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} response.Envelope
// @Router /quizzes/{quizId}/questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.service.List(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, questions, nil)
}

// Create godoc
// @Summary Append a question to a quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param payload body models.QuestionInput true "Question payload"
// @Success 201 {object} response.Envelope
// @Router /quizzes/{quizId}/questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	var in models.QuestionInput
	if !bindJSON(c, &in, "question") {
		return
	}
	question, err := h.service.Create(c.Request.Context(), c.Param("quizId"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, question)
}

// Reorder godoc
// @Summary Rewrite question order
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param payload body models.QuestionReorderRequest true "Question IDs in their new order"
// @Success 200 {object} response.Envelope
// @Router /quizzes/{quizId}/questions [put]
func (h *QuestionHandler) Reorder(c *gin.Context) {
	var req models.QuestionReorderRequest
	if !bindJSON(c, &req, "reorder") {
		return
	}
	questions, err := h.service.Reorder(c.Request.Context(), c.Param("quizId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, questions, nil)
}

// Update godoc
// @Summary Update a question
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param payload body models.QuestionInput true "Question payload"
// @Success 200 {object} response.Envelope
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
	var in models.QuestionInput
	if !bindJSON(c, &in, "question") {
		return
	}
	question, err := h.service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, question, nil)
}

// Delete godoc
// @Summary Delete a question
// @Tags Quizzes
// @Param id path string true "Question ID"
// @Success 204
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
