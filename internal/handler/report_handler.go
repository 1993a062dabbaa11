package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/response"
)

type reportService interface {
	CourseReport(ctx context.Context, courseID string) (*models.CourseReport, error)
	LearnerReport(ctx context.Context, userID string) (*models.LearnerReport, error)
	ExportCourse(ctx context.Context, courseID string, format models.ExportFormat) (*models.ExportFile, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// CourseReport godoc
// @Summary Course completion report
// @Tags Reports
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /reports/courses/{id} [get]
func (h *ReportHandler) CourseReport(c *gin.Context) {
	report, err := h.reports.CourseReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// LearnerReport godoc
// @Summary Learner progress report
// @Tags Reports
// @Produce json
// @Param id path string true "Learner ID"
// @Success 200 {object} response.Envelope
// @Router /reports/learners/{id} [get]
func (h *ReportHandler) LearnerReport(c *gin.Context) {
	report, err := h.reports.LearnerReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// ExportCourse godoc
// @Summary Download a course report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Course ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /reports/courses/{id}/export [get]
func (h *ReportHandler) ExportCourse(c *gin.Context) {
	format := models.ExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	file, err := h.reports.ExportCourse(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
