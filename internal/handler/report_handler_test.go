package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

type fakeReportService struct {
	format models.ExportFormat
	err    error
}

func (f *fakeReportService) CourseReport(_ context.Context, courseID string) (*models.CourseReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CourseReport{CourseID: courseID, TotalEnrollments: 3}, nil
}

func (f *fakeReportService) LearnerReport(_ context.Context, userID string) (*models.LearnerReport, error) {
	return &models.LearnerReport{UserID: userID, CoursesEnrolled: 2}, nil
}

func (f *fakeReportService) ExportCourse(_ context.Context, courseID string, format models.ExportFormat) (*models.ExportFile, error) {
	f.format = format
	if f.err != nil {
		return nil, f.err
	}
	return &models.ExportFile{FileName: "course-report-" + courseID + ".csv", ContentType: "text/csv", Data: []byte("User Name\n")}, nil
}

func TestReportHandlerCourseReport(t *testing.T) {
	handler := NewReportHandler(&fakeReportService{})
	c, rec := newTestContext(http.MethodGet, "/reports/courses/c-1", nil, gin.Param{Key: "id", Value: "c-1"})

	handler.CourseReport(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.CourseReport
	decodeData(t, rec, &report)
	assert.Equal(t, 3, report.TotalEnrollments)
}

func TestReportHandlerCourseReportNotFound(t *testing.T) {
	handler := NewReportHandler(&fakeReportService{err: appErrors.Clone(appErrors.ErrNotFound, "course not found")})
	c, rec := newTestContext(http.MethodGet, "/reports/courses/missing", nil, gin.Param{Key: "id", Value: "missing"})

	handler.CourseReport(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandlerExportSetsAttachment(t *testing.T) {
	svc := &fakeReportService{}
	handler := NewReportHandler(svc)
	c, rec := newTestContext(http.MethodGet, "/reports/courses/c-1/export?format=CSV", nil, gin.Param{Key: "id", Value: "c-1"})

	handler.ExportCourse(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ExportFormatCSV, svc.format)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="course-report-c-1.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "User Name\n", rec.Body.String())
}

func TestReportHandlerLearnerReport(t *testing.T) {
	handler := NewReportHandler(&fakeReportService{})
	c, rec := newTestContext(http.MethodGet, "/reports/learners/l-1", nil, gin.Param{Key: "id", Value: "l-1"})

	handler.LearnerReport(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.LearnerReport
	decodeData(t, rec, &report)
	assert.Equal(t, "l-1", report.UserID)
}
