package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

type memReports struct {
	course  *models.CourseReport
	learner *models.LearnerReport
}

func (m *memReports) CourseReport(_ context.Context, courseID string) (*models.CourseReport, error) {
	if m.course == nil || m.course.CourseID != courseID {
		return nil, fmt.Errorf("course report: %w", sql.ErrNoRows)
	}
	return m.course, nil
}

func (m *memReports) LearnerReport(_ context.Context, userID string) (*models.LearnerReport, error) {
	if m.learner == nil || m.learner.UserID != userID {
		return nil, fmt.Errorf("learner report: %w", sql.ErrNoRows)
	}
	return m.learner, nil
}

func exportFixture() (*memReports, *memEnrollmentRoster) {
	completed := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	roster := &memEnrollmentRoster{rows: []models.EnrollmentDetail{
		{
			Enrollment: models.Enrollment{UserID: "u-1", Status: models.EnrollmentStatusCompleted, ProgressPercentage: 100,
				AssignedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), CompletedAt: &completed},
			UserName: strPtr("Ada Lovelace"), UserEmail: strPtr("ada@example.com"),
		},
		{
			Enrollment: models.Enrollment{UserID: "u-2", Status: models.EnrollmentStatusAssigned,
				AssignedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
			UserEmail: strPtr("bob@example.com"),
		},
	}}
	return &memReports{course: &models.CourseReport{CourseID: "c-1", CourseTitle: "Safety"}}, roster
}

type memEnrollmentRoster struct {
	rows []models.EnrollmentDetail
}

func (m *memEnrollmentRoster) ListByCourse(context.Context, string) ([]models.EnrollmentDetail, error) {
	return m.rows, nil
}

func TestReportServiceExportCSV(t *testing.T) {
	reports, roster := exportFixture()
	svc := NewReportService(reports, roster, allClassesSelector(), nil)

	file, err := svc.ExportCourse(context.Background(), "c-1", "")
	require.NoError(t, err)
	assert.Equal(t, "course-report-c-1.csv", file.FileName)
	assert.Contains(t, file.ContentType, "text/csv")

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "User Name,Email,Status,Progress %,Assigned Date,Completed Date", lines[0])
	assert.Equal(t, "Ada Lovelace,ada@example.com,completed,100,2024-03-01,2024-03-02", lines[1])
	assert.Equal(t, ",bob@example.com,assigned,0,2024-03-05,-", lines[2])
}

func TestReportServiceExportPDF(t *testing.T) {
	reports, roster := exportFixture()
	svc := NewReportService(reports, roster, allClassesSelector(), nil)

	file, err := svc.ExportCourse(context.Background(), "c-1", models.ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestReportServiceExportUnknownFormat(t *testing.T) {
	reports, roster := exportFixture()
	svc := NewReportService(reports, roster, allClassesSelector(), nil)

	_, err := svc.ExportCourse(context.Background(), "c-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
}

func TestReportServiceMissingCourse(t *testing.T) {
	reports, roster := exportFixture()
	svc := NewReportService(reports, roster, allClassesSelector(), nil)

	_, err := svc.CourseReport(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.KindNotFound, appErrors.KindOf(err))
}

func TestReportServiceLearnerReport(t *testing.T) {
	reports := &memReports{learner: &models.LearnerReport{UserID: "u-1", CoursesEnrolled: 2}}
	svc := NewReportService(reports, &memEnrollmentRoster{}, allClassesSelector(), nil)

	report, err := svc.LearnerReport(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, report.CoursesEnrolled)
}
