package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/export"
)

type reportStore interface {
	CourseReport(ctx context.Context, courseID string) (*models.CourseReport, error)
	LearnerReport(ctx context.Context, userID string) (*models.LearnerReport, error)
}

type reportEnrollments interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.EnrollmentDetail, error)
}

var courseExportHeaders = []string{"User Name", "Email", "Status", "Progress %", "Assigned Date", "Completed Date"}

const exportDateLayout = "2006-01-02"

// ReportService aggregates course and learner results from the secondary store.
type ReportService struct {
	store       reportStore
	enrollments reportEnrollments
	selector    *backend.Selector
	renderers   map[models.ExportFormat]export.Renderer
	logger      *zap.Logger
}

// NewReportService constructs ReportService with CSV and PDF renderers.
func NewReportService(store reportStore, enrollments reportEnrollments, selector *backend.Selector, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:       store,
		enrollments: enrollments,
		selector:    selector,
		renderers: map[models.ExportFormat]export.Renderer{
			models.ExportFormatCSV: export.NewCSVExporter(),
			models.ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// CourseReport summarises enrollments and quiz scores of a course.
func (s *ReportService) CourseReport(ctx context.Context, courseID string) (*models.CourseReport, error) {
	return backend.Secondary(ctx, s.selector, backend.ClassEnrollment, backend.OpGet, func(ctx context.Context) (*models.CourseReport, error) {
		return s.store.CourseReport(ctx, courseID)
	})
}

// LearnerReport summarises a learner across courses.
func (s *ReportService) LearnerReport(ctx context.Context, userID string) (*models.LearnerReport, error) {
	return backend.Secondary(ctx, s.selector, backend.ClassEnrollment, backend.OpGet, func(ctx context.Context) (*models.LearnerReport, error) {
		return s.store.LearnerReport(ctx, userID)
	})
}

// ExportCourse renders the enrollment roster of a course in format.
func (s *ReportService) ExportCourse(ctx context.Context, courseID string, format models.ExportFormat) (*models.ExportFile, error) {
	if format == "" {
		format = models.ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+string(format))
	}
	report, err := s.CourseReport(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrollments, err := backend.Secondary(ctx, s.selector, backend.ClassEnrollment, backend.OpList, func(ctx context.Context) ([]models.EnrollmentDetail, error) {
		return s.enrollments.ListByCourse(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}

	data := courseDataset(enrollments)
	payload, err := renderer.Render(data, "Course Report: "+report.CourseTitle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Info("course report exported",
		zap.String("course_id", courseID),
		zap.String("format", string(format)),
		zap.Int("rows", len(data.Rows)),
	)
	return &models.ExportFile{
		FileName:    fmt.Sprintf("course-report-%s.%s", courseID, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        payload,
	}, nil
}

func courseDataset(enrollments []models.EnrollmentDetail) export.Dataset {
	data := export.Dataset{Headers: courseExportHeaders}
	for _, e := range enrollments {
		completed := "-"
		if e.CompletedAt != nil {
			completed = e.CompletedAt.Format(exportDateLayout)
		}
		data.AddRow(
			deref(e.UserName),
			deref(e.UserEmail),
			string(e.Status),
			strconv.Itoa(e.ProgressPercentage),
			e.AssignedAt.Format(exportDateLayout),
			completed,
		)
	}
	return data
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
