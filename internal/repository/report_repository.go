package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

// ReportRepository computes course and learner aggregates.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type courseAggregate struct {
	ID               string  `db:"id"`
	Title            string  `db:"title"`
	TotalEnrollments int     `db:"total_enrollments"`
	InProgress       int     `db:"in_progress"`
	Completed        int     `db:"completed"`
	AverageProgress  float64 `db:"average_progress"`
	AverageScore     float64 `db:"average_score"`
}

// CourseReport aggregates enrollments and quiz attempts for a course.
// Averages are rounded to the nearest integer.
func (r *ReportRepository) CourseReport(ctx context.Context, courseID string) (*models.CourseReport, error) {
	const query = `SELECT c.id, c.title,
        (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS total_enrollments,
        (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'in_progress') AS in_progress,
        (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'completed') AS completed,
        (SELECT COALESCE(AVG(e.progress_percentage), 0) FROM enrollments e WHERE e.course_id = c.id) AS average_progress,
        (SELECT COALESCE(AVG(qa.score), 0) FROM quiz_attempts qa
            JOIN quizzes q ON q.id = qa.quiz_id
            JOIN units u ON u.id = q.unit_id
            WHERE u.course_id = c.id AND u.type = 'quiz') AS average_score
        FROM courses c WHERE c.id = $1`
	var agg courseAggregate
	if err := r.db.GetContext(ctx, &agg, query, courseID); err != nil {
		return nil, fmt.Errorf("course report: %w", err)
	}
	return &models.CourseReport{
		CourseID:         agg.ID,
		CourseTitle:      agg.Title,
		TotalEnrollments: agg.TotalEnrollments,
		InProgress:       agg.InProgress,
		Completed:        agg.Completed,
		AverageProgress:  int(math.Round(agg.AverageProgress)),
		AverageScore:     int(math.Round(agg.AverageScore)),
	}, nil
}

type learnerAggregate struct {
	ID               string     `db:"id"`
	FullName         *string    `db:"full_name"`
	Email            string     `db:"email"`
	CoursesEnrolled  int        `db:"courses_enrolled"`
	CoursesCompleted int        `db:"courses_completed"`
	AverageProgress  float64    `db:"average_progress"`
	TotalQuizScore   int        `db:"total_quiz_score"`
	LastActivity     *time.Time `db:"last_activity"`
}

// LearnerReport aggregates a learner's enrollments and quiz attempts.
// Last activity is the latest start, or assignment when never started.
func (r *ReportRepository) LearnerReport(ctx context.Context, userID string) (*models.LearnerReport, error) {
	const query = `SELECT p.id, p.full_name, p.email,
        (SELECT COUNT(*) FROM enrollments e WHERE e.user_id = p.id) AS courses_enrolled,
        (SELECT COUNT(*) FROM enrollments e WHERE e.user_id = p.id AND e.status = 'completed') AS courses_completed,
        (SELECT COALESCE(AVG(e.progress_percentage), 0) FROM enrollments e WHERE e.user_id = p.id) AS average_progress,
        (SELECT COALESCE(SUM(qa.score), 0) FROM quiz_attempts qa WHERE qa.user_id = p.id) AS total_quiz_score,
        (SELECT MAX(COALESCE(e.started_at, e.assigned_at)) FROM enrollments e WHERE e.user_id = p.id) AS last_activity
        FROM profiles p WHERE p.id = $1`
	var agg learnerAggregate
	if err := r.db.GetContext(ctx, &agg, query, userID); err != nil {
		return nil, fmt.Errorf("learner report: %w", err)
	}
	report := &models.LearnerReport{
		UserID:           agg.ID,
		Email:            agg.Email,
		CoursesEnrolled:  agg.CoursesEnrolled,
		CoursesCompleted: agg.CoursesCompleted,
		AverageProgress:  int(math.Round(agg.AverageProgress)),
		TotalQuizScore:   agg.TotalQuizScore,
		LastActivity:     agg.LastActivity,
	}
	if agg.FullName != nil {
		report.UserName = *agg.FullName
	}
	return report, nil
}
