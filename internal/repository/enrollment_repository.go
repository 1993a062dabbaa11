package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

const enrollmentDetailSelect = `SELECT e.id, e.course_id, e.user_id, e.assigned_by, e.status, e.progress_percentage,
        e.assigned_at, e.started_at, e.completed_at, p.full_name AS user_name, p.email AS user_email
        FROM enrollments e
        LEFT JOIN profiles p ON p.id = e.user_id`

// EnrollmentRepository handles persistence of course enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByCourse returns a course's enrollments with learner names, newest first.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + ` WHERE e.course_id = $1 ORDER BY e.assigned_at DESC`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = []models.EnrollmentDetail{}
	}
	return enrollments, nil
}

// ExistingUserIDs returns which of userIDs are already enrolled in the course.
func (r *EnrollmentRepository) ExistingUserIDs(ctx context.Context, courseID string, userIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(userIDs))
	if len(userIDs) == 0 {
		return existing, nil
	}
	const chunkSize = 100
	for start := 0; start < len(userIDs); start += chunkSize {
		end := start + chunkSize
		if end > len(userIDs) {
			end = len(userIDs)
		}
		chunk := userIDs[start:end]
		placeholders := make([]string, len(chunk))
		args := make([]interface{}, 0, len(chunk)+1)
		args = append(args, courseID)
		for i, id := range chunk {
			placeholders[i] = fmt.Sprintf("$%d", i+2)
			args = append(args, id)
		}
		query := fmt.Sprintf("SELECT user_id FROM enrollments WHERE course_id = $1 AND user_id IN (%s)", strings.Join(placeholders, ","))
		var ids []string
		if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
			return nil, fmt.Errorf("check existing enrollments: %w", err)
		}
		for _, id := range ids {
			existing[id] = true
		}
	}
	return existing, nil
}

// BulkCreate inserts assigned enrollments in one transaction and returns the count written.
func (r *EnrollmentRepository) BulkCreate(ctx context.Context, courseID string, userIDs []string, assignedBy *string) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk enroll: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO enrollments (id, course_id, user_id, assigned_by, status, progress_percentage, assigned_at)
        VALUES (:id, :course_id, :user_id, :assigned_by, :status, :progress_percentage, :assigned_at)`
	now := time.Now().UTC()
	for _, userID := range userIDs {
		enrollment := models.Enrollment{
			ID:         uuid.NewString(),
			CourseID:   courseID,
			UserID:     userID,
			AssignedBy: assignedBy,
			Status:     models.EnrollmentStatusAssigned,
			AssignedAt: now,
		}
		if _, err := tx.NamedExecContext(ctx, query, enrollment); err != nil {
			return 0, fmt.Errorf("create enrollment for %s: %w", userID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk enroll: %w", err)
	}
	return len(userIDs), nil
}

// Delete removes an enrollment by id.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return expectRow(res, "delete enrollment")
}
