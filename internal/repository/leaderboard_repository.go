package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

// LeaderboardRepository maintains per-course learner rankings.
type LeaderboardRepository struct {
	db *sqlx.DB
}

// NewLeaderboardRepository constructs the repository.
func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// List returns leaderboard rows ordered by rank. An empty courseID spans every
// course and a limit of zero or less returns all rows.
func (r *LeaderboardRepository) List(ctx context.Context, courseID string, limit int) ([]models.LeaderboardEntry, error) {
	query := `SELECT l.id, l.user_id, l.course_id, l.total_points, l.completed_units, l.quiz_score_total,
        l.activity_points, l.rank, l.updated_at, p.full_name AS user_name, p.email AS user_email
        FROM leaderboard l
        LEFT JOIN profiles p ON p.id = l.user_id`
	var args []interface{}
	if courseID != "" {
		args = append(args, courseID)
		query += fmt.Sprintf(" WHERE l.course_id = $%d", len(args))
	}
	query += " ORDER BY l.rank ASC, l.total_points DESC, l.course_id"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	var entries []models.LeaderboardEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, nil
}

// Activity collects the raw inputs for one learner's course score.
// Enrolled is false when the learner holds no enrollment in the course.
func (r *LeaderboardRepository) Activity(ctx context.Context, courseID, userID string) (models.LearnerActivity, error) {
	const query = `SELECT
        EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = $1 AND e.course_id = $2) AS enrolled,
        (SELECT COUNT(*) FROM unit_progress up JOIN units u ON u.id = up.unit_id
            WHERE up.user_id = $1 AND u.course_id = $2 AND up.status = 'completed') AS completed_units,
        (SELECT COALESCE(SUM(qa.score), 0) FROM quiz_attempts qa
            JOIN quizzes q ON q.id = qa.quiz_id JOIN units u ON u.id = q.unit_id
            WHERE qa.user_id = $1 AND u.course_id = $2) AS quiz_score_total,
        (SELECT COUNT(*) FROM unit_progress up JOIN units u ON u.id = up.unit_id
            WHERE up.user_id = $1 AND u.course_id = $2) AS progress_rows`
	var activity models.LearnerActivity
	if err := r.db.GetContext(ctx, &activity, query, userID, courseID); err != nil {
		return models.LearnerActivity{}, fmt.Errorf("load learner activity: %w", err)
	}
	return activity, nil
}

// Upsert writes a learner's score, keyed by (user_id, course_id).
func (r *LeaderboardRepository) Upsert(ctx context.Context, entry *models.LeaderboardEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO leaderboard (id, user_id, course_id, total_points, completed_units, quiz_score_total, activity_points, updated_at)
        VALUES (:id, :user_id, :course_id, :total_points, :completed_units, :quiz_score_total, :activity_points, :updated_at)
        ON CONFLICT (user_id, course_id) DO UPDATE SET
            total_points = EXCLUDED.total_points,
            completed_units = EXCLUDED.completed_units,
            quiz_score_total = EXCLUDED.quiz_score_total,
            activity_points = EXCLUDED.activity_points,
            updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("upsert leaderboard entry: %w", err)
	}
	return nil
}

// Rerank reassigns ranks 1..n by total points for a course.
func (r *LeaderboardRepository) Rerank(ctx context.Context, courseID string) error {
	const query = `UPDATE leaderboard l SET rank = ranked.position
        FROM (SELECT id, ROW_NUMBER() OVER (ORDER BY total_points DESC, updated_at ASC) AS position
            FROM leaderboard WHERE course_id = $1) ranked
        WHERE l.id = ranked.id`
	if _, err := r.db.ExecContext(ctx, query, courseID); err != nil {
		return fmt.Errorf("rerank leaderboard: %w", err)
	}
	return nil
}

// CourseIDs lists courses that have leaderboard rows.
func (r *LeaderboardRepository) CourseIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT course_id FROM leaderboard`); err != nil {
		return nil, fmt.Errorf("list leaderboard courses: %w", err)
	}
	return ids, nil
}
