package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

// DashboardRepository computes catalogue-wide statistics.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats returns counts across courses and enrollments. The completion rate
// is the percentage of enrollments completed, rounded to one decimal.
func (r *DashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM courses) AS total_courses,
        (SELECT COUNT(DISTINCT user_id) FROM enrollments WHERE status <> 'completed') AS active_learners,
        (SELECT COUNT(*) FROM enrollments) AS total_enrollments,
        COALESCE((SELECT ROUND(100.0 * COUNT(*) FILTER (WHERE status = 'completed') / NULLIF(COUNT(*), 0), 1) FROM enrollments), 0) AS completion_rate`
	var stats models.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
