package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

// LearnerRepository reads trainee profiles.
type LearnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository constructs the repository.
func NewLearnerRepository(db *sqlx.DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// ListAssignable returns learners not yet enrolled in the course. Profiles
// tagged with primary_role trainee are preferred; older rows only carry role.
func (r *LearnerRepository) ListAssignable(ctx context.Context, courseID string) ([]models.Learner, error) {
	const tmpl = `SELECT p.id, p.full_name, p.email, p.avatar_url FROM profiles p
        WHERE p.%s = $1
        AND NOT EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = p.id AND e.course_id = $2)
        ORDER BY p.full_name ASC`

	var learners []models.Learner
	if err := r.db.SelectContext(ctx, &learners, fmt.Sprintf(tmpl, "primary_role"), "trainee", courseID); err != nil {
		return nil, fmt.Errorf("list trainee profiles: %w", err)
	}
	if len(learners) > 0 {
		return learners, nil
	}
	if err := r.db.SelectContext(ctx, &learners, fmt.Sprintf(tmpl, "role"), "learner", courseID); err != nil {
		return nil, fmt.Errorf("list learner profiles: %w", err)
	}
	if learners == nil {
		learners = []models.Learner{}
	}
	return learners, nil
}

// FindByID returns a single profile.
func (r *LearnerRepository) FindByID(ctx context.Context, id string) (*models.Learner, error) {
	const query = `SELECT id, full_name, email, avatar_url FROM profiles WHERE id = $1`
	var learner models.Learner
	if err := r.db.GetContext(ctx, &learner, query, id); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &learner, nil
}
