package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type enrollmentPrimary interface {
	ListEnrollments(ctx context.Context, sess session.Session, courseID string) ([]models.EnrollmentDetail, error)
	BulkEnroll(ctx context.Context, sess session.Session, courseID string, userIDs []string) (int, error)
	AssignCourse(ctx context.Context, sess session.Session, courseID string, userIDs []string) (int, error)
	DeleteEnrollment(ctx context.Context, sess session.Session, id string) error
}

type enrollmentStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.EnrollmentDetail, error)
	ExistingUserIDs(ctx context.Context, courseID string, userIDs []string) (map[string]bool, error)
	BulkCreate(ctx context.Context, courseID string, userIDs []string, assignedBy *string) (int, error)
	Delete(ctx context.Context, id string) error
}

type leaderboardScheduler interface {
	Schedule(courseID string, userIDs ...string)
}

// EnrollmentService assigns courses to learners.
type EnrollmentService struct {
	primary     enrollmentPrimary
	store       enrollmentStore
	selector    *backend.Selector
	leaderboard leaderboardScheduler
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService. leaderboard and cache may be nil.
func NewEnrollmentService(primary enrollmentPrimary, store enrollmentStore, selector *backend.Selector, leaderboard leaderboardScheduler, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		primary:     primary,
		store:       store,
		selector:    selector,
		leaderboard: leaderboard,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// List returns the enrollments of a course, newest first.
func (s *EnrollmentService) List(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.EnrollmentDetail], error) {
	return backend.Resolve(ctx, s.selector, backend.ClassEnrollment, backend.OpList,
		func(ctx context.Context) ([]models.EnrollmentDetail, error) {
			return s.primary.ListEnrollments(ctx, sess, courseID)
		},
		func(ctx context.Context) ([]models.EnrollmentDetail, error) {
			return s.store.ListByCourse(ctx, courseID)
		},
	)
}

// Assign assigns a course to learners through the course endpoint.
func (s *EnrollmentService) Assign(ctx context.Context, sess session.Session, courseID string, req models.AssignRequest) (backend.Outcome[models.AssignResult], error) {
	return s.enroll(ctx, courseID, req, backend.OpAction, func(ctx context.Context, userIDs []string) (int, error) {
		return s.primary.AssignCourse(ctx, sess, courseID, userIDs)
	})
}

// BulkEnroll creates enrollments through the enrollment endpoint.
func (s *EnrollmentService) BulkEnroll(ctx context.Context, sess session.Session, courseID string, req models.AssignRequest) (backend.Outcome[models.AssignResult], error) {
	return s.enroll(ctx, courseID, req, backend.OpCreate, func(ctx context.Context, userIDs []string) (int, error) {
		return s.primary.BulkEnroll(ctx, sess, courseID, userIDs)
	})
}

func (s *EnrollmentService) enroll(ctx context.Context, courseID string, req models.AssignRequest, op backend.Operation, primary func(context.Context, []string) (int, error)) (backend.Outcome[models.AssignResult], error) {
	if err := s.validator.Struct(req); err != nil {
		return backend.Outcome[models.AssignResult]{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	userIDs := uniqueIDs(req.UserIDs)
	out, err := backend.Resolve(ctx, s.selector, backend.ClassEnrollment, op,
		func(ctx context.Context) (models.AssignResult, error) {
			created, err := primary(ctx, userIDs)
			return models.AssignResult{Created: created}, err
		},
		func(ctx context.Context) (models.AssignResult, error) {
			created, err := s.enrollOnSecondary(ctx, courseID, userIDs)
			return models.AssignResult{Created: created}, err
		},
	)
	if err != nil {
		return out, err
	}
	if s.leaderboard != nil {
		s.leaderboard.Schedule(courseID, userIDs...)
	}
	s.cache.Invalidate(ctx, CacheKey(dashboardCacheNamespace, "*"))
	return out, nil
}

// Delete removes an enrollment. Dashboard counters are recomputed on next read.
func (s *EnrollmentService) Delete(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error) {
	out, err := backend.Resolve(ctx, s.selector, backend.ClassEnrollment, backend.OpDelete,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.primary.DeleteEnrollment(ctx, sess, id)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.store.Delete(ctx, id)
		},
	)
	if err != nil {
		return out, err
	}
	s.cache.Invalidate(ctx, CacheKey(dashboardCacheNamespace, "*"))
	return out, nil
}

// enrollOnSecondary skips learners already enrolled and inserts the rest as assigned.
func (s *EnrollmentService) enrollOnSecondary(ctx context.Context, courseID string, userIDs []string) (int, error) {
	existing, err := s.store.ExistingUserIDs(ctx, courseID, userIDs)
	if err != nil {
		return 0, err
	}
	fresh := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if !existing[id] {
			fresh = append(fresh, id)
		}
	}
	if len(fresh) < len(userIDs) {
		s.logger.Info("skipping learners already enrolled",
			zap.String("course_id", courseID),
			zap.Int("skipped", len(userIDs)-len(fresh)),
		)
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	return s.store.BulkCreate(ctx, courseID, fresh, nil)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
