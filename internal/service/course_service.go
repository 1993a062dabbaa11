package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type coursePrimary interface {
	ListCourses(ctx context.Context, sess session.Session) ([]models.Course, error)
	GetCourse(ctx context.Context, sess session.Session, id string) (models.Course, error)
	CreateCourse(ctx context.Context, sess session.Session, in models.CourseInput) (models.Course, error)
	UpdateCourse(ctx context.Context, sess session.Session, id string, in models.CourseInput) (models.Course, error)
	DeleteCourse(ctx context.Context, sess session.Session, id string) error
	PublishCourse(ctx context.Context, sess session.Session, id string) error
	DuplicateCourse(ctx context.Context, sess session.Session, id string) (models.Course, error)
	AssignableLearners(ctx context.Context, sess session.Session, courseID string) ([]models.Learner, error)
	ListUnits(ctx context.Context, sess session.Session, courseID string) ([]models.Unit, error)
}

type courseStore interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	SetStatus(ctx context.Context, id string, status models.CourseStatus) error
	Delete(ctx context.Context, id string) error
}

type courseUnitStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Unit, error)
	Create(ctx context.Context, unit *models.Unit) error
}

type learnerStore interface {
	ListAssignable(ctx context.Context, courseID string) ([]models.Learner, error)
}

// CourseService serves course authoring against the primary API with secondary fallback.
type CourseService struct {
	primary    coursePrimary
	courses    courseStore
	units      courseUnitStore
	learners   learnerStore
	selector   *backend.Selector
	workspaces *WorkspaceService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(primary coursePrimary, courses courseStore, units courseUnitStore, learners learnerStore, selector *backend.Selector, workspaces *WorkspaceService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		primary:    primary,
		courses:    courses,
		units:      units,
		learners:   learners,
		selector:   selector,
		workspaces: workspaces,
		validator:  validate,
		logger:     logger,
	}
}

// List returns the trainer's courses.
func (s *CourseService) List(ctx context.Context, sess session.Session) (backend.Outcome[[]models.Course], error) {
	return backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpList,
		func(ctx context.Context) ([]models.Course, error) {
			return s.primary.ListCourses(ctx, sess)
		},
		func(ctx context.Context) ([]models.Course, error) {
			return s.courses.List(ctx)
		},
	)
}

// Get loads a course with its units and opens it in the session's workspace.
func (s *CourseService) Get(ctx context.Context, sess session.Session, id string) (backend.Outcome[models.Course], error) {
	out, err := backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpGet,
		func(ctx context.Context) (models.Course, error) {
			return s.primary.GetCourse(ctx, sess, id)
		},
		func(ctx context.Context) (models.Course, error) {
			course, err := s.courses.FindByID(ctx, id)
			if err != nil {
				return models.Course{}, err
			}
			return *course, nil
		},
	)
	if err != nil {
		return out, err
	}
	if len(out.Value.Units) == 0 {
		units, err := s.listUnits(ctx, sess, id)
		if err != nil {
			s.logger.Warn("attach course units failed", zap.String("course_id", id), zap.Error(err))
		} else {
			out.Value.Units = units.Value
		}
	}
	s.workspaces.Open(sess, out.Value)
	return out, nil
}

func (s *CourseService) listUnits(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.Unit], error) {
	return backend.Resolve(ctx, s.selector, backend.ClassUnit, backend.OpList,
		func(ctx context.Context) ([]models.Unit, error) {
			return s.primary.ListUnits(ctx, sess, courseID)
		},
		func(ctx context.Context) ([]models.Unit, error) {
			return s.units.ListByCourse(ctx, courseID)
		},
	)
}

// Create validates and stores a new course.
func (s *CourseService) Create(ctx context.Context, sess session.Session, in models.CourseInput) (backend.Outcome[models.Course], error) {
	in.ApplyDefaults()
	if err := s.validate(in); err != nil {
		return backend.Outcome[models.Course]{}, err
	}
	return backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpCreate,
		func(ctx context.Context) (models.Course, error) {
			return s.primary.CreateCourse(ctx, sess, in)
		},
		func(ctx context.Context) (models.Course, error) {
			course := in.ToCourse()
			if err := s.courses.Create(ctx, &course); err != nil {
				return models.Course{}, err
			}
			return course, nil
		},
	)
}

// Update replaces the editable fields of a course.
func (s *CourseService) Update(ctx context.Context, sess session.Session, id string, in models.CourseInput) (backend.Outcome[models.Course], error) {
	in.ApplyDefaults()
	if err := s.validate(in); err != nil {
		return backend.Outcome[models.Course]{}, err
	}
	out, err := backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpUpdate,
		func(ctx context.Context) (models.Course, error) {
			return s.primary.UpdateCourse(ctx, sess, id, in)
		},
		func(ctx context.Context) (models.Course, error) {
			existing, err := s.courses.FindByID(ctx, id)
			if err != nil {
				return models.Course{}, err
			}
			course := in.ToCourse()
			course.ID = id
			course.CreatedBy = existing.CreatedBy
			course.CreatedAt = existing.CreatedAt
			if err := s.courses.Update(ctx, &course); err != nil {
				return models.Course{}, err
			}
			return course, nil
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.UpdateCourse(sess, out.Value)
	return out, nil
}

// Delete removes a course and closes its workspace.
func (s *CourseService) Delete(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error) {
	out, err := backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpDelete,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.primary.DeleteCourse(ctx, sess, id)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.courses.Delete(ctx, id)
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.Close(sess, id)
	return out, nil
}

// Publish marks a course as published.
func (s *CourseService) Publish(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error) {
	out, err := backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpAction,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.primary.PublishCourse(ctx, sess, id)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.courses.SetStatus(ctx, id, models.CourseStatusPublished)
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.SetCourseStatus(sess, id, models.CourseStatusPublished)
	return out, nil
}

// Duplicate copies a course. Without the primary it makes a shallow copy on the
// secondary store: a draft titled "<title> (copy)" with copies of the units.
func (s *CourseService) Duplicate(ctx context.Context, sess session.Session, id string) (backend.Outcome[models.Course], error) {
	return backend.Resolve(ctx, s.selector, backend.ClassCourse, backend.OpAction,
		func(ctx context.Context) (models.Course, error) {
			return s.primary.DuplicateCourse(ctx, sess, id)
		},
		func(ctx context.Context) (models.Course, error) {
			return s.duplicateOnSecondary(ctx, id)
		},
	)
}

func (s *CourseService) duplicateOnSecondary(ctx context.Context, id string) (models.Course, error) {
	source, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	course := *source
	course.ID = ""
	course.Title = source.Title + " (copy)"
	course.Status = models.CourseStatusDraft
	course.CreatedAt = time.Time{}
	course.Units = nil
	if err := s.courses.Create(ctx, &course); err != nil {
		return models.Course{}, err
	}

	units, err := s.units.ListByCourse(ctx, id)
	if err != nil {
		s.logger.Warn("list units for duplicate failed", zap.String("course_id", id), zap.Error(err))
		return course, nil
	}
	for _, unit := range units {
		clone := unit
		clone.ID = ""
		clone.CourseID = course.ID
		clone.CreatedAt = time.Time{}
		if err := s.units.Create(ctx, &clone); err != nil {
			if backend.ClassifySecondary(err).Kind == appErrors.KindAuth {
				return models.Course{}, err
			}
			s.logger.Warn("copy unit failed",
				zap.String("course_id", course.ID),
				zap.String("unit_id", unit.ID),
				zap.Error(err),
			)
			continue
		}
		course.Units = append(course.Units, clone)
	}
	return course, nil
}

// AssignableLearners lists learners not yet enrolled in the course.
func (s *CourseService) AssignableLearners(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.Learner], error) {
	return backend.Resolve(ctx, s.selector, backend.ClassLearner, backend.OpList,
		func(ctx context.Context) ([]models.Learner, error) {
			return s.primary.AssignableLearners(ctx, sess, courseID)
		},
		func(ctx context.Context) ([]models.Learner, error) {
			return s.learners.ListAssignable(ctx, courseID)
		},
	)
}

func (s *CourseService) validate(in models.CourseInput) error {
	if err := s.validator.Struct(in); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	return nil
}
