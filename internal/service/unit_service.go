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

type unitPrimary interface {
	ListUnits(ctx context.Context, sess session.Session, courseID string) ([]models.Unit, error)
	CreateUnit(ctx context.Context, sess session.Session, in models.UnitInput) (models.Unit, error)
	UpdateUnit(ctx context.Context, sess session.Session, unit models.Unit) (models.Unit, error)
	DeleteUnit(ctx context.Context, sess session.Session, id string) error
}

type unitStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Unit, error)
	FindByID(ctx context.Context, id string) (*models.Unit, error)
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, courseID string, ids []string) error
}

// UnitService manages the units of a course and keeps the workspace in step.
type UnitService struct {
	primary    unitPrimary
	store      unitStore
	selector   *backend.Selector
	workspaces *WorkspaceService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewUnitService constructs UnitService.
func NewUnitService(primary unitPrimary, store unitStore, selector *backend.Selector, workspaces *WorkspaceService, validate *validator.Validate, logger *zap.Logger) *UnitService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitService{primary: primary, store: store, selector: selector, workspaces: workspaces, validator: validate, logger: logger}
}

// List returns the units of a course ordered by position.
func (s *UnitService) List(ctx context.Context, sess session.Session, courseID string) (backend.Outcome[[]models.Unit], error) {
	out, err := backend.Resolve(ctx, s.selector, backend.ClassUnit, backend.OpList,
		func(ctx context.Context) ([]models.Unit, error) {
			return s.primary.ListUnits(ctx, sess, courseID)
		},
		func(ctx context.Context) ([]models.Unit, error) {
			return s.store.ListByCourse(ctx, courseID)
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.ReplaceUnits(sess, courseID, out.Value)
	return out, nil
}

// Create appends a unit to its course. Units are required unless stated otherwise.
func (s *UnitService) Create(ctx context.Context, sess session.Session, in models.UnitInput) (backend.Outcome[models.Unit], error) {
	if err := s.validator.Struct(in); err != nil {
		return backend.Outcome[models.Unit]{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unit payload")
	}
	if !knownUnitType(in.Type) {
		return backend.Outcome[models.Unit]{}, appErrors.Clone(appErrors.ErrValidation, "unknown unit type "+string(in.Type))
	}
	out, err := backend.Resolve(ctx, s.selector, backend.ClassUnit, backend.OpCreate,
		func(ctx context.Context) (models.Unit, error) {
			return s.primary.CreateUnit(ctx, sess, in)
		},
		func(ctx context.Context) (models.Unit, error) {
			unit := models.Unit{
				CourseID:    in.CourseID,
				Type:        in.Type,
				Title:       in.Title,
				Description: in.Description,
				IsRequired:  true,
			}
			if in.IsRequired != nil {
				unit.IsRequired = *in.IsRequired
			}
			if err := s.store.Create(ctx, &unit); err != nil {
				return models.Unit{}, err
			}
			return unit, nil
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.ApplyUnitCreate(sess, out.Value)
	return out, nil
}

// Update applies upd to a unit. The primary API takes the whole unit, so the
// current state comes from the workspace or a fresh listing.
func (s *UnitService) Update(ctx context.Context, sess session.Session, courseID, unitID string, upd models.UnitUpdate) (backend.Outcome[models.Unit], error) {
	if err := s.validator.Struct(upd); err != nil {
		return backend.Outcome[models.Unit]{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unit payload")
	}
	out, err := backend.Resolve(ctx, s.selector, backend.ClassUnit, backend.OpUpdate,
		func(ctx context.Context) (models.Unit, error) {
			base, err := s.current(ctx, sess, courseID, unitID)
			if err != nil {
				return models.Unit{}, err
			}
			return s.primary.UpdateUnit(ctx, sess, upd.Apply(base))
		},
		func(ctx context.Context) (models.Unit, error) {
			base, err := s.store.FindByID(ctx, unitID)
			if err != nil {
				return models.Unit{}, err
			}
			unit := upd.Apply(*base)
			if err := s.store.Update(ctx, &unit); err != nil {
				return models.Unit{}, err
			}
			return unit, nil
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.ApplyUnitUpdate(sess, out.Value)
	return out, nil
}

func (s *UnitService) current(ctx context.Context, sess session.Session, courseID, unitID string) (models.Unit, error) {
	if unit, ok := s.workspaces.Unit(sess, courseID, unitID); ok {
		return unit, nil
	}
	units, err := s.primary.ListUnits(ctx, sess, courseID)
	if err != nil {
		return models.Unit{}, err
	}
	for _, unit := range units {
		if unit.ID == unitID {
			return unit, nil
		}
	}
	return models.Unit{}, appErrors.Clone(appErrors.ErrNotFound, "unit not found")
}

// Delete removes a unit.
func (s *UnitService) Delete(ctx context.Context, sess session.Session, courseID, unitID string) (backend.Outcome[struct{}], error) {
	out, err := backend.Resolve(ctx, s.selector, backend.ClassUnit, backend.OpDelete,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.primary.DeleteUnit(ctx, sess, unitID)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.store.Delete(ctx, unitID)
		},
	)
	if err != nil {
		return out, err
	}
	s.workspaces.ApplyUnitDelete(sess, courseID, unitID)
	return out, nil
}

// Reorder assigns positions 0..n-1 following ids and returns the reloaded units.
// Positions live on the secondary store only.
func (s *UnitService) Reorder(ctx context.Context, sess session.Session, courseID string, req models.UnitReorderRequest) ([]models.Unit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reorder payload")
	}
	if dup := firstDuplicate(req.UnitIDs); dup != "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unit "+dup+" listed twice")
	}
	units, err := backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpUpdate, func(ctx context.Context) ([]models.Unit, error) {
		if err := s.store.Reorder(ctx, courseID, req.UnitIDs); err != nil {
			return nil, err
		}
		return s.store.ListByCourse(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}
	s.workspaces.ReplaceUnits(sess, courseID, units)
	return units, nil
}

func knownUnitType(t models.UnitType) bool {
	_, ok := t.ContentKind()
	return ok
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
