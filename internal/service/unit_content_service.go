package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/content"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type contentResolver interface {
	Resolve(tag models.UnitType) content.Resolution
}

// UnitContentService loads and saves the content detail behind a unit.
type UnitContentService struct {
	registry   contentResolver
	selector   *backend.Selector
	workspaces *WorkspaceService
	logger     *zap.Logger
}

// NewUnitContentService constructs UnitContentService.
func NewUnitContentService(registry contentResolver, selector *backend.Selector, workspaces *WorkspaceService, logger *zap.Logger) *UnitContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitContentService{registry: registry, selector: selector, workspaces: workspaces, logger: logger}
}

func (s *UnitContentService) ops(tag models.UnitType) (*content.Ops, error) {
	res := s.registry.Resolve(tag)
	if !res.Supported {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedType, "no editor available for unit type "+string(tag))
	}
	return res.Ops, nil
}

// Get returns the content record of a unit, or nil when none has been saved yet.
// The detail is stored in the workspace when the unit is still selected there.
func (s *UnitContentService) Get(ctx context.Context, sess session.Session, courseID, unitID string, tag models.UnitType) (models.Content, error) {
	ops, err := s.ops(tag)
	if err != nil {
		return nil, err
	}
	detail, err := backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpGet, func(ctx context.Context) (models.Content, error) {
		return ops.FetchDetail(ctx, unitID)
	})
	if err != nil {
		return nil, err
	}
	if courseID != "" {
		s.workspaces.SetContent(sess, courseID, unitID, detail)
	}
	return detail, nil
}

// Update saves payload as the content of a unit. It updates the existing record
// or creates one bound to unitID; each call performs exactly one write.
func (s *UnitContentService) Update(ctx context.Context, sess session.Session, courseID, unitID string, tag models.UnitType, payload json.RawMessage) (models.Content, error) {
	ops, err := s.ops(tag)
	if err != nil {
		return nil, err
	}
	existing, err := backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpGet, func(ctx context.Context) (models.Content, error) {
		return ops.FetchDetail(ctx, unitID)
	})
	if err != nil {
		return nil, err
	}

	var op backend.Operation
	var write backend.Call[models.Content]
	if existing != nil {
		op = backend.OpUpdate
		write = func(ctx context.Context) (models.Content, error) {
			return ops.UpdateDetail(ctx, existing.GetID(), payload)
		}
	} else {
		op = backend.OpCreate
		write = func(ctx context.Context) (models.Content, error) {
			return ops.CreateDetail(ctx, unitID, payload)
		}
	}
	saved, err := backend.Secondary(ctx, s.selector, backend.ClassUnit, op, write)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("unit content saved",
		zap.String("unit_id", unitID),
		zap.String("kind", ops.Kind().String()),
		zap.String("operation", string(op)),
	)
	if courseID != "" {
		s.workspaces.SetContent(sess, courseID, unitID, saved)
	}
	return saved, nil
}
