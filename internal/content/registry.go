// Package content dispatches unit content operations by unit type.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

// Store persists satellite records. Find methods fill dest and report whether a row exists.
type Store interface {
	FindByUnit(ctx context.Context, dest models.Content, unitID string) (bool, error)
	FindByID(ctx context.Context, dest models.Content, id string) (bool, error)
	Insert(ctx context.Context, record models.Content) error
	Update(ctx context.Context, record models.Content) error
}

type kindSpec struct {
	newRecord func() models.Content
}

// Adding a ContentKind without a row here fails to compile.
var kindTable = [...]kindSpec{
	models.KindVideo:        {newRecord: func() models.Content { return &models.VideoContent{} }},
	models.KindAudio:        {newRecord: func() models.Content { return &models.AudioContent{} }},
	models.KindPresentation: {newRecord: func() models.Content { return &models.PresentationContent{} }},
	models.KindText:         {newRecord: func() models.Content { return &models.TextContent{} }},
	models.KindPage:         {newRecord: func() models.Content { return &models.PageContent{} }},
	models.KindQuiz:         {newRecord: func() models.Content { return &models.QuizContent{} }},
	models.KindAssignment:   {newRecord: func() models.Content { return &models.AssignmentContent{} }},
	models.KindScorm:        {newRecord: func() models.Content { return &models.ScormContent{} }},
	models.KindSurvey:       {newRecord: func() models.Content { return &models.SurveyContent{} }},
}

var _ [models.NumContentKinds]kindSpec = kindTable

// Ops is the operation set bound to one satellite kind.
type Ops struct {
	kind      models.ContentKind
	spec      kindSpec
	store     Store
	validator *validator.Validate
}

// Kind returns the satellite kind the ops operate on.
func (o *Ops) Kind() models.ContentKind { return o.kind }

// FetchDetail loads the record attached to unitID. It returns nil, nil when none exists yet.
func (o *Ops) FetchDetail(ctx context.Context, unitID string) (models.Content, error) {
	record := o.spec.newRecord()
	found, err := o.store.FindByUnit(ctx, record, unitID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return record, nil
}

// CreateDetail inserts a record for unitID seeded from payload.
func (o *Ops) CreateDetail(ctx context.Context, unitID string, payload json.RawMessage) (models.Content, error) {
	record := o.spec.newRecord()
	if err := decode(payload, record); err != nil {
		return nil, err
	}
	record.SetIdentity(uuid.NewString(), unitID)
	if err := o.validate(record); err != nil {
		return nil, err
	}
	if err := o.store.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateDetail overlays payload on the record with the given id. Fields absent from
// payload keep their stored values, and the record stays attached to its unit.
func (o *Ops) UpdateDetail(ctx context.Context, id string, payload json.RawMessage) (models.Content, error) {
	record := o.spec.newRecord()
	found, err := o.store.FindByID(ctx, record, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, o.kind.String()+" content not found")
	}
	unitID := record.GetUnitID()
	if err := decode(payload, record); err != nil {
		return nil, err
	}
	record.SetIdentity(id, unitID)
	if err := o.validate(record); err != nil {
		return nil, err
	}
	if err := o.store.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (o *Ops) validate(record models.Content) error {
	if err := o.validator.Struct(record); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+o.kind.String()+" content")
	}
	return nil
}

// Resolution is the outcome of looking up a unit type.
type Resolution struct {
	Kind      models.ContentKind
	Ops       *Ops
	Supported bool
}

// Registry maps unit types to their content operations.
type Registry struct {
	ops [models.NumContentKinds]*Ops
}

// NewRegistry binds every content kind to store.
func NewRegistry(store Store, validate *validator.Validate) *Registry {
	if validate == nil {
		validate = validator.New()
	}
	r := &Registry{}
	for kind, spec := range kindTable {
		r.ops[kind] = &Ops{kind: models.ContentKind(kind), spec: spec, store: store, validator: validate}
	}
	return r
}

// Resolve returns the operation set for tag. Unknown tags resolve with Supported false.
func (r *Registry) Resolve(tag models.UnitType) Resolution {
	kind, ok := tag.ContentKind()
	if !ok {
		return Resolution{}
	}
	return Resolution{Kind: kind, Ops: r.ops[kind], Supported: true}
}

func decode(payload json.RawMessage, dest models.Content) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '{' {
		return appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "content payload must be a JSON object")
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "malformed content payload")
	}
	return nil
}
