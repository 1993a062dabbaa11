package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestUnitServiceListReplacesWorkspaceUnits(t *testing.T) {
	primary := &fakePrimary{units: []models.Unit{{ID: "u-1", CourseID: "c-1"}, {ID: "u-2", CourseID: "c-1"}}}
	ws := NewWorkspaceService()
	ws.Open(trainerSession, models.Course{ID: "c-1"})
	svc := NewUnitService(primary, memUnits{newMemCourses()}, allClassesSelector(), ws, nil, nil)

	out, err := svc.List(context.Background(), trainerSession, "c-1")
	require.NoError(t, err)
	assert.Len(t, out.Value, 2)
	workspace, _ := ws.Get(trainerSession, "c-1")
	assert.Len(t, workspace.Units.Items, 2)
}

func TestUnitServiceCreateAppendsToWorkspace(t *testing.T) {
	ws := NewWorkspaceService()
	ws.Open(trainerSession, models.Course{ID: "c-1"})
	svc := NewUnitService(&fakePrimary{}, memUnits{newMemCourses()}, allClassesSelector(), ws, nil, nil)

	out, err := svc.Create(context.Background(), trainerSession, models.UnitInput{CourseID: "c-1", Type: models.UnitTypeVideo, Title: "Welcome"})
	require.NoError(t, err)
	assert.Equal(t, backend.SourcePrimary, out.Source)

	workspace, _ := ws.Get(trainerSession, "c-1")
	require.Len(t, workspace.Units.Items, 1)
	assert.Equal(t, out.Value.ID, workspace.Units.Items[0].ID)
}

func TestUnitServiceCreateRejectsUnknownType(t *testing.T) {
	primary := &fakePrimary{}
	svc := NewUnitService(primary, memUnits{newMemCourses()}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	_, err := svc.Create(context.Background(), trainerSession, models.UnitInput{CourseID: "c-1", Type: "hologram", Title: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
	assert.Empty(t, primary.calls)
}

func TestUnitServiceCreateFallbackDefaultsRequired(t *testing.T) {
	store := newMemCourses()
	svc := NewUnitService(&fakePrimary{err: primaryDenied}, memUnits{store}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	first, err := svc.Create(context.Background(), trainerSession, models.UnitInput{CourseID: "c-1", Type: models.UnitTypeText, Title: "A"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), trainerSession, models.UnitInput{CourseID: "c-1", Type: models.UnitTypeQuiz, Title: "B", IsRequired: boolPtr(false)})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Warning)
	assert.True(t, first.Value.IsRequired)
	assert.False(t, second.Value.IsRequired)
	assert.Equal(t, 0, first.Value.Order)
	assert.Equal(t, 1, second.Value.Order)
}

func TestUnitServiceUpdateSendsFullUnitFromWorkspace(t *testing.T) {
	primary := &fakePrimary{}
	ws := NewWorkspaceService()
	ws.Open(trainerSession, models.Course{ID: "c-1", Units: []models.Unit{{ID: "u-1", CourseID: "c-1", Type: models.UnitTypeVideo, Title: "Old", IsRequired: true, Order: 3}}})
	svc := NewUnitService(primary, memUnits{newMemCourses()}, allClassesSelector(), ws, nil, nil)

	out, err := svc.Update(context.Background(), trainerSession, "c-1", "u-1", models.UnitUpdate{Title: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", out.Value.Title)
	assert.Equal(t, models.UnitTypeVideo, out.Value.Type)
	assert.True(t, out.Value.IsRequired)
	assert.Equal(t, []string{"update_unit"}, primary.calls)

	workspace, _ := ws.Get(trainerSession, "c-1")
	assert.Equal(t, "New", workspace.Units.Items[0].Title)
}

func TestUnitServiceUpdateListsWhenWorkspaceMissing(t *testing.T) {
	primary := &fakePrimary{units: []models.Unit{{ID: "u-1", CourseID: "c-1", Title: "Old"}}}
	svc := NewUnitService(primary, memUnits{newMemCourses()}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	out, err := svc.Update(context.Background(), trainerSession, "c-1", "u-1", models.UnitUpdate{IsRequired: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Old", out.Value.Title)
	assert.Equal(t, []string{"list_units", "update_unit"}, primary.calls)
}

func TestUnitServiceUpdateFallback(t *testing.T) {
	store := newMemCourses()
	store.units = []models.Unit{{ID: "u-1", CourseID: "c-1", Title: "Old"}}
	svc := NewUnitService(&fakePrimary{err: primaryDenied}, memUnits{store}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	out, err := svc.Update(context.Background(), trainerSession, "c-1", "u-1", models.UnitUpdate{Title: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, backend.SourceSecondary, out.Source)
	assert.Equal(t, "New", store.units[0].Title)
}

func TestUnitServiceDeleteClearsSelection(t *testing.T) {
	ws := NewWorkspaceService()
	ws.Open(trainerSession, models.Course{ID: "c-1", Units: []models.Unit{{ID: "u-1", CourseID: "c-1"}}})
	ws.SelectUnit(trainerSession, "c-1", "u-1")
	svc := NewUnitService(&fakePrimary{}, memUnits{newMemCourses()}, allClassesSelector(), ws, nil, nil)

	_, err := svc.Delete(context.Background(), trainerSession, "c-1", "u-1")
	require.NoError(t, err)
	workspace, _ := ws.Get(trainerSession, "c-1")
	assert.Empty(t, workspace.Units.Items)
	assert.Nil(t, workspace.Units.Selected)
}

func TestUnitServiceReorder(t *testing.T) {
	store := newMemCourses()
	store.units = []models.Unit{
		{ID: "u-1", CourseID: "c-1", Order: 0},
		{ID: "u-2", CourseID: "c-1", Order: 1},
		{ID: "u-3", CourseID: "c-1", Order: 2},
	}
	svc := NewUnitService(&fakePrimary{}, memUnits{store}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	units, err := svc.Reorder(context.Background(), trainerSession, "c-1", models.UnitReorderRequest{UnitIDs: []string{"u-3", "u-1", "u-2"}})
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, "u-3", units[0].ID)
	assert.Equal(t, 0, units[0].Order)
	assert.Equal(t, "u-2", units[2].ID)
}

func TestUnitServiceReorderRejectsDuplicates(t *testing.T) {
	svc := NewUnitService(&fakePrimary{}, memUnits{newMemCourses()}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	_, err := svc.Reorder(context.Background(), trainerSession, "c-1", models.UnitReorderRequest{UnitIDs: []string{"u-1", "u-1"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
}

func TestUnitServiceReorderPermissionFailureIsActionable(t *testing.T) {
	svc := NewUnitService(&fakePrimary{}, failingReorder{memUnits{newMemCourses()}}, allClassesSelector(), NewWorkspaceService(), nil, nil)

	_, err := svc.Reorder(context.Background(), trainerSession, "c-1", models.UnitReorderRequest{UnitIDs: []string{"u-1"}})
	require.Error(t, err)
	assert.True(t, appErrors.FromError(err).Actionable)
}

type failingReorder struct{ memUnits }

func (failingReorder) Reorder(context.Context, string, []string) error {
	return &pq.Error{Code: "42501"}
}
