package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/response"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type fakeCourseService struct {
	err      error
	source   backend.Source
	warning  string
	sessions []session.Session
	lastID   string
	lastIn   models.CourseInput
}

func (f *fakeCourseService) outcome(course models.Course) (backend.Outcome[models.Course], error) {
	if f.err != nil {
		return backend.Outcome[models.Course]{}, f.err
	}
	return backend.Outcome[models.Course]{Value: course, Source: f.source, Warning: f.warning}, nil
}

func (f *fakeCourseService) List(_ context.Context, sess session.Session) (backend.Outcome[[]models.Course], error) {
	f.sessions = append(f.sessions, sess)
	if f.err != nil {
		return backend.Outcome[[]models.Course]{}, f.err
	}
	return backend.Outcome[[]models.Course]{Value: []models.Course{{ID: "c-1", Title: "Safety"}}, Source: f.source}, nil
}

func (f *fakeCourseService) Get(_ context.Context, sess session.Session, id string) (backend.Outcome[models.Course], error) {
	f.sessions = append(f.sessions, sess)
	f.lastID = id
	return f.outcome(models.Course{ID: id})
}

func (f *fakeCourseService) Create(_ context.Context, _ session.Session, in models.CourseInput) (backend.Outcome[models.Course], error) {
	f.lastIn = in
	return f.outcome(models.Course{ID: "c-new", Title: in.Title})
}

func (f *fakeCourseService) Update(_ context.Context, _ session.Session, id string, in models.CourseInput) (backend.Outcome[models.Course], error) {
	f.lastID = id
	f.lastIn = in
	return f.outcome(models.Course{ID: id, Title: in.Title})
}

func (f *fakeCourseService) Delete(_ context.Context, _ session.Session, id string) (backend.Outcome[struct{}], error) {
	f.lastID = id
	if f.err != nil {
		return backend.Outcome[struct{}]{}, f.err
	}
	return backend.Outcome[struct{}]{Source: f.source, Warning: f.warning}, nil
}

func (f *fakeCourseService) Publish(ctx context.Context, sess session.Session, id string) (backend.Outcome[struct{}], error) {
	return f.Delete(ctx, sess, id)
}

func (f *fakeCourseService) Duplicate(_ context.Context, _ session.Session, id string) (backend.Outcome[models.Course], error) {
	f.lastID = id
	return f.outcome(models.Course{ID: "c-copy", Title: "Safety (copy)"})
}

func (f *fakeCourseService) AssignableLearners(_ context.Context, _ session.Session, courseID string) (backend.Outcome[[]models.Learner], error) {
	f.lastID = courseID
	return backend.Outcome[[]models.Learner]{Value: []models.Learner{{ID: "l-1"}}, Source: f.source}, nil
}

func TestCourseHandlerListReportsSource(t *testing.T) {
	svc := &fakeCourseService{source: backend.SourcePrimary}
	handler := NewCourseHandler(svc)
	c, rec := newTestContext(http.MethodGet, "/courses", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "primary", rec.Header().Get(response.HeaderBackendSource))
	var courses []models.Course
	envelope := decodeData(t, rec, &courses)
	assert.Equal(t, "primary", envelope.Meta["source"])
	require.Len(t, courses, 1)
	assert.Equal(t, []session.Session{testSession}, svc.sessions)
}

func TestCourseHandlerGetMapsNotFound(t *testing.T) {
	handler := NewCourseHandler(&fakeCourseService{err: appErrors.Clone(appErrors.ErrNotFound, "course not found")})
	c, rec := newTestContext(http.MethodGet, "/courses/missing", nil, gin.Param{Key: "id", Value: "missing"})

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.KindNotFound, envelope.Error.Kind)
}

func TestCourseHandlerCreateRejectsMalformedBody(t *testing.T) {
	svc := &fakeCourseService{}
	handler := NewCourseHandler(svc)
	c, rec := newTestContext(http.MethodPost, "/courses", "{not json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.lastIn.Title)
}

func TestCourseHandlerCreateSurfacesWarning(t *testing.T) {
	svc := &fakeCourseService{source: backend.SourceSecondary, warning: "course create stored on secondary backend"}
	handler := NewCourseHandler(svc)
	c, rec := newTestContext(http.MethodPost, "/courses", models.CourseInput{Title: "Safety"})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Safety", svc.lastIn.Title)
	assert.Equal(t, svc.warning, rec.Header().Get(response.HeaderBackendWarning))
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "secondary", envelope.Meta["source"])
	assert.Equal(t, svc.warning, envelope.Meta["warning"])
}

func TestCourseHandlerActionableErrorIsForbidden(t *testing.T) {
	handler := NewCourseHandler(&fakeCourseService{err: appErrors.AuthActionable("insert blocked", nil)})
	c, rec := newTestContext(http.MethodPut, "/courses/c-1", models.CourseInput{Title: "Safety"}, gin.Param{Key: "id", Value: "c-1"})

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.True(t, envelope.Error.Actionable)
	assert.Contains(t, envelope.Error.Message, "trainerToken")
}

func TestCourseHandlerDeleteAndPublishNoContent(t *testing.T) {
	svc := &fakeCourseService{source: backend.SourceSecondary, warning: "stored on secondary"}
	handler := NewCourseHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/courses/c-1", nil, gin.Param{Key: "id", Value: "c-1"})
	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "secondary", rec.Header().Get(response.HeaderBackendSource))
	assert.Equal(t, "c-1", svc.lastID)

	c, rec = newTestContext(http.MethodPost, "/courses/c-2/publish", nil, gin.Param{Key: "id", Value: "c-2"})
	handler.Publish(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "c-2", svc.lastID)
}

func TestCourseHandlerDuplicateCreated(t *testing.T) {
	svc := &fakeCourseService{source: backend.SourcePrimary}
	handler := NewCourseHandler(svc)
	c, rec := newTestContext(http.MethodPost, "/courses/c-1/duplicate", nil, gin.Param{Key: "id", Value: "c-1"})

	handler.Duplicate(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var course models.Course
	decodeData(t, rec, &course)
	assert.Equal(t, "Safety (copy)", course.Title)
}

func TestCourseHandlerAssignableLearners(t *testing.T) {
	svc := &fakeCourseService{source: backend.SourcePrimary}
	handler := NewCourseHandler(svc)
	c, rec := newTestContext(http.MethodGet, "/courses/c-1/assignable-learners", nil, gin.Param{Key: "id", Value: "c-1"})

	handler.AssignableLearners(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-1", svc.lastID)
}
