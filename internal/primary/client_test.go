package primary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/config"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/middleware/requestid"
	"github.com/noah-isme/trainer-console/pkg/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.PrimaryConfig{BaseURL: srv.URL}, nil)
}

func TestListCoursesSendsTokenAndDecodesBareArray(t *testing.T) {
	var gotAuth, gotReqID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(requestid.HeaderKey)
		assert.Equal(t, "/api/trainer/v1/course/", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"c1","title":"Intro","status":"draft"}]`)
	})

	ctx := requestid.WithContext(context.Background(), "req-1")
	courses, err := client.ListCourses(ctx, session.Session{Token: "abc"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Intro", courses[0].Title)
	assert.Equal(t, "Token abc", gotAuth)
	assert.Equal(t, "req-1", gotReqID)
}

func TestListCoursesDecodesPaginatedResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count":2,"next":null,"results":[{"id":"c1"},{"id":"c2"}]}`)
	})

	courses, err := client.ListCourses(context.Background(), session.Session{Token: "abc"})
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestRequestWithoutTokenOmitsAuthorization(t *testing.T) {
	var hadAuth bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Authentication credentials were not provided."}`)
	})

	_, err := client.CreateCourse(context.Background(), session.Session{}, models.CourseInput{Title: "Intro", Status: models.CourseStatusDraft})
	require.Error(t, err)
	assert.False(t, hadAuth)
	assert.Equal(t, appErrors.KindAuth, appErrors.KindOf(err))
}

func TestNon2xxKeepsStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "database exploded")
	})

	_, err := client.GetCourse(context.Background(), session.Session{Token: "abc"}, "c1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, appErrors.KindUnknown, appErr.Kind)
	assert.Contains(t, appErr.Message, "database exploded")
}

func TestMalformedJSONIsUnknown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	})

	_, err := client.Dashboard(context.Background(), session.Session{Token: "abc"})
	assert.Equal(t, appErrors.KindUnknown, appErrors.KindOf(err))
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := New(config.PrimaryConfig{BaseURL: base}, nil)
	_, err := client.ListCourses(context.Background(), session.Session{Token: "abc"})
	assert.Equal(t, appErrors.KindNetwork, appErrors.KindOf(err))
}

func TestGetCourseTranslatesEmbeddedUnits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trainer/v1/course/c1/", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"c1","title":"Intro","units":[
			{"id":"u1","course":"c1","module_type":"video","title":"Welcome","sequence_order":0,"is_mandatory":false}
		]}`)
	})

	course, err := client.GetCourse(context.Background(), session.Session{Token: "abc"}, "c1")
	require.NoError(t, err)
	require.Len(t, course.Units, 1)
	unit := course.Units[0]
	assert.Equal(t, models.UnitTypeVideo, unit.Type)
	assert.Equal(t, "c1", unit.CourseID)
	assert.False(t, unit.IsRequired)
}

func TestCreateUnitUsesWireNames(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/units/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"u9","course":"c1","type":"quiz","title":"Check","order":4,"is_required":true}`)
	})

	unit, err := client.CreateUnit(context.Background(), session.Session{Token: "abc"}, models.UnitInput{CourseID: "c1", Type: models.UnitTypeQuiz, Title: "Check"})
	require.NoError(t, err)
	assert.Equal(t, "c1", body["course"])
	assert.Equal(t, "quiz", body["module_type"])
	assert.Equal(t, true, body["is_mandatory"])
	assert.NotContains(t, body, "sequence_order")
	assert.Equal(t, 4, unit.Order)
	assert.Equal(t, models.UnitTypeQuiz, unit.Type)
}

func TestListUnitsFiltersByCourse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c1", r.URL.Query().Get("course_id"))
		_, _ = io.WriteString(w, `{"results":[{"id":"u1","module_type":"text","sequence_order":1}]}`)
	})

	units, err := client.ListUnits(context.Background(), session.Session{Token: "abc"}, "c1")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "c1", units[0].CourseID)
	assert.Equal(t, 1, units[0].Order)
}

func TestBulkEnrollReturnsCreated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/enrollments/bulk_create/", r.URL.Path)
		_, _ = io.WriteString(w, `{"created":2,"message":"2 learners enrolled successfully"}`)
	})

	created, err := client.BulkEnroll(context.Background(), session.Session{Token: "abc"}, "c1", []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestListEnrollmentsAcceptsForeignKeyNames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"e1","course":"c1","user":"p1","user_name":"Ada","status":"assigned","progress_percentage":0}]`)
	})

	enrollments, err := client.ListEnrollments(context.Background(), session.Session{Token: "abc"}, "c1")
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "c1", enrollments[0].CourseID)
	assert.Equal(t, "p1", enrollments[0].UserID)
	require.NotNil(t, enrollments[0].UserName)
	assert.Equal(t, "Ada", *enrollments[0].UserName)
}

func TestDeleteEnrollmentUsesEnrollmentPath(t *testing.T) {
	var method, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteEnrollment(context.Background(), session.Session{Token: "abc"}, "e-1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/enrollments/e-1/", path)
}
