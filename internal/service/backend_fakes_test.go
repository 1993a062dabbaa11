package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sort"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
	"github.com/noah-isme/trainer-console/pkg/session"
)

var (
	trainerSession = session.Session{Token: "tok"}
	primaryDenied  = appErrors.FromHTTPStatus(http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`)
	primaryMissing = appErrors.FromHTTPStatus(http.StatusNotFound, "")
	primaryBroken  = appErrors.FromHTTPStatus(http.StatusInternalServerError, "boom")
)

func allClassesSelector() *backend.Selector {
	return backend.NewSelector([]string{"course", "unit", "enrollment", "learner", "dashboard"}, nil, nil)
}

// fakePrimary answers every primary call with err when set, otherwise with its data.
type fakePrimary struct {
	err         error
	courses     []models.Course
	units       []models.Unit
	learners    []models.Learner
	enrollments []models.EnrollmentDetail
	dashboard   models.DashboardStats
	created     int
	calls       []string
	tokens      []string
	assigned    []string
}

func (f *fakePrimary) record(sess session.Session, name string) error {
	f.calls = append(f.calls, name)
	f.tokens = append(f.tokens, sess.Token)
	return f.err
}

func (f *fakePrimary) Dashboard(_ context.Context, sess session.Session) (models.DashboardStats, error) {
	if err := f.record(sess, "dashboard"); err != nil {
		return models.DashboardStats{}, err
	}
	return f.dashboard, nil
}

func (f *fakePrimary) ListCourses(_ context.Context, sess session.Session) ([]models.Course, error) {
	if err := f.record(sess, "list_courses"); err != nil {
		return nil, err
	}
	return f.courses, nil
}

func (f *fakePrimary) GetCourse(_ context.Context, sess session.Session, id string) (models.Course, error) {
	if err := f.record(sess, "get_course"); err != nil {
		return models.Course{}, err
	}
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, primaryMissing
}

func (f *fakePrimary) CreateCourse(_ context.Context, sess session.Session, in models.CourseInput) (models.Course, error) {
	if err := f.record(sess, "create_course"); err != nil {
		return models.Course{}, err
	}
	course := in.ToCourse()
	course.ID = fmt.Sprintf("p-course-%d", len(f.courses)+1)
	f.courses = append(f.courses, course)
	return course, nil
}

func (f *fakePrimary) UpdateCourse(_ context.Context, sess session.Session, id string, in models.CourseInput) (models.Course, error) {
	if err := f.record(sess, "update_course"); err != nil {
		return models.Course{}, err
	}
	course := in.ToCourse()
	course.ID = id
	return course, nil
}

func (f *fakePrimary) DeleteCourse(_ context.Context, sess session.Session, _ string) error {
	return f.record(sess, "delete_course")
}

func (f *fakePrimary) PublishCourse(_ context.Context, sess session.Session, _ string) error {
	return f.record(sess, "publish_course")
}

func (f *fakePrimary) DuplicateCourse(_ context.Context, sess session.Session, id string) (models.Course, error) {
	if err := f.record(sess, "duplicate_course"); err != nil {
		return models.Course{}, err
	}
	return models.Course{ID: id + "-dup", Title: "dup"}, nil
}

func (f *fakePrimary) AssignableLearners(_ context.Context, sess session.Session, _ string) ([]models.Learner, error) {
	if err := f.record(sess, "assignable_learners"); err != nil {
		return nil, err
	}
	return f.learners, nil
}

func (f *fakePrimary) AssignCourse(_ context.Context, sess session.Session, _ string, userIDs []string) (int, error) {
	if err := f.record(sess, "assign_course"); err != nil {
		return 0, err
	}
	f.assigned = append(f.assigned, userIDs...)
	return f.created, nil
}

func (f *fakePrimary) ListUnits(_ context.Context, sess session.Session, courseID string) ([]models.Unit, error) {
	if err := f.record(sess, "list_units"); err != nil {
		return nil, err
	}
	var out []models.Unit
	for _, u := range f.units {
		if u.CourseID == courseID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakePrimary) CreateUnit(_ context.Context, sess session.Session, in models.UnitInput) (models.Unit, error) {
	if err := f.record(sess, "create_unit"); err != nil {
		return models.Unit{}, err
	}
	unit := models.Unit{ID: fmt.Sprintf("p-unit-%d", len(f.units)+1), CourseID: in.CourseID, Type: in.Type, Title: in.Title, Order: len(f.units)}
	f.units = append(f.units, unit)
	return unit, nil
}

func (f *fakePrimary) UpdateUnit(_ context.Context, sess session.Session, unit models.Unit) (models.Unit, error) {
	if err := f.record(sess, "update_unit"); err != nil {
		return models.Unit{}, err
	}
	return unit, nil
}

func (f *fakePrimary) DeleteUnit(_ context.Context, sess session.Session, _ string) error {
	return f.record(sess, "delete_unit")
}

func (f *fakePrimary) DeleteEnrollment(_ context.Context, sess session.Session, _ string) error {
	return f.record(sess, "delete_enrollment")
}

func (f *fakePrimary) ListEnrollments(_ context.Context, sess session.Session, _ string) ([]models.EnrollmentDetail, error) {
	if err := f.record(sess, "list_enrollments"); err != nil {
		return nil, err
	}
	return f.enrollments, nil
}

func (f *fakePrimary) BulkEnroll(_ context.Context, sess session.Session, _ string, userIDs []string) (int, error) {
	if err := f.record(sess, "bulk_enroll"); err != nil {
		return 0, err
	}
	f.assigned = append(f.assigned, userIDs...)
	return f.created, nil
}

// memCourses is an in-memory course and unit store.
type memCourses struct {
	courses       map[string]models.Course
	units         []models.Unit
	err           error
	unitCreateErr error
	statuses      map[string]models.CourseStatus
	seq           int
}

func newMemCourses(courses ...models.Course) *memCourses {
	m := &memCourses{courses: map[string]models.Course{}, statuses: map[string]models.CourseStatus{}}
	for _, c := range courses {
		m.courses[c.ID] = c
	}
	return m
}

func (m *memCourses) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memCourses) List(context.Context) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCourses) FindByID(_ context.Context, id string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, fmt.Errorf("get course: %w", sql.ErrNoRows)
	}
	return &c, nil
}

func (m *memCourses) Create(_ context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	if course.ID == "" {
		course.ID = m.nextID("s-course")
	}
	m.courses[course.ID] = *course
	return nil
}

func (m *memCourses) Update(_ context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.courses[course.ID]; !ok {
		return fmt.Errorf("update course: %w", sql.ErrNoRows)
	}
	m.courses[course.ID] = *course
	return nil
}

func (m *memCourses) SetStatus(_ context.Context, id string, status models.CourseStatus) error {
	if m.err != nil {
		return m.err
	}
	m.statuses[id] = status
	return nil
}

func (m *memCourses) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.courses, id)
	return nil
}

func (m *memCourses) ListByCourse(_ context.Context, courseID string) ([]models.Unit, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Unit{}
	for _, u := range m.units {
		if u.CourseID == courseID {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memCourses) unitIndex(id string) int {
	for i, u := range m.units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (m *memCourses) FindUnit(_ context.Context, id string) (*models.Unit, error) {
	if idx := m.unitIndex(id); idx >= 0 {
		u := m.units[idx]
		return &u, nil
	}
	return nil, fmt.Errorf("get unit: %w", sql.ErrNoRows)
}

func (m *memCourses) createUnit(unit *models.Unit) error {
	if m.unitCreateErr != nil {
		return m.unitCreateErr
	}
	if unit.ID == "" {
		unit.ID = m.nextID("s-unit")
	}
	order := 0
	for _, u := range m.units {
		if u.CourseID == unit.CourseID && u.Order >= order {
			order = u.Order + 1
		}
	}
	unit.Order = order
	m.units = append(m.units, *unit)
	return nil
}

func (m *memCourses) updateUnit(unit *models.Unit) error {
	idx := m.unitIndex(unit.ID)
	if idx < 0 {
		return fmt.Errorf("update unit: %w", sql.ErrNoRows)
	}
	m.units[idx] = *unit
	return nil
}

func (m *memCourses) deleteUnit(id string) error {
	idx := m.unitIndex(id)
	if idx < 0 {
		return fmt.Errorf("delete unit: %w", sql.ErrNoRows)
	}
	m.units = append(m.units[:idx], m.units[idx+1:]...)
	return nil
}

func (m *memCourses) reorderUnits(courseID string, ids []string) error {
	for pos, id := range ids {
		idx := m.unitIndex(id)
		if idx < 0 || m.units[idx].CourseID != courseID {
			return fmt.Errorf("reorder unit %s: %w", id, sql.ErrNoRows)
		}
		m.units[idx].Order = pos
	}
	return nil
}

// memUnits adapts memCourses to the unit store interfaces.
type memUnits struct{ *memCourses }

func (m memUnits) Create(_ context.Context, unit *models.Unit) error { return m.createUnit(unit) }
func (m memUnits) FindByID(ctx context.Context, id string) (*models.Unit, error) {
	return m.FindUnit(ctx, id)
}
func (m memUnits) Update(_ context.Context, unit *models.Unit) error { return m.updateUnit(unit) }
func (m memUnits) Delete(_ context.Context, id string) error        { return m.deleteUnit(id) }
func (m memUnits) Reorder(_ context.Context, courseID string, ids []string) error {
	return m.reorderUnits(courseID, ids)
}

type memLearners struct {
	learners []models.Learner
	err      error
}

func (m *memLearners) ListAssignable(context.Context, string) ([]models.Learner, error) {
	return m.learners, m.err
}
