package service

import (
	"sync"
	"time"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/internal/reconcile"
	"github.com/noah-isme/trainer-console/pkg/session"
)

// Workspace is a trainer's working copy of one course: the course, its
// units, the selected unit and that unit's content detail.
type Workspace struct {
	Course    models.Course                     `json:"course"`
	Units     reconcile.Collection[models.Unit] `json:"units"`
	Content   models.Content                    `json:"content,omitempty"`
	UpdatedAt time.Time                         `json:"updated_at"`
}

type workspaceKey struct {
	session string
	course  string
}

// WorkspaceService holds one workspace per (session, course). Every confirmed
// backend result is folded in through the reconcile applier; the last write wins.
type WorkspaceService struct {
	mu    sync.Mutex
	items map[workspaceKey]*Workspace
	now   func() time.Time
}

// NewWorkspaceService constructs an empty workspace registry.
func NewWorkspaceService() *WorkspaceService {
	return &WorkspaceService{items: make(map[workspaceKey]*Workspace), now: time.Now}
}

func keyFor(sess session.Session, courseID string) workspaceKey {
	return workspaceKey{session: sess.Key(), course: courseID}
}

// Open loads course into the session's workspace. Reopening keeps the unit
// selection when that unit is still part of the course.
func (s *WorkspaceService) Open(sess session.Session, course models.Course) Workspace {
	if s == nil {
		return Workspace{Course: course, Units: reconcile.New(course.Units)}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := keyFor(sess, course.ID)
	ws, ok := s.items[key]
	if !ok {
		ws = &Workspace{Units: reconcile.New[models.Unit](nil)}
		s.items[key] = ws
	}
	ws.Course = course
	ws.Units = reconcile.Replace(ws.Units, course.Units)
	if ws.Units.Selected == nil {
		ws.Content = nil
	}
	ws.UpdatedAt = s.now()
	return *ws
}

// Get returns a snapshot of the workspace.
func (s *WorkspaceService) Get(sess session.Session, courseID string) (Workspace, bool) {
	if s == nil {
		return Workspace{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.items[keyFor(sess, courseID)]
	if !ok {
		return Workspace{}, false
	}
	return *ws, true
}

// Close drops the workspace.
func (s *WorkspaceService) Close(sess session.Session, courseID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, keyFor(sess, courseID))
}

// Unit looks up a unit in an open workspace.
func (s *WorkspaceService) Unit(sess session.Session, courseID, unitID string) (models.Unit, bool) {
	ws, ok := s.Get(sess, courseID)
	if !ok {
		return models.Unit{}, false
	}
	idx := reconcile.IndexOf(ws.Units, unitID)
	if idx < 0 {
		return models.Unit{}, false
	}
	return ws.Units.Items[idx], true
}

// mutate applies fn to an open workspace. It reports false when none is open.
func (s *WorkspaceService) mutate(sess session.Session, courseID string, fn func(ws *Workspace)) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.items[keyFor(sess, courseID)]
	if !ok {
		return false
	}
	fn(ws)
	ws.UpdatedAt = s.now()
	return true
}

// UpdateCourse replaces the course header, keeping the loaded units.
func (s *WorkspaceService) UpdateCourse(sess session.Session, course models.Course) {
	s.mutate(sess, course.ID, func(ws *Workspace) {
		course.Units = nil
		ws.Course = course
	})
}

// SetCourseStatus records a publication change.
func (s *WorkspaceService) SetCourseStatus(sess session.Session, courseID string, status models.CourseStatus) {
	s.mutate(sess, courseID, func(ws *Workspace) {
		ws.Course.Status = status
	})
}

// ReplaceUnits applies a full unit reload.
func (s *WorkspaceService) ReplaceUnits(sess session.Session, courseID string, units []models.Unit) {
	s.mutate(sess, courseID, func(ws *Workspace) {
		ws.Units = reconcile.Replace(ws.Units, units)
		if ws.Units.Selected == nil {
			ws.Content = nil
		}
	})
}

// ApplyUnitCreate appends a confirmed new unit.
func (s *WorkspaceService) ApplyUnitCreate(sess session.Session, unit models.Unit) {
	s.mutate(sess, unit.CourseID, func(ws *Workspace) {
		ws.Units = reconcile.ApplyCreate(ws.Units, unit)
	})
}

// ApplyUnitUpdate replaces a unit with its confirmed state.
func (s *WorkspaceService) ApplyUnitUpdate(sess session.Session, unit models.Unit) {
	s.mutate(sess, unit.CourseID, func(ws *Workspace) {
		ws.Units = reconcile.ApplyUpdate(ws.Units, unit)
	})
}

// ApplyUnitDelete removes a unit, clearing the content pane when it was selected.
func (s *WorkspaceService) ApplyUnitDelete(sess session.Session, courseID, unitID string) {
	s.mutate(sess, courseID, func(ws *Workspace) {
		ws.Units = reconcile.ApplyDelete(ws.Units, unitID)
		if ws.Content != nil && ws.Content.GetUnitID() == unitID {
			ws.Content = nil
		}
	})
}

// SelectUnit changes the selection. Content loaded for another unit is dropped.
func (s *WorkspaceService) SelectUnit(sess session.Session, courseID, unitID string) (Workspace, bool) {
	var snapshot Workspace
	ok := s.mutate(sess, courseID, func(ws *Workspace) {
		ws.Units = reconcile.Select(ws.Units, unitID)
		if ws.Content != nil && (ws.Units.Selected == nil || ws.Content.GetUnitID() != ws.Units.Selected.ID) {
			ws.Content = nil
		}
		snapshot = *ws
	})
	return snapshot, ok
}

// SetContent stores the content detail for unitID when that unit is still
// selected. A response for a unit the trainer has moved away from is dropped.
func (s *WorkspaceService) SetContent(sess session.Session, courseID, unitID string, content models.Content) {
	s.mutate(sess, courseID, func(ws *Workspace) {
		if ws.Units.Selected == nil || ws.Units.Selected.ID != unitID {
			return
		}
		ws.Content = content
	})
}

// Sweep drops workspaces untouched for longer than idle and returns how many went.
func (s *WorkspaceService) Sweep(idle time.Duration) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	removed := 0
	for key, ws := range s.items {
		if ws.UpdatedAt.Before(cutoff) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}
