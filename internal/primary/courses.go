package primary

import (
	"context"
	"net/http"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/session"
)

// Dashboard fetches the aggregate stats for the signed-in trainer.
func (c *Client) Dashboard(ctx context.Context, sess session.Session) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := c.getJSON(ctx, sess, dashboardPath, &stats)
	return stats, err
}

// ListCourses returns the trainer's courses.
func (c *Client) ListCourses(ctx context.Context, sess session.Session) ([]models.Course, error) {
	return listJSON[models.Course](ctx, c, sess, coursesPath)
}

// GetCourse returns a course, including units when the API embeds them.
func (c *Client) GetCourse(ctx context.Context, sess session.Session, id string) (models.Course, error) {
	var wire struct {
		models.Course
		Units []wireUnit `json:"units"`
	}
	if err := c.getJSON(ctx, sess, coursePath(id, ""), &wire); err != nil {
		return models.Course{}, err
	}
	course := wire.Course
	course.Units = toUnits(wire.Units, course.ID)
	return course, nil
}

// CreateCourse submits a new course.
func (c *Client) CreateCourse(ctx context.Context, sess session.Session, in models.CourseInput) (models.Course, error) {
	var course models.Course
	err := c.sendJSON(ctx, sess, http.MethodPost, coursesPath, in, &course)
	return course, err
}

// UpdateCourse replaces the editable fields of a course.
func (c *Client) UpdateCourse(ctx context.Context, sess session.Session, id string, in models.CourseInput) (models.Course, error) {
	var course models.Course
	err := c.sendJSON(ctx, sess, http.MethodPut, coursePath(id, ""), in, &course)
	return course, err
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, sess session.Session, id string) error {
	_, err := c.do(ctx, sess, http.MethodDelete, coursePath(id, ""), nil)
	return err
}

// PublishCourse marks a course as published.
func (c *Client) PublishCourse(ctx context.Context, sess session.Session, id string) error {
	_, err := c.do(ctx, sess, http.MethodPost, coursePath(id, "publish"), nil)
	return err
}

// DuplicateCourse asks the API for a server-side copy and returns the new course.
func (c *Client) DuplicateCourse(ctx context.Context, sess session.Session, id string) (models.Course, error) {
	var course models.Course
	err := c.sendJSON(ctx, sess, http.MethodPost, coursePath(id, "duplicate"), nil, &course)
	return course, err
}

// AssignableLearners lists learners that can still be assigned to the course.
func (c *Client) AssignableLearners(ctx context.Context, sess session.Session, courseID string) ([]models.Learner, error) {
	return listJSON[models.Learner](ctx, c, sess, coursePath(courseID, "assignable_learners"))
}

// AssignCourse enrolls the given learners and reports how many enrollments were created.
func (c *Client) AssignCourse(ctx context.Context, sess session.Session, courseID string, userIDs []string) (int, error) {
	var result models.AssignResult
	body := map[string][]string{"user_ids": userIDs}
	err := c.sendJSON(ctx, sess, http.MethodPost, coursePath(courseID, "assign"), body, &result)
	return result.Created, err
}
