package primary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/session"
)

type wireEnrollment struct {
	models.Enrollment
	Course json.RawMessage `json:"course"`
	User   json.RawMessage `json:"user"`
	Name   *string         `json:"user_name"`
}

func (w wireEnrollment) toDetail() models.EnrollmentDetail {
	e := w.Enrollment
	if e.CourseID == "" {
		e.CourseID = rawID(w.Course)
	}
	if e.UserID == "" {
		e.UserID = rawID(w.User)
	}
	return models.EnrollmentDetail{Enrollment: e, UserName: w.Name}
}

func rawID(raw json.RawMessage) string {
	var id string
	if len(raw) > 0 && json.Unmarshal(raw, &id) == nil {
		return id
	}
	return ""
}

// ListEnrollments returns the enrollments of a course.
func (c *Client) ListEnrollments(ctx context.Context, sess session.Session, courseID string) ([]models.EnrollmentDetail, error) {
	raw, err := c.do(ctx, sess, http.MethodGet, enrollmentsPath+"?course_id="+url.QueryEscape(courseID), nil)
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireEnrollment](raw)
	if err != nil {
		return nil, err
	}
	out := make([]models.EnrollmentDetail, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDetail())
	}
	return out, nil
}

// BulkEnroll creates assigned enrollments for each learner not yet enrolled.
func (c *Client) BulkEnroll(ctx context.Context, sess session.Session, courseID string, userIDs []string) (int, error) {
	body := map[string]interface{}{"course_id": courseID, "user_ids": userIDs}
	var result models.AssignResult
	err := c.sendJSON(ctx, sess, http.MethodPost, enrollmentsPath+"bulk_create/", body, &result)
	return result.Created, err
}

// DeleteEnrollment removes a single enrollment.
func (c *Client) DeleteEnrollment(ctx context.Context, sess session.Session, id string) error {
	_, err := c.do(ctx, sess, http.MethodDelete, enrollmentsPath+url.PathEscape(id)+"/", nil)
	return err
}
