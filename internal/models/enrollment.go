package models

import "time"

// EnrollmentStatus enumerates learner progress through a course.
type EnrollmentStatus string

const (
	EnrollmentStatusAssigned   EnrollmentStatus = "assigned"
	EnrollmentStatusInProgress EnrollmentStatus = "in_progress"
	EnrollmentStatusCompleted  EnrollmentStatus = "completed"
)

// Enrollment links a learner to a course.
type Enrollment struct {
	ID                 string           `db:"id" json:"id"`
	CourseID           string           `db:"course_id" json:"course_id"`
	UserID             string           `db:"user_id" json:"user_id"`
	AssignedBy         *string          `db:"assigned_by" json:"assigned_by,omitempty"`
	Status             EnrollmentStatus `db:"status" json:"status"`
	ProgressPercentage int              `db:"progress_percentage" json:"progress_percentage"`
	AssignedAt         time.Time        `db:"assigned_at" json:"assigned_at"`
	StartedAt          *time.Time       `db:"started_at" json:"started_at,omitempty"`
	CompletedAt        *time.Time       `db:"completed_at" json:"completed_at,omitempty"`
}

// GetID returns the enrollment identity.
func (e Enrollment) GetID() string { return e.ID }

// EnrollmentDetail adds learner profile fields for listings and exports.
type EnrollmentDetail struct {
	Enrollment
	UserName  *string `db:"user_name" json:"user_name,omitempty"`
	UserEmail *string `db:"user_email" json:"user_email,omitempty"`
}

// AssignRequest bulk assigns a course to learners.
type AssignRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1,dive,required"`
}

// AssignResult reports how many enrollments were created.
type AssignResult struct {
	Created int `json:"created"`
}
