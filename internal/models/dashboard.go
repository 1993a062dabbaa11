package models

// DashboardStats summarises the trainer's catalogue.
type DashboardStats struct {
	TotalCourses     int     `db:"total_courses" json:"totalCourses"`
	ActiveLearners   int     `db:"active_learners" json:"activeLearners"`
	CompletionRate   float64 `db:"completion_rate" json:"completionRate"`
	TotalEnrollments int     `db:"total_enrollments" json:"totalEnrollments"`
}
