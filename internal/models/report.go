package models

import "time"

// CourseReport aggregates enrollment and quiz results for one course.
type CourseReport struct {
	CourseID         string `json:"courseId"`
	CourseTitle      string `json:"courseTitle"`
	TotalEnrollments int    `json:"totalEnrollments"`
	InProgress       int    `json:"inProgress"`
	Completed        int    `json:"completed"`
	AverageProgress  int    `json:"averageProgress"`
	AverageScore     int    `json:"averageScore"`
}

// LearnerReport aggregates a learner's activity across courses.
type LearnerReport struct {
	UserID           string     `json:"userId"`
	UserName         string     `json:"userName"`
	Email            string     `json:"email"`
	CoursesEnrolled  int        `json:"coursesEnrolled"`
	CoursesCompleted int        `json:"coursesCompleted"`
	AverageProgress  int        `json:"averageProgress"`
	TotalQuizScore   int        `json:"totalQuizScore"`
	LastActivity     *time.Time `json:"lastActivity,omitempty"`
}

// ExportFormat selects the rendition of a report export.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
