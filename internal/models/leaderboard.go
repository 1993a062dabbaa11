package models

import "time"

// Points awarded per completed unit when ranking learners.
const PointsPerCompletedUnit = 10

// LeaderboardEntry is the denormalised score of a learner within a course.
type LeaderboardEntry struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	CourseID       string    `db:"course_id" json:"course_id"`
	TotalPoints    int       `db:"total_points" json:"total_points"`
	CompletedUnits int       `db:"completed_units" json:"completed_units"`
	QuizScoreTotal int       `db:"quiz_score_total" json:"quiz_score_total"`
	ActivityPoints int       `db:"activity_points" json:"activity_points"`
	Rank           int       `db:"rank" json:"rank"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	UserName       *string   `db:"user_name" json:"user_name,omitempty"`
	UserEmail      *string   `db:"user_email" json:"user_email,omitempty"`
}

// LearnerActivity is the raw input for a leaderboard score.
type LearnerActivity struct {
	Enrolled       bool `db:"enrolled"`
	CompletedUnits int  `db:"completed_units"`
	QuizScoreTotal int  `db:"quiz_score_total"`
	ProgressRows   int  `db:"progress_rows"`
}

// Score computes the point totals for an entry.
func (a LearnerActivity) Score() (total, activity int) {
	return a.CompletedUnits*PointsPerCompletedUnit + a.QuizScoreTotal, a.ProgressRows
}
