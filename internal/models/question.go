package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// QuestionType enumerates supported quiz question shapes.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionMultipleAnswer QuestionType = "multiple_answer"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionMatching       QuestionType = "matching"
	QuestionOrdering       QuestionType = "ordering"
	QuestionFreeText       QuestionType = "free_text"
)

// UsesOptions reports whether the options array is meaningful for the type.
func (t QuestionType) UsesOptions() bool {
	switch t {
	case QuestionMultipleChoice, QuestionMultipleAnswer, QuestionMatching, QuestionOrdering:
		return true
	}
	return false
}

// Question belongs to a quiz and is ordered within it.
type Question struct {
	ID            string         `db:"id" json:"id"`
	QuizID        string         `db:"quiz_id" json:"quiz_id"`
	Type          QuestionType   `db:"type" json:"type"`
	Text          string         `db:"text" json:"text"`
	Options       types.JSONText `db:"options" json:"options"`
	CorrectAnswer types.JSONText `db:"correct_answer" json:"correct_answer"`
	Points        int            `db:"points" json:"points"`
	Order         int            `db:"order" json:"order"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// GetID returns the question identity.
func (q Question) GetID() string { return q.ID }

// QuestionInput is the editor payload for a question.
type QuestionInput struct {
	Type          QuestionType   `json:"type" validate:"required,oneof=multiple_choice multiple_answer true_false fill_blank matching ordering free_text"`
	Text          string         `json:"text" validate:"required"`
	Options       types.JSONText `json:"options,omitempty"`
	CorrectAnswer types.JSONText `json:"correct_answer,omitempty"`
	Points        int            `json:"points" validate:"gte=0"`
}

// QuestionReorderRequest lists question ids in their new order.
type QuestionReorderRequest struct {
	QuestionIDs []string `json:"question_ids" validate:"required,min=1,dive,required"`
}
