package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/trainer-console/internal/models"
)

const questionColumns = `id, quiz_id, type, text, options, correct_answer, points, "order", created_at`

// QuestionRepository persists quiz questions.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository constructs the repository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListByQuiz returns questions in position order.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID string) ([]models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE quiz_id = $1 ORDER BY "order" ASC`, questionColumns)
	var questions []models.Question
	if err := r.db.SelectContext(ctx, &questions, query, quizID); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

// FindByID returns a question or sql.ErrNoRows.
func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionColumns)
	var q models.Question
	if err := r.db.GetContext(ctx, &q, query, id); err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return &q, nil
}

// Create appends a question to its quiz.
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO questions (id, quiz_id, type, text, options, correct_answer, points, "order", created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, (SELECT COALESCE(MAX("order") + 1, 0) FROM questions WHERE quiz_id = $2), $8)
        RETURNING "order"`
	row := r.db.QueryRowxContext(ctx, query, q.ID, q.QuizID, q.Type, q.Text, q.Options, q.CorrectAnswer, q.Points, q.CreatedAt)
	if err := row.Scan(&q.Order); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// Update writes a question's editable fields.
func (r *QuestionRepository) Update(ctx context.Context, q *models.Question) error {
	const query = `UPDATE questions SET type = :type, text = :text, options = :options,
        correct_answer = :correct_answer, points = :points WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, q)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return expectRow(res, "update question")
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return expectRow(res, "delete question")
}

// Reorder assigns positions 0..n-1 following ids.
func (r *QuestionRepository) Reorder(ctx context.Context, quizID string, ids []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder questions: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck
	for pos, id := range ids {
		res, err := tx.ExecContext(ctx, `UPDATE questions SET "order" = $1 WHERE id = $2 AND quiz_id = $3`, pos, id, quizID)
		if err != nil {
			return fmt.Errorf("reorder question %s: %w", id, err)
		}
		if err := expectRow(res, "reorder question "+id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder questions: %w", err)
	}
	return nil
}
