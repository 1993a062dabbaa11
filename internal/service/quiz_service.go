package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

type questionStore interface {
	ListByQuiz(ctx context.Context, quizID string) ([]models.Question, error)
	FindByID(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, q *models.Question) error
	Update(ctx context.Context, q *models.Question) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, quizID string, ids []string) error
}

// QuizService edits the questions of a quiz. Questions live on the secondary store.
type QuizService struct {
	store     questionStore
	selector  *backend.Selector
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuizService constructs QuizService.
func NewQuizService(store questionStore, selector *backend.Selector, validate *validator.Validate, logger *zap.Logger) *QuizService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{store: store, selector: selector, validator: validate, logger: logger}
}

// List returns the questions of a quiz in order.
func (s *QuizService) List(ctx context.Context, quizID string) ([]models.Question, error) {
	return backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpList, func(ctx context.Context) ([]models.Question, error) {
		return s.store.ListByQuiz(ctx, quizID)
	})
}

// Create appends a question to the quiz.
func (s *QuizService) Create(ctx context.Context, quizID string, in models.QuestionInput) (models.Question, error) {
	if err := s.validate(in); err != nil {
		return models.Question{}, err
	}
	q := models.Question{QuizID: quizID}
	applyQuestionInput(&q, in)
	return backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpCreate, func(ctx context.Context) (models.Question, error) {
		if err := s.store.Create(ctx, &q); err != nil {
			return models.Question{}, err
		}
		return q, nil
	})
}

// Update replaces the editable fields of a question.
func (s *QuizService) Update(ctx context.Context, id string, in models.QuestionInput) (models.Question, error) {
	if err := s.validate(in); err != nil {
		return models.Question{}, err
	}
	return backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpUpdate, func(ctx context.Context) (models.Question, error) {
		q, err := s.store.FindByID(ctx, id)
		if err != nil {
			return models.Question{}, err
		}
		applyQuestionInput(q, in)
		if err := s.store.Update(ctx, q); err != nil {
			return models.Question{}, err
		}
		return *q, nil
	})
}

// Delete removes a question.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	_, err := backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpDelete, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Delete(ctx, id)
	})
	return err
}

// Reorder assigns positions 0..n-1 following the request and returns the reloaded list.
func (s *QuizService) Reorder(ctx context.Context, quizID string, req models.QuestionReorderRequest) ([]models.Question, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reorder payload")
	}
	if dup := firstDuplicate(req.QuestionIDs); dup != "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "question "+dup+" listed twice")
	}
	return backend.Secondary(ctx, s.selector, backend.ClassUnit, backend.OpUpdate, func(ctx context.Context) ([]models.Question, error) {
		if err := s.store.Reorder(ctx, quizID, req.QuestionIDs); err != nil {
			return nil, err
		}
		return s.store.ListByQuiz(ctx, quizID)
	})
}

func (s *QuizService) validate(in models.QuestionInput) error {
	if err := s.validator.Struct(in); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid question payload")
	}
	return nil
}

// applyQuestionInput copies in onto q. Options only survive for choice-style types.
func applyQuestionInput(q *models.Question, in models.QuestionInput) {
	q.Type = in.Type
	q.Text = in.Text
	q.Points = in.Points
	q.Options = types.JSONText("[]")
	if in.Type.UsesOptions() && len(in.Options) > 0 {
		q.Options = in.Options
	}
	q.CorrectAnswer = types.JSONText("null")
	if len(in.CorrectAnswer) > 0 {
		q.CorrectAnswer = in.CorrectAnswer
	}
}
