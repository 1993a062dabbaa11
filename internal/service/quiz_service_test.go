package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

type memQuestions struct {
	items []models.Question
	seq   int
}

func (m *memQuestions) index(id string) int {
	for i, q := range m.items {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (m *memQuestions) ListByQuiz(_ context.Context, quizID string) ([]models.Question, error) {
	out := []models.Question{}
	for _, q := range m.items {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memQuestions) FindByID(_ context.Context, id string) (*models.Question, error) {
	if idx := m.index(id); idx >= 0 {
		q := m.items[idx]
		return &q, nil
	}
	return nil, fmt.Errorf("get question: %w", sql.ErrNoRows)
}

func (m *memQuestions) Create(_ context.Context, q *models.Question) error {
	m.seq++
	q.ID = fmt.Sprintf("q-%d", m.seq)
	q.Order = 0
	for _, existing := range m.items {
		if existing.QuizID == q.QuizID && existing.Order >= q.Order {
			q.Order = existing.Order + 1
		}
	}
	m.items = append(m.items, *q)
	return nil
}

func (m *memQuestions) Update(_ context.Context, q *models.Question) error {
	idx := m.index(q.ID)
	if idx < 0 {
		return fmt.Errorf("update question: %w", sql.ErrNoRows)
	}
	m.items[idx] = *q
	return nil
}

func (m *memQuestions) Delete(_ context.Context, id string) error {
	idx := m.index(id)
	if idx < 0 {
		return fmt.Errorf("delete question: %w", sql.ErrNoRows)
	}
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	return nil
}

func (m *memQuestions) Reorder(_ context.Context, _ string, ids []string) error {
	for pos, id := range ids {
		idx := m.index(id)
		if idx < 0 {
			return fmt.Errorf("reorder question %s: %w", id, sql.ErrNoRows)
		}
		m.items[idx].Order = pos
	}
	return nil
}

func TestQuizServiceCreateAppendsInOrder(t *testing.T) {
	store := &memQuestions{}
	svc := NewQuizService(store, allClassesSelector(), nil, nil)

	first, err := svc.Create(context.Background(), "quiz-1", models.QuestionInput{Type: models.QuestionTrueFalse, Text: "Sky is blue?", CorrectAnswer: types.JSONText(`true`), Points: 1})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "quiz-1", models.QuestionInput{Type: models.QuestionMultipleChoice, Text: "Pick", Options: types.JSONText(`["a","b"]`), Points: 2})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.JSONEq(t, `[]`, string(first.Options))
	assert.JSONEq(t, `["a","b"]`, string(second.Options))
	assert.Equal(t, "null", string(second.CorrectAnswer))
}

func TestQuizServiceDropsOptionsForFreeText(t *testing.T) {
	store := &memQuestions{}
	svc := NewQuizService(store, allClassesSelector(), nil, nil)
	created, err := svc.Create(context.Background(), "quiz-1", models.QuestionInput{Type: models.QuestionMultipleChoice, Text: "Pick", Options: types.JSONText(`["a"]`)})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, models.QuestionInput{Type: models.QuestionFreeText, Text: "Explain", Options: types.JSONText(`["a"]`)})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(updated.Options))
	assert.Equal(t, "quiz-1", updated.QuizID)
}

func TestQuizServiceValidates(t *testing.T) {
	svc := NewQuizService(&memQuestions{}, allClassesSelector(), nil, nil)

	_, err := svc.Create(context.Background(), "quiz-1", models.QuestionInput{Type: "essay", Text: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
}

func TestQuizServiceUpdateMissing(t *testing.T) {
	svc := NewQuizService(&memQuestions{}, allClassesSelector(), nil, nil)

	_, err := svc.Update(context.Background(), "nope", models.QuestionInput{Type: models.QuestionFreeText, Text: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindNotFound, appErrors.KindOf(err))
}

func TestQuizServiceReorderAndDelete(t *testing.T) {
	store := &memQuestions{}
	svc := NewQuizService(store, allClassesSelector(), nil, nil)
	for _, text := range []string{"a", "b", "c"} {
		_, err := svc.Create(context.Background(), "quiz-1", models.QuestionInput{Type: models.QuestionFreeText, Text: text})
		require.NoError(t, err)
	}

	ordered, err := svc.Reorder(context.Background(), "quiz-1", models.QuestionReorderRequest{QuestionIDs: []string{"q-3", "q-1", "q-2"}})
	require.NoError(t, err)
	assert.Equal(t, "c", ordered[0].Text)
	assert.Equal(t, "b", ordered[2].Text)

	require.NoError(t, svc.Delete(context.Background(), "q-1"))
	remaining, err := svc.List(context.Background(), "quiz-1")
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
