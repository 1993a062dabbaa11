package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnerRepositoryPrefersTraineeRole(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLearnerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.primary_role = $1")).
		WithArgs("trainee", "course-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "avatar_url"}).
			AddRow("user-1", "Ada", "ada@example.com", nil))

	learners, err := repo.ListAssignable(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, learners, 1)
	assert.Equal(t, "user-1", learners[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLearnerRepositoryFallsBackToLegacyRole(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLearnerRepository(db)

	cols := []string{"id", "full_name", "email", "avatar_url"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.primary_role = $1")).
		WithArgs("trainee", "course-1").
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.role = $1")).
		WithArgs("learner", "course-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("user-7", nil, "old@example.com", nil))

	learners, err := repo.ListAssignable(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, learners, 1)
	assert.Equal(t, "old@example.com", learners[0].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}
