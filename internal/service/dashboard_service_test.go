package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

type memDashboardStore struct {
	stats models.DashboardStats
	calls int
}

func (m *memDashboardStore) Stats(context.Context) (*models.DashboardStats, error) {
	m.calls++
	stats := m.stats
	return &stats, nil
}

func TestDashboardServiceCachesPerSession(t *testing.T) {
	primary := &fakePrimary{dashboard: models.DashboardStats{TotalCourses: 4}}
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewDashboardService(primary, &memDashboardStore{}, allClassesSelector(), cache, time.Minute, nil)

	first, hit, err := svc.Stats(context.Background(), trainerSession)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, first.Stats.TotalCourses)
	assert.Equal(t, backend.SourcePrimary, first.Source)

	second, hit, err := svc.Stats(context.Background(), trainerSession)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 4, second.Stats.TotalCourses)
	assert.NotNil(t, second.CachedAt)
	assert.Len(t, primary.calls, 1)
}

func TestDashboardServiceFallsBackToAggregates(t *testing.T) {
	store := &memDashboardStore{stats: models.DashboardStats{TotalEnrollments: 9, CompletionRate: 33.3}}
	svc := NewDashboardService(&fakePrimary{err: primaryDenied}, store, allClassesSelector(), nil, 0, nil)

	result, hit, err := svc.Stats(context.Background(), trainerSession)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, backend.SourceSecondary, result.Source)
	assert.Equal(t, 9, result.Stats.TotalEnrollments)
}

func TestDashboardServiceWithoutFallbackReportsAuth(t *testing.T) {
	selector := backend.NewSelector([]string{"course"}, nil, nil)
	store := &memDashboardStore{}
	svc := NewDashboardService(&fakePrimary{err: primaryDenied}, store, selector, nil, 0, nil)

	_, _, err := svc.Stats(context.Background(), trainerSession)
	require.Error(t, err)
	assert.Equal(t, appErrors.KindAuth, appErrors.KindOf(err))
	assert.Zero(t, store.calls)
}

func TestDashboardServiceInvalidate(t *testing.T) {
	repo := newMemoryCache()
	cache := NewCacheService(repo, nil, 0, nil, true)
	svc := NewDashboardService(&fakePrimary{}, &memDashboardStore{}, allClassesSelector(), cache, 0, nil)

	_, _, err := svc.Stats(context.Background(), trainerSession)
	require.NoError(t, err)
	require.NotEmpty(t, repo.entries)

	svc.Invalidate(context.Background())
	assert.Empty(t, repo.entries)
}
