package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/session"
)

const dashboardCacheNamespace = "dashboard"

type dashboardPrimary interface {
	Dashboard(ctx context.Context, sess session.Session) (models.DashboardStats, error)
}

type dashboardStore interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardResult is the resolved dashboard plus where it came from.
type DashboardResult struct {
	Stats    models.DashboardStats `json:"stats"`
	Source   backend.Source        `json:"source"`
	CachedAt *time.Time            `json:"cached_at,omitempty"`
}

// DashboardService resolves the trainer dashboard, cached per session.
type DashboardService struct {
	primary  dashboardPrimary
	store    dashboardStore
	selector *backend.Selector
	cache    *CacheService
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs DashboardService. cache may be nil.
func NewDashboardService(primary dashboardPrimary, store dashboardStore, selector *backend.Selector, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{primary: primary, store: store, selector: selector, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// Stats returns the dashboard and whether it was served from the cache.
func (s *DashboardService) Stats(ctx context.Context, sess session.Session) (DashboardResult, bool, error) {
	key := CacheKey(dashboardCacheNamespace, sess.Key())
	var cached DashboardResult
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	out, err := backend.Resolve(ctx, s.selector, backend.ClassDashboard, backend.OpGet,
		func(ctx context.Context) (models.DashboardStats, error) {
			return s.primary.Dashboard(ctx, sess)
		},
		func(ctx context.Context) (models.DashboardStats, error) {
			stats, err := s.store.Stats(ctx)
			if err != nil {
				return models.DashboardStats{}, err
			}
			return *stats, nil
		},
	)
	if err != nil {
		return DashboardResult{}, false, err
	}

	now := s.now().UTC()
	result := DashboardResult{Stats: out.Value, Source: out.Source, CachedAt: &now}
	s.cache.Set(ctx, key, result, s.ttl)
	result.CachedAt = nil
	return result, false, nil
}

// Invalidate drops the cached dashboard of every session.
func (s *DashboardService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, CacheKey(dashboardCacheNamespace, "*"))
}
