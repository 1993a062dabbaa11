package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/models"
	"github.com/noah-isme/trainer-console/pkg/jobs"
)

const (
	leaderboardRefreshJob = "leaderboard_refresh"
	// LeaderboardRerankTask names the periodic task that re-ranks every course.
	LeaderboardRerankTask = "leaderboard_rerank"
)

type leaderboardStore interface {
	List(ctx context.Context, courseID string, limit int) ([]models.LeaderboardEntry, error)
	Activity(ctx context.Context, courseID, userID string) (models.LearnerActivity, error)
	Upsert(ctx context.Context, entry *models.LeaderboardEntry) error
	Rerank(ctx context.Context, courseID string) error
	CourseIDs(ctx context.Context) ([]string, error)
}

type leaderboardRefresh struct {
	CourseID string
	UserID   string
}

// LeaderboardOptions tunes the refresh workers.
type LeaderboardOptions struct {
	Workers int
	Retries int
}

// LeaderboardService maintains per-course learner rankings.
type LeaderboardService struct {
	store    leaderboardStore
	selector *backend.Selector
	queue    *jobs.Queue
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewLeaderboardService constructs LeaderboardService with its refresh queue.
func NewLeaderboardService(store leaderboardStore, selector *backend.Selector, metrics *MetricsService, opts LeaderboardOptions, logger *zap.Logger) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LeaderboardService{store: store, selector: selector, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("leaderboard", s.handle, jobs.QueueConfig{
		Workers:    opts.Workers,
		MaxRetries: opts.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the refresh workers.
func (s *LeaderboardService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *LeaderboardService) Stop() {
	s.queue.Stop()
}

// List returns leaderboard entries by rank. An empty courseID lists every
// course; a limit of zero returns all entries.
func (s *LeaderboardService) List(ctx context.Context, courseID string, limit int) ([]models.LeaderboardEntry, error) {
	return backend.Secondary(ctx, s.selector, backend.ClassEnrollment, backend.OpList, func(ctx context.Context) ([]models.LeaderboardEntry, error) {
		return s.store.List(ctx, courseID, limit)
	})
}

// Schedule queues a refresh for each learner. Refreshes already waiting are coalesced.
func (s *LeaderboardService) Schedule(courseID string, userIDs ...string) {
	for _, userID := range userIDs {
		job := jobs.Job{
			ID:      courseID + ":" + userID,
			Type:    leaderboardRefreshJob,
			Payload: leaderboardRefresh{CourseID: courseID, UserID: userID},
		}
		if _, err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("enqueue leaderboard refresh failed",
				zap.String("course_id", courseID),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}
}

// Refresh recomputes one learner's points and re-ranks the course. It reports
// false without writing when the learner is not enrolled.
func (s *LeaderboardService) Refresh(ctx context.Context, courseID, userID string) (bool, error) {
	activity, err := s.store.Activity(ctx, courseID, userID)
	if err != nil {
		return false, err
	}
	if !activity.Enrolled {
		s.logger.Debug("leaderboard refresh skipped, learner not enrolled",
			zap.String("course_id", courseID),
			zap.String("user_id", userID),
		)
		return false, nil
	}
	total, activityPoints := activity.Score()
	entry := models.LeaderboardEntry{
		UserID:         userID,
		CourseID:       courseID,
		TotalPoints:    total,
		CompletedUnits: activity.CompletedUnits,
		QuizScoreTotal: activity.QuizScoreTotal,
		ActivityPoints: activityPoints,
	}
	if err := s.store.Upsert(ctx, &entry); err != nil {
		return false, err
	}
	if err := s.store.Rerank(ctx, courseID); err != nil {
		return false, err
	}
	return true, nil
}

// RerankAll recomputes ranks for every course that has entries.
func (s *LeaderboardService) RerankAll(ctx context.Context) error {
	courseIDs, err := s.store.CourseIDs(ctx)
	if err != nil {
		return fmt.Errorf("list leaderboard courses: %w", err)
	}
	var errs []error
	for _, id := range courseIDs {
		if err := s.store.Rerank(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("rerank %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (s *LeaderboardService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(leaderboardRefresh)
	if !ok {
		return jobs.Permanent(fmt.Errorf("unexpected payload %T", job.Payload))
	}
	start := time.Now()
	_, err := s.Refresh(ctx, payload.CourseID, payload.UserID)
	s.metrics.ObserveJob(leaderboardRefreshJob, err, time.Since(start))
	return err
}
