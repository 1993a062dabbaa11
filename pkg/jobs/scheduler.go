package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task is a periodic unit of work.
type Task func(ctx context.Context) error

// Observer receives the outcome of every task run.
type Observer func(name string, err error, duration time.Duration)

// Scheduler runs named tasks on cron specs. Overlapping runs of the same task are skipped.
type Scheduler struct {
	cron     *cron.Cron
	logger   *zap.Logger
	observer Observer

	mu    sync.Mutex
	ctx   context.Context
	tasks map[string]Task
}

type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler builds a scheduler. observer may be nil.
func NewScheduler(logger *zap.Logger, observer Observer) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{sugar: logger.Sugar()}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger:   logger,
		observer: observer,
		ctx:      context.Background(),
		tasks:    make(map[string]Task),
	}
}

// Add registers task under name on a standard five field cron spec.
func (s *Scheduler) Add(name, spec string, task Task) error {
	s.mu.Lock()
	if _, exists := s.tasks[name]; exists {
		s.mu.Unlock()
		return fmt.Errorf("task %s already registered", name)
	}
	s.tasks[name] = task
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(spec, func() { _ = s.run(name, task) }); err != nil {
		s.mu.Lock()
		delete(s.tasks, name)
		s.mu.Unlock()
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.logger.Sugar().Infow("task scheduled", "task", name, "spec", spec)
	return nil
}

// Run executes a registered task immediately on the calling goroutine.
func (s *Scheduler) Run(name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("task %s not registered", name)
	}
	return s.run(name, task)
}

func (s *Scheduler) run(name string, task Task) error {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	start := time.Now()
	err := task(ctx)
	duration := time.Since(start)
	if s.observer != nil {
		s.observer(name, err, duration)
	}
	if err != nil {
		s.logger.Sugar().Errorw("task failed", "task", name, "duration", duration, "error", err)
		return err
	}
	s.logger.Sugar().Debugw("task finished", "task", name, "duration", duration)
	return nil
}

// Start begins running tasks with ctx passed to each run.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.cron.Start()
}

// Stop halts the scheduler and waits for running tasks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
