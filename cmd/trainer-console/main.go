package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/trainer-console/api/swagger"
	"github.com/noah-isme/trainer-console/internal/backend"
	"github.com/noah-isme/trainer-console/internal/content"
	"github.com/noah-isme/trainer-console/internal/handler"
	internalmiddleware "github.com/noah-isme/trainer-console/internal/middleware"
	"github.com/noah-isme/trainer-console/internal/primary"
	"github.com/noah-isme/trainer-console/internal/repository"
	"github.com/noah-isme/trainer-console/internal/service"
	"github.com/noah-isme/trainer-console/pkg/cache"
	"github.com/noah-isme/trainer-console/pkg/config"
	"github.com/noah-isme/trainer-console/pkg/database"
	"github.com/noah-isme/trainer-console/pkg/jobs"
	"github.com/noah-isme/trainer-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/trainer-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/trainer-console/pkg/middleware/requestid"
	"github.com/noah-isme/trainer-console/pkg/session"
	"github.com/noah-isme/trainer-console/pkg/storage"
)

const (
	workspaceSweepTask = "workspace_sweep"
	workspaceSweepCron = "*/10 * * * *"
	workspaceIdleTTL   = 2 * time.Hour
	shutdownTimeout    = 15 * time.Second
)

// @title Trainer Console API
// @version 1.0.0
// @description Course authoring console over the trainer REST API with a Postgres fallback.
// @BasePath /api/console
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache and stored tokens disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	var tokenStore session.Store = session.NewStaticStore(cfg.Session.StaticToken)
	if redisClient != nil {
		tokenStore = session.NewChainStore(session.NewRedisStore(redisClient, cfg.Session.TokenKey), tokenStore)
	}

	courseRepo := repository.NewCourseRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	contentRepo := repository.NewContentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	learnerRepo := repository.NewLearnerRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "", logr)

	selector := backend.NewSelector(cfg.Fallback.Classes, metricsSvc, logr)
	primaryClient := primary.New(cfg.Primary, logr)
	registry := content.NewRegistry(contentRepo, validate)

	bucket, err := storage.NewBucket(cfg.Media.StorageDir, cfg.Media.MaxFileSizeBytes)
	if err != nil {
		logr.Fatal("failed to prepare media storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Media.SignedURLSecret, cfg.Media.SignedURLTTL)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)
	workspaces := service.NewWorkspaceService()
	leaderboardSvc := service.NewLeaderboardService(leaderboardRepo, selector, metricsSvc, service.LeaderboardOptions{
		Workers: cfg.Leaderboard.Workers,
		Retries: cfg.Leaderboard.Retries,
	}, logr)
	courseSvc := service.NewCourseService(primaryClient, courseRepo, unitRepo, learnerRepo, selector, workspaces, validate, logr)
	unitSvc := service.NewUnitService(primaryClient, unitRepo, selector, workspaces, validate, logr)
	unitContentSvc := service.NewUnitContentService(registry, selector, workspaces, logr)
	quizSvc := service.NewQuizService(questionRepo, selector, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(primaryClient, enrollmentRepo, selector, leaderboardSvc, cacheSvc, validate, logr)
	reportSvc := service.NewReportService(reportRepo, enrollmentRepo, selector, logr)
	dashboardSvc := service.NewDashboardService(primaryClient, dashboardRepo, selector, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	mediaSvc := service.NewMediaService(bucket, signer, mediaRepo, selector, cfg.Media.PublicBaseURL, logr)

	scheduler := jobs.NewScheduler(logr, metricsSvc.ObserveJob)
	if err := scheduler.Add(service.LeaderboardRerankTask, cfg.Leaderboard.RefreshCron, leaderboardSvc.RerankAll); err != nil {
		logr.Fatal("failed to schedule leaderboard rerank", zap.Error(err))
	}
	if err := scheduler.Add(workspaceSweepTask, workspaceSweepCron, func(context.Context) error {
		if removed := workspaces.Sweep(workspaceIdleTTL); removed > 0 {
			logr.Debug("idle workspaces closed", zap.Int("count", removed))
		}
		return nil
	}); err != nil {
		logr.Fatal("failed to schedule workspace sweep", zap.Error(err))
	}

	leaderboardSvc.Start(ctx)
	defer leaderboardSvc.Stop()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	checks := map[string]handler.ReadinessCheck{
		"database": func(ctx context.Context) error { return db.PingContext(ctx) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta(), internalmiddleware.Session(tokenStore, logr))
	handler.Register(api, handler.Handlers{
		Courses:     handler.NewCourseHandler(courseSvc),
		Units:       handler.NewUnitHandler(unitSvc),
		UnitContent: handler.NewUnitContentHandler(unitContentSvc),
		Workspace:   handler.NewWorkspaceHandler(workspaces),
		Questions:   handler.NewQuestionHandler(quizSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc, scheduler, service.LeaderboardRerankTask),
		Reports:     handler.NewReportHandler(reportSvc),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc),
		Media:       handler.NewMediaHandler(mediaSvc),
		Session:     handler.NewSessionHandler(tokenStore),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "fallback_classes", cfg.Fallback.Classes)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
