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

	"github.com/go-playground/validator/v10"

	_ "github.com/scholarseek/scholarseek-api/api/swagger"
	"github.com/scholarseek/scholarseek-api/internal/handler"
	"github.com/scholarseek/scholarseek-api/internal/repository"
	"github.com/scholarseek/scholarseek-api/internal/router"
	"github.com/scholarseek/scholarseek-api/internal/service"
	"github.com/scholarseek/scholarseek-api/pkg/cache"
	"github.com/scholarseek/scholarseek-api/pkg/config"
	"github.com/scholarseek/scholarseek-api/pkg/database"
	"github.com/scholarseek/scholarseek-api/pkg/logger"
	"github.com/scholarseek/scholarseek-api/pkg/mailer"
	"github.com/scholarseek/scholarseek-api/pkg/storage"
)

// @title ScholarSeek API
// @version 1.0.0
// @description Scholarship discovery, applications and bookmarks
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		sugar.Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		sugar.Fatalw("failed to prepare upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	validate := validator.New()
	metrics := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	scholarshipRepo := repository.NewScholarshipRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	notifications := service.NewNotificationService(
		mailer.NewRelayClient(cfg.Mailer, logr), cfg.Mailer, logr)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	notifications.Start(rootCtx)
	defer notifications.Stop()

	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWT, validate, logr)
	profileService := service.NewProfileService(profileRepo, store, signer, validate, logr, cfg.Uploads)
	scholarshipParams := service.ScholarshipServiceParams{
		Repo:      scholarshipRepo,
		Profiles:  profileRepo,
		Validator: validate,
		Logger:    logr,
		CacheTTL:  cfg.Recommendations.CacheTTL,
		Metrics:   metrics,
	}
	if redisClient != nil {
		scholarshipParams.Cache = repository.NewCacheRepository(redisClient, logr)
	}
	scholarshipService := service.NewScholarshipService(scholarshipParams)
	recommendationService := service.NewRecommendationService(
		scholarshipRepo, profileRepo, scholarshipParams.Cache, logr, cfg.Recommendations.CacheTTL, nil)
	applicationService := service.NewApplicationService(
		applicationRepo, scholarshipRepo, notifications, logr, metrics, nil)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, scholarshipRepo, logr)
	adminService := service.NewAdminService(profileRepo, notifications, logr)
	exportService := service.NewExportService(applicationService, profileRepo, logr)

	engine := router.New(router.Deps{
		Config:       cfg,
		Logger:       logr,
		DB:           db,
		Redis:        redisClient,
		Metrics:      metrics,
		Auth:         authService,
		AuthHandler:  handler.NewAuthHandler(authService),
		Profiles:     handler.NewProfileHandler(profileService),
		Scholarships: handler.NewScholarshipHandler(scholarshipService, recommendationService),
		Applications: handler.NewApplicationHandler(applicationService, exportService),
		Bookmarks:    handler.NewBookmarkHandler(bookmarkService),
		Admin:        handler.NewAdminHandler(adminService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
