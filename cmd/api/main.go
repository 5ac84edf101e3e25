package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"careerconnect/internal/auth"
	"careerconnect/internal/config"
	"careerconnect/internal/handlers"
	"careerconnect/internal/middleware"
	"careerconnect/internal/observability"
	"careerconnect/internal/router"
	"careerconnect/internal/storage"
	"careerconnect/internal/store"
	"careerconnect/internal/store/gormstore"
	"careerconnect/internal/store/memstore"
	"careerconnect/internal/workflow"
)

func main() {
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting careerconnect api", zap.String("store", cfg.StoreBackend))

	var stores store.Stores
	switch cfg.StoreBackend {
	case "memory":
		stores = memstore.New().Stores()
	default:
		db, err := gormstore.Open(cfg.PostgresDSN, cfg.DBMaxOpen, cfg.DBMaxIdle)
		if err != nil {
			logger.Fatal("postgres connection failed", zap.Error(err))
		}
		stores = gormstore.New(db)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, role cache disabled", zap.Error(err))
			redisClient = nil
		}
		cancel()
	}
	roleCache := middleware.NewRoleCache(redisClient, cfg.RoleCacheTTL)

	var mailer auth.Mailer = auth.NopMailer{}
	if cfg.AWSRegion != "" && cfg.MailFrom != "" {
		sesMailer, err := auth.NewSESMailer(context.Background(), cfg.AWSRegion, cfg.MailFrom)
		if err != nil {
			logger.Warn("ses mailer unavailable", zap.Error(err))
		} else {
			mailer = sesMailer
		}
	}

	blobs, err := storage.NewDisk(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		logger.Fatal("upload directory unavailable", zap.Error(err))
	}

	tokens := auth.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(stores.Users, tokens, mailer, logger)
	wf := workflow.NewService(stores, workflow.DefaultScorer, nil, logger)
	guard := middleware.NewAuthMiddleware(tokens, stores.Users, roleCache, logger)

	handler := router.New(router.Deps{
		Logger:          logger,
		Guard:           guard,
		Auth:            handlers.NewAuthHandler(authSvc, roleCache),
		Courses:         handlers.NewCourseHandler(stores.Courses, stores.Faculties),
		Jobs:            handlers.NewJobHandler(stores.Jobs, stores.Companies),
		Applications:    handlers.NewApplicationHandler(wf, stores.Applications, stores.Admissions, tokens, cfg.BaseURL),
		JobApplications: handlers.NewJobApplicationHandler(wf, stores.JobApplications),
		Documents:       handlers.NewDocumentHandler(stores.Documents, blobs),
		Institutions:    handlers.NewInstitutionHandler(stores.Institutions, stores.Faculties, stores.Courses),
		Companies:       handlers.NewCompanyHandler(stores.Companies, stores.JobApplications, wf),
		Admin:           handlers.NewAdminHandler(stores),
		FilesDir:        blobs.Root(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("stopped")
}
