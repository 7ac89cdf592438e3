package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"estudos/backend/internal/config"
	"estudos/backend/internal/db"
	"estudos/backend/internal/handler"
	"estudos/backend/internal/metrics"
	"estudos/backend/internal/middleware"
	"estudos/backend/internal/repository"
	"estudos/backend/internal/router"
	"estudos/backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	subjectRepo := repository.NewSubjectRepository(database)
	topicRepo := repository.NewTopicRepository(database)
	annotationRepo := repository.NewAnnotationRepository(database)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	sessionService := service.NewSessionService(sessionRepo, subjectRepo, topicRepo)
	goalService := service.NewGoalService(goalRepo, sessionRepo, subjectRepo, topicRepo)
	dashboardService := service.NewDashboardService(sessionRepo, subjectRepo, goalRepo, goalService)
	categoryService := service.NewCategoryService(categoryRepo)
	subjectService := service.NewSubjectService(subjectRepo, categoryRepo)
	topicService := service.NewTopicService(topicRepo, subjectRepo)
	annotationService := service.NewAnnotationService(annotationRepo, sessionRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	loginLimit := middleware.NewRateLimiter(1, cfg.LoginRateBurst)
	defer loginLimit.Stop()

	engine := router.New(router.Deps{
		AuthService:       authService,
		AuthHandler:       handler.NewAuthHandler(authService),
		SessionHandler:    handler.NewSessionHandler(sessionService, dashboardService),
		GoalHandler:       handler.NewGoalHandler(goalService),
		SubjectHandler:    handler.NewSubjectHandler(subjectService),
		TopicHandler:      handler.NewTopicHandler(topicService),
		CategoryHandler:   handler.NewCategoryHandler(categoryService),
		AnnotationHandler: handler.NewAnnotationHandler(annotationService),
		Logger:            logger,
		CORSOrigins:       cfg.CORSOrigins,
		LoginLimit:        loginLimit,
		Collector:         collector,
		Gatherer:          registry,
	})

	logger.Info("backend listening", "port", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Error("run server", "error", err)
		os.Exit(1)
	}
}
