package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-records-api/internal/handler"
	"github.com/noah-isme/sma-records-api/internal/middleware"
	"github.com/noah-isme/sma-records-api/internal/repository"
	"github.com/noah-isme/sma-records-api/internal/service"
	"github.com/noah-isme/sma-records-api/pkg/cache"
	"github.com/noah-isme/sma-records-api/pkg/config"
	"github.com/noah-isme/sma-records-api/pkg/database"
	"github.com/noah-isme/sma-records-api/pkg/logger"
	"github.com/noah-isme/sma-records-api/pkg/logoimg"
	corsmiddleware "github.com/noah-isme/sma-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-records-api/pkg/middleware/requestid"
	"github.com/noah-isme/sma-records-api/pkg/storage"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, record listings will not be cached", "error", err)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Records.ListCacheTTL, logr, true)
		defer cacheRepo.Close() //nolint:errcheck
	}

	var archive service.ArchiveStore
	if cfg.Records.ArchiveDir != "" {
		archiveFS, err := storage.NewArchiveStorage(cfg.Records.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare archive directory", "error", err)
		}
		archive = archiveFS
	}

	institutions := repository.NewInstitutionRepository(db)
	students := repository.NewStudentRepository(db)
	grades := repository.NewGradeRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	records := repository.NewStudentRecordRepository(db)

	logos := logoimg.New(cfg.Records.LogoFetchTimeout, logr)
	contexts := service.NewContextBuilder(institutions, students, grades, attendance)
	renderer := service.NewTemplateRenderer(logos, logr)

	recordSvc := service.NewRecordService(records, contexts, renderer, institutions, students,
		metrics, archive, logr, service.RecordServiceConfig{CronEnabled: cfg.Records.CronEnabled})
	querySvc := service.NewRecordQueryService(records, cacheSvc, cfg.Records.ListCacheTTL, logr)
	exportSvc := service.NewRecordExportService(records, logr, cfg.Exports.Enabled)

	recordHandler := handler.NewRecordHandler(recordSvc, querySvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		api.POST("/records/generate", recordHandler.Generate)
		api.POST("/records/periodic-run", recordHandler.PeriodicRun)
		api.GET("/records", recordHandler.List)
		api.GET("/records/export", recordHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
