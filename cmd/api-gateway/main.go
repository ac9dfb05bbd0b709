package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusd/course-planner-api/api/swagger"
	"github.com/campusd/course-planner-api/internal/catalog"
	"github.com/campusd/course-planner-api/internal/handler"
	"github.com/campusd/course-planner-api/internal/models"
	"github.com/campusd/course-planner-api/internal/repository"
	"github.com/campusd/course-planner-api/internal/service"
	"github.com/campusd/course-planner-api/pkg/cache"
	"github.com/campusd/course-planner-api/pkg/config"
	"github.com/campusd/course-planner-api/pkg/database"
	"github.com/campusd/course-planner-api/pkg/logger"
	corsmiddleware "github.com/campusd/course-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusd/course-planner-api/pkg/middleware/requestid"
)

// @title Course Planner API
// @version 0.1.0
// @description Course catalog browsing and conflict-checked schedule planning
// @BasePath /
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

	courses, err := loadCatalog(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to load catalog", "error", err)
	}
	cat, err := catalog.New(courses)
	if err != nil {
		logr.Sugar().Fatalw("invalid catalog", "error", err)
	}
	logr.Sugar().Infow("catalog loaded", "source", cfg.Catalog.Source, "courses", cat.Len())

	store := repository.NewScheduleStore(nil, cfg.Planner.SnapshotTTL, logr)
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer client.Close() //nolint:errcheck
		store = repository.NewScheduleStore(client, cfg.Planner.SnapshotTTL, logr)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	planner := service.NewPlannerService(cat, store, metrics, validate, logr)
	catalogSvc := service.NewCatalogService(cat, logr)
	exports, err := service.NewExportService(planner, cfg.Export, logr)
	if err != nil {
		logr.Sugar().Fatalw("invalid export config", "error", err)
	}
	exportJobs, err := service.NewExportJobService(exports, cfg.Export, cfg.APIPrefix, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export pipeline", "error", err)
	}
	exportJobs.Start(context.Background())
	defer exportJobs.Stop()

	plannerHandler := handler.NewPlannerHandler(planner, exports)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	exportHandler := handler.NewExportHandler(exportJobs)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metrics.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/courses", catalogHandler.Search)
		api.GET("/courses/:courseCode", catalogHandler.Get)

		api.POST("/sessions", plannerHandler.CreateSession)
		session := api.Group("/sessions/:sessionId")
		{
			session.DELETE("", plannerHandler.EndSession)
			session.GET("/schedule", plannerHandler.GetSchedule)
			session.DELETE("/schedule", plannerHandler.ClearSchedule)
			session.GET("/schedule/export", plannerHandler.Export)
			session.POST("/selections", plannerHandler.AddSelection)
			session.DELETE("/selections/:courseCode", plannerHandler.RemoveSelection)
			session.POST("/checks/sections", plannerHandler.CheckSections)
			session.GET("/checks/courses/:courseCode", plannerHandler.CheckAddable)
			session.GET("/browse", plannerHandler.Browse)
			session.POST("/exports", exportHandler.Enqueue)
		}

		api.GET("/exports/:jobId", exportHandler.Status)
		api.GET("/exports/:jobId/download", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// loadCatalog reads the immutable course catalog from the configured source.
func loadCatalog(cfg *config.Config) ([]*models.Course, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceCSV:
		return catalog.LoadCSV(cfg.Catalog.CSVPath)
	case config.CatalogSourcePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close() //nolint:errcheck

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return repository.NewCourseRepository(db).LoadAll(ctx)
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}
