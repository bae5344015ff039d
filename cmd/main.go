package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/config"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/dataset"
	v1 "github.com/mcadavid/maternal_mortality_dashboard/internal/handler/http/v1"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/observability"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/repository"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/service"
	"github.com/mcadavid/maternal_mortality_dashboard/pkg/logger"
	redisclient "github.com/mcadavid/maternal_mortality_dashboard/pkg/redis"

	_ "github.com/mcadavid/maternal_mortality_dashboard/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Maternal Mortality Dashboard API
// @version 1.0
// @description Interactive dashboard over the Antioquia maternal-mortality dataset.
// @host localhost:8050
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load both input files and precompute all derived structures. The
	// dataset is immutable afterwards; a missing CSV is fatal, a missing
	// boundary file has already been degraded inside Load.
	data, err := dataset.Load(cfg.MortalityCSVPath, cfg.BoundaryGeoJSON, log)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	metrics := observability.NewMetrics()
	metrics.RecordsLoaded.Set(float64(len(data.Records)))
	metrics.ShapesLoaded.Set(float64(len(data.Boundaries.Codes)))
	metrics.YearsAvailable.Set(float64(len(data.Years)))

	// View cache is optional: without REDIS_ADDR every refresh recomputes.
	var viewCache service.ViewCache
	if cfg.CacheEnabled() {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis, view cache enabled")
		viewCache = repository.NewViewCache(redisClient, cfg.ViewCacheTTL)
	}

	dashboardService := service.NewDashboardService(data, viewCache, log, metrics)

	handler := v1.NewHandler(dashboardService, log, cfg)

	router := gin.Default()
	router.Use(v1.RequestIDMiddleware(log))

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Dashboard page, Prometheus endpoint and Swagger UI
	router.StaticFile("/", "./web/index.html")
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
