package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estates/server/config"
	"estates/server/internal/api"
	"estates/server/internal/cache"
	"estates/server/internal/database"
	"estates/server/internal/geocoding"
	"estates/server/internal/models"
	"estates/server/internal/processor"
	"estates/server/internal/queue"
	"estates/server/internal/scheduler"
	"estates/server/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Server.DatabasePath)
	db, err := database.NewDatabase(cfg.Server.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	handler := api.NewHandler(cfg, db, logger)

	if cfg.Cache.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.Cache.RedisAddr, time.Duration(cfg.Cache.TTL)*time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, keeping scenario cache in memory")
			redisCache.Close()
		} else {
			logger.WithField("addr", cfg.Cache.RedisAddr).Info("Caching scenario grids in Redis")
			handler.SetCache(redisCache)
			defer redisCache.Close()
		}
	}

	// Bulk import
	importQueue := queue.NewBuildingQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	batchProcessor := processor.NewBatchProcessor(db.Gorm(), importQueue, cfg, logger)
	batchProcessor.OnProcessed = func(batch []*models.Building) {
		ids := make([]int64, len(batch))
		for i, b := range batch {
			ids[i] = b.ID
		}
		handler.InvalidateScenarios(context.Background(), ids...)
	}
	batchProcessor.Start()
	handler.SetImportQueue(importQueue)

	// Notifications
	telegramService := telegram.NewService(logger)
	telegramService.UpdateConfig(&models.TelegramConfig{
		IsEnabled: cfg.Telegram.BotToken != "",
		BotToken:  cfg.Telegram.BotToken,
		ChatID:    cfg.Telegram.ChatID,
	})
	handler.SetNotifier(telegramService)

	// Geocoding
	var geocodingScheduler *scheduler.Scheduler
	if cfg.Geocoding.Enabled {
		cacheDir := cfg.Geocoding.CacheDir
		if cacheDir == "" {
			cacheDir = filepath.Join(os.TempDir(), "estates", "geocode_cache")
		}
		geocoder := geocoding.NewGeocoder(logger, cacheDir, cfg.Geocoding.URL, cfg.Geocoding.Country)
		geocodingScheduler = scheduler.NewScheduler(db, geocoder, logger, time.Duration(cfg.Geocoding.Interval)*time.Minute)
		geocodingScheduler.Start()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api.SetupRoutes(router, handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	if geocodingScheduler != nil {
		geocodingScheduler.Stop()
	}
	batchProcessor.Stop()
	logger.Info("Server exited")
}
