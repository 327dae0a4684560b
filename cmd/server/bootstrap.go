package main

import (
	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/internal/handlers"
	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/internal/utils"
	"github.com/openmelody/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg           *config.Config
	likeCache     services.LikeCache
	exportQueue   services.ExportQueue
	exportWorker  *services.ExportWorker
	authHandler   *handlers.AuthHandler
	albumHandler  *handlers.AlbumHandler
	songHandler   *handlers.SongHandler
	playlistHdlr  *handlers.PlaylistHandler
	collabHandler *handlers.CollaborationHandler
	likeHandler   *handlers.LikeHandler
	exportHandler *handlers.ExportHandler
	healthHandler *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, cache,
// queue, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Start refresh token cleanup scheduler
	services.StartTokenCleanupScheduler(db)

	// Like counter cache (Redis if enabled, in-memory otherwise)
	var likeCache services.LikeCache
	if cfg.Redis.Enabled {
		likeCache = services.NewRedisLikeCache(&cfg.Redis)
	} else {
		likeCache = services.NewMemoryLikeCache()
	}

	// Export queue (Redis-backed async if enabled, otherwise sync mode)
	mailer := services.NewSMTPMailer(&cfg.SMTP)
	exportQueue := services.NewExportQueue(cfg)

	// Start async export worker if Redis is enabled; in sync mode the
	// queue processes submissions in-process instead.
	var exportWorker *services.ExportWorker
	if cfg.Redis.Enabled && exportQueue.IsAsync() {
		exportWorker = services.NewExportWorker(db, mailer, &cfg.Redis, &cfg.Export)
		exportWorker.Start()
	} else if syncQueue, ok := exportQueue.(*services.SyncExportQueue); ok {
		processor := services.NewExportProcessor(db, mailer)
		syncQueue.SetProcessor(processor.Process)
	}

	return &appServices{
		cfg:           cfg,
		likeCache:     likeCache,
		exportQueue:   exportQueue,
		exportWorker:  exportWorker,
		authHandler:   handlers.NewAuthHandler(db, &cfg.JWT),
		albumHandler:  handlers.NewAlbumHandler(db),
		songHandler:   handlers.NewSongHandler(db),
		playlistHdlr:  handlers.NewPlaylistHandler(db),
		collabHandler: handlers.NewCollaborationHandler(db),
		likeHandler:   handlers.NewLikeHandler(db, likeCache),
		exportHandler: handlers.NewExportHandler(db, exportQueue),
		healthHandler: handlers.NewHealthHandler(exportQueue),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	services.StopTokenCleanupScheduler()
	logger.Infof("Schedulers stopped")

	if s.exportWorker != nil {
		s.exportWorker.Stop()
	}
	if s.exportQueue != nil {
		s.exportQueue.Close()
	}
	if closer, ok := s.likeCache.(interface{ Close() error }); ok {
		closer.Close()
	}
}
