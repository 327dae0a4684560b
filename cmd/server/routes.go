package main

import (
	"github.com/gin-gonic/gin"
	"github.com/openmelody/backend/internal/middleware"
	"github.com/openmelody/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for write-heavy routes
	writeLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Public routes
		api.POST("/users", svc.authHandler.Register)
		api.POST("/authentications", svc.authHandler.Login)
		api.PUT("/authentications", svc.authHandler.Refresh)
		api.DELETE("/authentications", svc.authHandler.Logout)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Users
			protected.GET("/users/me", svc.authHandler.Me)

			// Albums
			protected.GET("/albums/:id", svc.albumHandler.GetByID)

			// Songs
			protected.GET("/songs", svc.songHandler.List)
			protected.GET("/songs/:id", svc.songHandler.GetByID)

			// Catalog writes (rate limited)
			catalog := protected.Group("", writeLimiter.Middleware())
			{
				catalog.POST("/albums", svc.albumHandler.Create)
				catalog.PUT("/albums/:id", svc.albumHandler.Update)
				catalog.DELETE("/albums/:id", svc.albumHandler.Delete)
				catalog.POST("/albums/:id/cover", svc.albumHandler.SetCover)
				catalog.POST("/songs", svc.songHandler.Create)
				catalog.PUT("/songs/:id", svc.songHandler.Update)
				catalog.DELETE("/songs/:id", svc.songHandler.Delete)
			}

			// Album likes
			protected.GET("/albums/:id/likes", svc.likeHandler.Count)
			protected.POST("/albums/:id/likes", svc.likeHandler.Like)
			protected.DELETE("/albums/:id/likes", svc.likeHandler.Unlike)

			// Playlists
			protected.POST("/playlists", svc.playlistHdlr.Create)
			protected.GET("/playlists", svc.playlistHdlr.List)
			protected.DELETE("/playlists/:id", svc.playlistHdlr.Delete)
			protected.POST("/playlists/:id/songs", svc.playlistHdlr.AddSong)
			protected.GET("/playlists/:id/songs", svc.playlistHdlr.GetWithSongs)
			protected.DELETE("/playlists/:id/songs", svc.playlistHdlr.RemoveSong)
			protected.GET("/playlists/:id/activities", svc.playlistHdlr.ListActivities)

			// Collaborations
			protected.POST("/collaborations", svc.collabHandler.Add)
			protected.DELETE("/collaborations", svc.collabHandler.Remove)

			// Exports
			protected.POST("/export/playlists/:id", svc.exportHandler.Export)
		}
	}
}
