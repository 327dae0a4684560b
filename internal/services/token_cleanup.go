package services

import (
	"time"

	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var tokenCleanupCron *cron.Cron

// StartTokenCleanupScheduler purges expired refresh tokens hourly.
func StartTokenCleanupScheduler(db *gorm.DB) {
	if tokenCleanupCron != nil {
		return
	}

	tokenCleanupCron = cron.New()
	tokenCleanupCron.AddFunc("@hourly", func() {
		result := db.Delete(&models.RefreshToken{}, "expires_at < ?", time.Now())
		if result.Error != nil {
			logger.Errorf("[TokenCleanup] purge failed: %v", result.Error)
			return
		}
		if result.RowsAffected > 0 {
			logger.Infof("[TokenCleanup] purged %d expired refresh tokens", result.RowsAffected)
		}
	})
	tokenCleanupCron.Start()
	logger.Infof("[TokenCleanup] scheduler started")
}

// StopTokenCleanupScheduler stops the cleanup scheduler.
func StopTokenCleanupScheduler() {
	if tokenCleanupCron != nil {
		tokenCleanupCron.Stop()
		tokenCleanupCron = nil
	}
}
