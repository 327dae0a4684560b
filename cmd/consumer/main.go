package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/internal/services"
	"github.com/openmelody/backend/pkg/logger"
)

// The consumer runs the export worker as a standalone process. It shares
// nothing with the web server beyond the database and the queue.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if !cfg.Redis.Enabled {
		logger.Fatalf("Consumer requires Redis; enable it in the config or run the server in sync mode instead")
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	mailer := services.NewSMTPMailer(&cfg.SMTP)
	worker := services.NewExportWorker(models.GetDB(), mailer, &cfg.Redis, &cfg.Export)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		worker.Stop()
	}()

	if err := worker.Run(); err != nil {
		logger.Fatalf("Worker error: %v", err)
	}
}
