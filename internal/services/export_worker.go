package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/pkg/logger"
	"gorm.io/gorm"
)

// ExportWorker is the consumer side of the export pipeline. It runs as its
// own process with no coupling to the web path beyond the queue. Each
// message walks received → data-assembled → delivered → acknowledged; a
// failure at any step returns an error so the broker redelivers, up to the
// configured retry budget, after which the message is archived.
type ExportWorker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor *ExportProcessor
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// ExportProcessor turns one export task into a delivered email. It is
// shared by the async worker and the sync (Redis-disabled) queue.
type ExportProcessor struct {
	db     *gorm.DB
	mailer Mailer
}

func NewExportProcessor(db *gorm.DB, mailer Mailer) *ExportProcessor {
	return &ExportProcessor{db: db, mailer: mailer}
}

// Process assembles the playlist data and delivers the export email.
// A non-nil error means the message must be redelivered.
func (p *ExportProcessor) Process(ctx context.Context, task *ExportTask) error {
	export, err := AssembleExport(p.db, task.PlaylistID)
	if err != nil {
		return fmt.Errorf("assemble playlist %s: %w", task.PlaylistID, err)
	}

	if err := p.mailer.SendPlaylistExport(task.TargetEmail, export); err != nil {
		return fmt.Errorf("deliver export for playlist %s: %w", task.PlaylistID, err)
	}

	logger.Infof("[ExportWorker] Export delivered: playlist=%s, songs=%d", export.ID, len(export.Songs))
	return nil
}

func NewExportWorker(db *gorm.DB, mailer Mailer, redisCfg *config.RedisConfig, exportCfg *config.ExportConfig) *ExportWorker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// One message at a time: a slow mail transport must not pile
			// up concurrent deliveries.
			Concurrency: exportCfg.Concurrency,
			Queues: map[string]int{
				QueueExports: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Errorf("[ExportWorker] task %s failed: %v", task.Type(), err)
			}),
		},
	)

	return &ExportWorker{
		server:    server,
		mux:       asynq.NewServeMux(),
		processor: NewExportProcessor(db, mailer),
	}
}

// Start begins consuming export tasks in a background goroutine.
func (w *ExportWorker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeExport, w.HandleExportTask)

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("[ExportWorker] Waiting for messages on queue %q", QueueExports)
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("[ExportWorker] server error: %v", err)
		}
	}()

	return nil
}

// Run consumes export tasks on the calling goroutine until Stop.
func (w *ExportWorker) Run() error {
	w.mux.HandleFunc(TaskTypeExport, w.HandleExportTask)
	logger.Infof("[ExportWorker] Waiting for messages on queue %q", QueueExports)
	return w.server.Run(w.mux)
}

// Stop gracefully shuts the worker down, letting an in-flight message
// finish or be requeued.
func (w *ExportWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	logger.Infof("[ExportWorker] Shutting down...")
	w.server.Shutdown()
	if w.running {
		w.running = false
		w.wg.Wait()
	}
	logger.Infof("[ExportWorker] Shutdown complete")
}

// HandleExportTask processes one export message. Returning a non-nil error
// negatively acknowledges it: the broker counts the failure and redelivers.
func (w *ExportWorker) HandleExportTask(ctx context.Context, t *asynq.Task) error {
	var task ExportTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return fmt.Errorf("unmarshal export task: %w", err)
	}

	logger.Infof("[ExportWorker] Processing export: playlist=%s, target=%s", task.PlaylistID, task.TargetEmail)

	return w.processor.Process(ctx, &task)
}

// AssembleExport fetches the playlist and its full membership into an
// export snapshot. A vanished playlist fails the message.
func AssembleExport(db *gorm.DB, playlistID string) (*PlaylistExport, error) {
	var playlist models.Playlist
	err := db.Select("id", "name").First(&playlist, "id = ?", playlistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("playlist %s not found", playlistID)
	}
	if err != nil {
		return nil, err
	}

	var songs []SongSummary
	err = db.Model(&models.PlaylistSong{}).
		Select("songs.id, songs.title, songs.performer").
		Joins("JOIN songs ON songs.id = playlist_songs.song_id").
		Where("playlist_songs.playlist_id = ?", playlistID).
		Scan(&songs).Error
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []SongSummary{}
	}

	return &PlaylistExport{
		ID:    playlist.ID,
		Name:  playlist.Name,
		Songs: songs,
	}, nil
}
