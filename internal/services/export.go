package services

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/pkg/apperr"
	"github.com/openmelody/backend/pkg/logger"
)

const (
	// TaskTypeExport is the task type for playlist export requests.
	TaskTypeExport = "export:playlist"
	// QueueExports is the durable queue dedicated to export requests.
	QueueExports = "exports"
)

// ExportTask is the queued export request. It is transient: it exists only
// as a message until a consumer acknowledges it.
type ExportTask struct {
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}

// ExportQueue is the producer side of the export pipeline. Submit is
// fire-and-forget: success means the broker persisted the message, nothing
// more — the caller never learns whether delivery eventually happened.
type ExportQueue interface {
	Submit(task *ExportTask) error
	IsAsync() bool
	Close() error
}

// NewExportQueue picks the Redis-backed queue when Redis is enabled and
// reachable, otherwise the in-process fallback.
func NewExportQueue(cfg *config.Config) ExportQueue {
	if cfg.Redis.Enabled {
		queue, err := NewAsyncExportQueue(&cfg.Redis, &cfg.Export)
		if err != nil {
			logger.Warnf("[ExportQueue] Redis unavailable, falling back to sync mode: %v", err)
			return NewSyncExportQueue()
		}
		logger.Infof("[ExportQueue] Durable queue initialized with Redis at %s", cfg.Redis.Addr)
		return queue
	}
	logger.Infof("[ExportQueue] Sync queue initialized (Redis disabled)")
	return NewSyncExportQueue()
}

// AsyncExportQueue enqueues persistent tasks on the durable exports queue.
type AsyncExportQueue struct {
	client   *asynq.Client
	maxRetry int
}

func NewAsyncExportQueue(redisCfg *config.RedisConfig, exportCfg *config.ExportConfig) (*AsyncExportQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the broker is reachable before accepting work.
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncExportQueue{client: client, maxRetry: exportCfg.MaxRetry}, nil
}

// Submit persists the export request to the broker. Redelivery is bounded:
// once a message fails maxRetry times it is archived to the dead-letter
// queue instead of looping forever.
func (q *AsyncExportQueue) Submit(task *ExportTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeExport, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue(QueueExports),
		asynq.MaxRetry(q.maxRetry),
	)
	if err != nil {
		return apperr.Transient("export queue unavailable", err)
	}

	logger.Infof("[ExportQueue] Export enqueued: id=%s, playlist=%s", info.ID, task.PlaylistID)
	return nil
}

func (q *AsyncExportQueue) IsAsync() bool { return true }

func (q *AsyncExportQueue) Close() error { return q.client.Close() }

// SyncExportQueue processes exports in-process when Redis is disabled.
// Useful for development; it offers none of the durability of the broker.
type SyncExportQueue struct {
	processor func(context.Context, *ExportTask) error
}

func NewSyncExportQueue() *SyncExportQueue {
	return &SyncExportQueue{}
}

// SetProcessor sets the function invoked for each submitted export.
func (q *SyncExportQueue) SetProcessor(processor func(context.Context, *ExportTask) error) {
	q.processor = processor
}

// Submit hands the task to the processor in a goroutine so the HTTP
// response is not blocked on mail delivery.
func (q *SyncExportQueue) Submit(task *ExportTask) error {
	if q.processor == nil {
		logger.Warnf("[SyncExportQueue] no processor set, export dropped")
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), task); err != nil {
			logger.Errorf("[SyncExportQueue] export processing failed: %v", err)
		}
	}()

	return nil
}

func (q *SyncExportQueue) IsAsync() bool { return false }

func (q *SyncExportQueue) Close() error { return nil }
