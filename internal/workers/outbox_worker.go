package workers

import (
	"context"
	"time"

	"charitybridge/internal/dispatch"
	"charitybridge/internal/logger"
	"charitybridge/internal/metrics"
	"charitybridge/internal/models"
	"charitybridge/internal/repositories"

	"gorm.io/gorm"
)

const (
	workerName    = "outbox"
	purgeInterval = time.Hour
)

// BatchDispatcher is the part of *dispatch.Dispatcher the worker drives.
type BatchDispatcher interface {
	DispatchBatch(ctx context.Context, db *gorm.DB, limit int) (dispatch.Result, error)
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Retention    time.Duration
}

// OutboxWorker delivers outbox events on a ticker, or sooner when woken by a
// new event, and purges delivered rows past the retention window.
type OutboxWorker struct {
	db         *gorm.DB
	dispatcher BatchDispatcher
	outboxRepo repositories.OutboxRepository
	metrics    *metrics.Metrics
	cfg        OutboxConfig
	wake       chan struct{}
}

func NewOutboxWorker(db *gorm.DB, dispatcher BatchDispatcher, outboxRepo repositories.OutboxRepository, m *metrics.Metrics, cfg OutboxConfig) *OutboxWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &OutboxWorker{
		db:         db,
		dispatcher: dispatcher,
		outboxRepo: outboxRepo,
		metrics:    m,
		cfg:        cfg,
		wake:       make(chan struct{}, 1),
	}
}

// Wake asks for an early run. It never blocks; wakes coalesce.
func (w *OutboxWorker) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) error {
	logger.WorkerLog(workerName, "start", nil, "poll_interval", w.cfg.PollInterval, "batch_size", w.cfg.BatchSize)

	if w.cfg.Retention > 0 {
		go w.purgeDelivered(ctx)
	}

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog(workerName, "stop", nil)
			return nil
		case <-ticker.C:
		case <-w.wake:
		}
		if _, err := w.Drain(ctx); err != nil && ctx.Err() == nil {
			logger.WorkerLog(workerName, "dispatch", err)
		}
		w.reportBacklog(ctx)
	}
}

// Drain dispatches batches until one comes back short.
func (w *OutboxWorker) Drain(ctx context.Context) (dispatch.Result, error) {
	var total dispatch.Result
	for {
		res, err := w.dispatcher.DispatchBatch(ctx, w.db, w.cfg.BatchSize)
		if err != nil {
			return total, err
		}
		total.Claimed += res.Claimed
		total.Delivered += res.Delivered
		total.Retried += res.Retried
		total.Failed += res.Failed

		if res.Claimed < w.cfg.BatchSize || ctx.Err() != nil {
			if total.Claimed > 0 {
				logger.WorkerLog(workerName, "dispatch", nil,
					"claimed", total.Claimed, "delivered", total.Delivered, "retried", total.Retried, "failed", total.Failed)
			}
			return total, nil
		}
	}
}

func (w *OutboxWorker) reportBacklog(ctx context.Context) {
	if w.metrics == nil {
		return
	}
	counts, err := w.outboxRepo.CountByStatus(w.db.WithContext(ctx))
	if err != nil {
		logger.WorkerLog(workerName, "backlog", err)
		return
	}
	for _, status := range []models.OutboxStatus{models.OutboxStatusPending, models.OutboxStatusDelivered, models.OutboxStatusFailed} {
		w.metrics.SetOutboxBacklog(string(status), counts[status])
	}
}

// purgeDelivered удаляет доставленные события старше окна хранения
func (w *OutboxWorker) purgeDelivered(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Purge(ctx)
		}
	}
}

func (w *OutboxWorker) Purge(ctx context.Context) int64 {
	n, err := w.outboxRepo.PurgeDelivered(w.db.WithContext(ctx), time.Now().Add(-w.cfg.Retention))
	if err != nil {
		logger.WorkerLog(workerName, "purge", err)
		return 0
	}
	if n > 0 {
		logger.WorkerLog(workerName, "purge", nil, "deleted", n)
	}
	return n
}
