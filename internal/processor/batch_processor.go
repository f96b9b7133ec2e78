package processor

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"landscout/server/config"
	"landscout/server/internal/database"
	"landscout/server/internal/models"
	"landscout/server/internal/queue"
)

// Transactor runs fc inside a database transaction. *gorm.DB satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// Stats counts parcels written and batches abandoned.
type Stats struct {
	Parcels       int64
	FailedBatches int64
}

// BatchProcessor writes parcel batches from the queue to the store
type BatchProcessor struct {
	db     Transactor
	logger *logrus.Logger
	config *config.Config
	queue  *queue.ParcelQueue
	ctx    context.Context
	cancel context.CancelFunc

	parcels       atomic.Int64
	failedBatches atomic.Int64
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db Transactor, q *queue.ParcelQueue, cfg *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  q,
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes the processor to its queue
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.processBatch)
}

// Stop aborts any retry waits in progress
func (p *BatchProcessor) Stop() {
	p.cancel()
}

func (p *BatchProcessor) Stats() Stats {
	return Stats{
		Parcels:       p.parcels.Load(),
		FailedBatches: p.failedBatches.Load(),
	}
}

// processBatch upserts one batch in a transaction, retrying on failure
func (p *BatchProcessor) processBatch(batch []*models.Parcel) error {
	maxRetries := p.config.BatchProcessing.MaxRetries
	delay := time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying parcel batch, attempt %d of %d", attempt, maxRetries)
			select {
			case <-time.After(delay):
			case <-p.ctx.Done():
				p.failedBatches.Add(1)
				return fmt.Errorf("batch abandoned: %w", p.ctx.Err())
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertParcels(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert parcel batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.parcels.Add(int64(len(batch)))
			p.logger.WithField("batch_size", len(batch)).Info("Stored parcel batch")
			return nil
		}

		p.logger.WithError(err).Error("Parcel batch failed")
	}

	p.failedBatches.Add(1)
	return fmt.Errorf("failed to process batch after %d attempts: %w", maxRetries+1, err)
}
