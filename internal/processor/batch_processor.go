package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"estates/server/config"
	"estates/server/internal/database"
	"estates/server/internal/models"
	"estates/server/internal/queue"
)

// BatchProcessor writes imported building batches to the database
type BatchProcessor struct {
	db     *gorm.DB
	logger *logrus.Logger
	config *config.Config
	queue  *queue.BuildingQueue
	ctx    context.Context
	cancel context.CancelFunc

	// OnProcessed is called with the stored batch after a successful commit.
	OnProcessed func([]*models.Building)
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db *gorm.DB, queue *queue.BuildingQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to the queue and starts the configured number of workers
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.processBatch)
	p.queue.Start(p.config.BatchProcessing.ProcessorCount)
}

// Stop cancels pending retries and waits until every queued batch has been attempted
func (p *BatchProcessor) Stop() {
	p.cancel()
	if err := p.queue.Close(); err != nil {
		p.logger.WithError(err).Error("Failed to close import queue")
	}
}

// processBatch handles a single batch of buildings with transaction and retry logic
func (p *BatchProcessor) processBatch(batch []*models.Building) error {
	maxRetries := p.config.BatchProcessing.MaxRetries
	delay := time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, maxRetries)
			select {
			case <-p.ctx.Done():
				return fmt.Errorf("batch processing cancelled: %w", err)
			case <-time.After(delay):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertBuildings(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert buildings batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully processed batch of %d buildings", len(batch))
			if p.OnProcessed != nil {
				p.OnProcessed(batch)
			}
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", maxRetries+1, err)
}
