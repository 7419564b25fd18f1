package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"estates/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler processes one import batch.
type Handler func([]*models.Building) error

// BuildingQueue is an in-memory queue of building import batches
type BuildingQueue struct {
	items    chan []*models.Building
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
	logger   *logrus.Logger
	handlers []Handler
}

// NewBuildingQueue creates a new queue holding at most bufferSize batches
func NewBuildingQueue(bufferSize int, logger *logrus.Logger) *BuildingQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &BuildingQueue{
		items:    make(chan []*models.Building, bufferSize),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]Handler, 0),
	}
}

// Push adds a batch of buildings to the queue
func (q *BuildingQueue) Push(buildings []*models.Building) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- buildings:
		q.logger.WithField("batch_size", len(buildings)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *BuildingQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches workers goroutines consuming the queue
func (q *BuildingQueue) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.process()
	}
}

func (q *BuildingQueue) process() {
	defer q.wg.Done()
	// Runs until Close; batches still buffered at that point are handled first.
	for batch := range q.items {
		q.processBatch(batch)
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *BuildingQueue) processBatch(batch []*models.Building) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops accepting batches and waits until the workers have handled every queued batch
func (q *BuildingQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

// Len returns the current number of batches in the queue
func (q *BuildingQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *BuildingQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
