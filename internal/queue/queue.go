package queue

import (
	"context"
	"errors"
	"sync"

	"landscout/server/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler processes one batch of parcels.
type Handler func([]*models.Parcel) error

// ParcelQueue is a bounded in-memory queue of parcel batches fanned out to subscribers.
type ParcelQueue struct {
	items     chan []*models.Parcel
	done      chan struct{}
	closeOnce sync.Once
	maxSize   int
	// mu is held for reading by pushes and for writing while draining on close
	mu     sync.RWMutex
	logger *logrus.Logger

	handlersMu sync.RWMutex
	handlers   []Handler

	// pending counts batches pushed but not yet handled or dropped
	pendingMu sync.Mutex
	pendingCh *sync.Cond
	pending   int
}

// NewParcelQueue creates a new parcel queue with the specified buffer size
func NewParcelQueue(bufferSize int, logger *logrus.Logger) *ParcelQueue {
	if logger == nil {
		logger = logrus.New()
	}
	q := &ParcelQueue{
		items:   make(chan []*models.Parcel, bufferSize),
		done:    make(chan struct{}),
		maxSize: bufferSize,
		logger:  logger,
	}
	q.pendingCh = sync.NewCond(&q.pendingMu)
	return q
}

func (q *ParcelQueue) addPending() {
	q.pendingMu.Lock()
	q.pending++
	q.pendingMu.Unlock()
}

func (q *ParcelQueue) donePending() {
	q.pendingMu.Lock()
	q.pending--
	if q.pending == 0 {
		q.pendingCh.Broadcast()
	}
	q.pendingMu.Unlock()
}

func (q *ParcelQueue) closing() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Push adds a batch without blocking.
func (q *ParcelQueue) Push(batch []*models.Parcel) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closing() {
		return ErrQueueClosed
	}

	q.addPending()
	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed batch to queue")
		return nil
	default:
		q.donePending()
		return ErrQueueFull
	}
}

// PushContext adds a batch, waiting for buffer space until ctx is done or the queue closes.
func (q *ParcelQueue) PushContext(ctx context.Context, batch []*models.Parcel) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closing() {
		return ErrQueueClosed
	}

	q.addPending()
	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed batch to queue")
		return nil
	case <-q.done:
		q.donePending()
		return ErrQueueClosed
	case <-ctx.Done():
		q.donePending()
		return ctx.Err()
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *ParcelQueue) Subscribe(handler Handler) {
	q.handlersMu.Lock()
	defer q.handlersMu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *ParcelQueue) Start() {
	go q.process()
}

func (q *ParcelQueue) process() {
	for {
		select {
		case <-q.done:
			q.drop()
			return
		case batch := <-q.items:
			q.processBatch(batch)
			q.donePending()
		}
	}
}

// drop discards batches still buffered at shutdown. Taking mu waits out pushes that
// started before Close; later pushes see the closed queue.
func (q *ParcelQueue) drop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		select {
		case batch := <-q.items:
			q.logger.WithField("batch_size", len(batch)).Warn("Dropping unprocessed batch on close")
			q.donePending()
		default:
			return
		}
	}
}

func (q *ParcelQueue) processBatch(batch []*models.Parcel) {
	q.handlersMu.RLock()
	handlers := q.handlers
	q.handlersMu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Flush blocks until every batch pushed so far has been handled or dropped.
// It is safe to call while other goroutines push.
func (q *ParcelQueue) Flush() {
	q.pendingMu.Lock()
	defer q.pendingMu.Unlock()
	for q.pending > 0 {
		q.pendingCh.Wait()
	}
}

// Close stops the queue and prevents new items from being added. Pushes blocked
// waiting for space return ErrQueueClosed.
func (q *ParcelQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}

// Len returns the current number of batches in the queue
func (q *ParcelQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *ParcelQueue) IsClosed() bool {
	return q.closing()
}
