// Package queue defines the contract for enqueuing and consuming submitted
// assessments on their way to the scoring workers.
//
// The default implementation is an in-memory bounded queue backed by a
// buffered channel.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 100000
	defaultBufferSize    = 100000
)

// Assessment is the payload type flowing through the queue.
type Assessment = model.Assessment

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an assessment to the queue.
	// Returns false if the queue is full and the assessment was not enqueued.
	Enqueue(ctx context.Context, a Assessment) bool

	// Dequeue returns a channel that will receive assessments as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Assessment

	// Len returns the current number of queued assessments.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new assessments can be enqueued and the dequeue
	// channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	assessments chan Assessment
	capacity    int
	bufferSize  int
	mu          sync.RWMutex
	closed      bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.assessments = make(chan Assessment, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds an assessment to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, a Assessment) bool {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordQueueProcessingLatency(float64(latency))
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	if len(q.assessments) >= q.capacity {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "capacity_exceeded")
		return false
	}

	select {
	case q.assessments <- a:
		metrics.RecordQueueEnqueue()
		currentSize := len(q.assessments)
		metrics.UpdateQueueSize(currentSize)
		metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that will receive assessments as they become
// available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Assessment {
	// Wrap the channel to track dequeue metrics.
	out := make(chan Assessment)
	go func() {
		defer close(out)
		for a := range q.assessments {
			select {
			case out <- a:
				metrics.RecordQueueDequeue()
				currentSize := len(q.assessments)
				metrics.UpdateQueueSize(currentSize)
				metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued assessments.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.assessments)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.assessments)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
