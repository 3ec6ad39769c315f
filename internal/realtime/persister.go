package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// ErrPersisterClosed is returned by Close when called twice.
var ErrPersisterClosed = errors.New("persister closed")

// MessageService durably stores a relayed message.
type MessageService interface {
	Post(ctx context.Context, params model.PostMessageParams) (model.Message, error)
}

// Persister writes messages in the background through a bounded queue.
// When the queue is full new jobs are rejected and logged; Enqueue never blocks.
type Persister struct {
	service MessageService
	queue   chan model.PostMessageParams
	workers int
	logger  *logger.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewPersister creates a persister with the given queue capacity and worker count.
func NewPersister(service MessageService, queueSize, workers int, logger *logger.Logger) *Persister {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Persister{
		service: service,
		queue:   make(chan model.PostMessageParams, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the workers. Stores run on a context detached from ctx's
// cancellation so that queued jobs still drain during shutdown.
func (p *Persister) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	workCtx := context.WithoutCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(workCtx)
	}
	p.logger.Info("Persister: started", "workers", p.workers, "queue_size", cap(p.queue))
}

// Enqueue schedules params for storage and reports whether it was accepted.
func (p *Persister) Enqueue(params model.PostMessageParams) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("Persister: dropped message, persister closed",
			"sender_id", params.SenderID,
			"conversation_id", params.ConversationID)
		return false
	}

	select {
	case p.queue <- params:
		return true
	default:
		p.logger.Error("Persister: dropped message, queue full",
			"sender_id", params.SenderID,
			"recipient_id", params.RecipientID,
			"conversation_id", params.ConversationID)
		return false
	}
}

// Pending returns the number of queued jobs.
func (p *Persister) Pending() int {
	return len(p.queue)
}

// Close stops accepting jobs and waits for queued ones to drain or ctx to end.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPersisterClosed
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Persister: drained")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Persister: shutdown before drain", "pending", len(p.queue))
		return ctx.Err()
	}
}

func (p *Persister) work(ctx context.Context) {
	defer p.wg.Done()

	for params := range p.queue {
		if _, err := p.service.Post(ctx, params); err != nil {
			p.logger.Error("Persister: failed to store message",
				"sender_id", params.SenderID,
				"recipient_id", params.RecipientID,
				"conversation_id", params.ConversationID,
				"error", err.Error())
		}
	}
}
